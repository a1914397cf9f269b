package class

import (
	"context"

	"github.com/pandablocks/pandad/internal/attr"
	"github.com/pandablocks/pandad/internal/changeset"
	"github.com/pandablocks/pandad/internal/hardware"
	"github.com/pandablocks/pandad/internal/types"
)

// Param is a cached write-through register: writes go straight to
// hardware and are echoed by subsequent reads from the local cache,
// with no re-read from hardware on Get.
type Param struct {
	name  string
	ty    types.Type
	reg   *registerIO
	count int
}

// NewParam constructs a param field over count instances at the given
// block base register, wiring ty's extra attributes (if any) into
// attrs.
func NewParam(name string, ty types.Type, hw hardware.Interface, base uint32, count int, idx *changeset.Index, attrs *attr.Map) (*Param, error) {
	reg := newRegisterIO(hw, base, 0, count, idx)
	if err := bindTypeAttributes(attrs, ty, reg, count, idx); err != nil {
		return nil, err
	}
	return &Param{name: name, ty: ty, reg: reg, count: count}, nil
}

func (p *Param) Name() string { return p.name }

func (p *Param) SetBase(base uint32) { p.reg.base = base }

// ParseRegister consumes the single register-offset tail of a
// `registers` file field line (e.g. "VAL 2" -> "2").
func (p *Param) ParseRegister(fields []string) error {
	reg, err := parseSingleRegister(fields)
	if err != nil {
		return err
	}
	p.reg.reg = reg
	return nil
}

func (p *Param) RegisterOffsets() []uint32 { return []uint32{p.reg.reg} }

// Finalise primes every instance's cache by reading its hardware
// register, not just instance 0 — otherwise a multi-instance param
// reads back a stale zero cache until first written. It writes nothing
// to hardware.
func (p *Param) Finalise(ctx context.Context) error {
	for n := 0; n < p.count; n++ {
		if _, err := p.reg.hwRead(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

func (p *Param) Get(n int) (string, error) {
	return p.ty.Format(n, p.reg.cached(n))
}

func (p *Param) Put(n int, value string) error {
	v, err := p.ty.Parse(n, value)
	if err != nil {
		return err
	}
	return p.reg.hwWrite(context.Background(), n, v)
}

func (p *Param) Family() changeset.Family { return changeset.Config }

func (p *Param) ChangeSet(report uint64, changes []bool) {
	p.reg.tracker.Fill(report, changes)
}

func (p *Param) GetEnumeration() []string {
	if e, ok := p.ty.(types.Enumerator); ok {
		return e.GetEnumeration()
	}
	return nil
}

var (
	_ Class        = (*Param)(nil)
	_ Getter       = (*Param)(nil)
	_ Putter       = (*Param)(nil)
	_ ChangeSetter = (*Param)(nil)
	_ Finaliser    = (*Param)(nil)
)
