package class

import (
	"context"

	"github.com/pandablocks/pandad/internal/attr"
	"github.com/pandablocks/pandad/internal/changeset"
	"github.com/pandablocks/pandad/internal/hardware"
	"github.com/pandablocks/pandad/internal/hashtable"
	"github.com/pandablocks/pandad/internal/types"
)

// Mux is the bit_mux/pos_mux class: the user-facing value is a name
// resolved against the global mux enumeration, backed by a register
// holding the resolved bus index (§4.7).
type Mux struct {
	name string
	ty   *types.MuxType
	reg  *registerIO
}

// NewMux constructs a bit_mux (zeroOK=false) or pos_mux (zeroOK=true,
// accepting the "ZERO" sentinel mapped to index PosBusCount) field.
// names is the shared global bit_mux or pos_mux enumeration table.
func NewMux(name string, names *hashtable.NameIndex, hw hardware.Interface, base uint32, count int, idx *changeset.Index, zeroOK bool, attrs *attr.Map) (*Mux, error) {
	reg := newRegisterIO(hw, base, 0, count, idx)
	ty := &types.MuxType{Names: names, ZeroOK: zeroOK}
	if err := bindTypeAttributes(attrs, ty, reg, count, idx); err != nil {
		return nil, err
	}
	return &Mux{name: name, ty: ty, reg: reg}, nil
}

func (m *Mux) Name() string { return m.name }

func (m *Mux) SetBase(base uint32) { m.reg.base = base }

func (m *Mux) ParseRegister(fields []string) error {
	reg, err := parseSingleRegister(fields)
	if err != nil {
		return err
	}
	m.reg.reg = reg
	return nil
}

func (m *Mux) RegisterOffsets() []uint32 { return []uint32{m.reg.reg} }

func (m *Mux) Get(n int) (string, error) {
	return m.ty.Format(n, m.reg.cached(n))
}

func (m *Mux) Put(n int, value string) error {
	v, err := m.ty.Parse(n, value)
	if err != nil {
		return err
	}
	return m.reg.hwWrite(context.Background(), n, v)
}

func (m *Mux) GetEnumeration() []string {
	return m.ty.GetEnumeration()
}

func (m *Mux) Family() changeset.Family { return changeset.Config }

func (m *Mux) ChangeSet(report uint64, changes []bool) {
	m.reg.tracker.Fill(report, changes)
}

var (
	_ Class        = (*Mux)(nil)
	_ Getter       = (*Mux)(nil)
	_ Putter       = (*Mux)(nil)
	_ Enumerator   = (*Mux)(nil)
	_ ChangeSetter = (*Mux)(nil)
)
