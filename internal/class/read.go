package class

import (
	"context"

	"github.com/pandablocks/pandad/internal/changeset"
	"github.com/pandablocks/pandad/internal/hardware"
	"github.com/pandablocks/pandad/internal/types"
)

// Read is a polled register: Refresh re-reads hardware and only bumps
// the change index when the raw value actually differs from the
// cached one, per §4.2's "read (polled with READ family, updates cache
// and change index only on detected value change)".
type Read struct {
	name string
	ty   types.Type
	reg  *registerIO
}

func NewRead(name string, ty types.Type, hw hardware.Interface, base uint32, count int, idx *changeset.Index) *Read {
	return &Read{name: name, ty: ty, reg: newRegisterIO(hw, base, 0, count, idx)}
}

func (r *Read) Name() string { return r.name }

func (r *Read) SetBase(base uint32) { r.reg.base = base }

func (r *Read) ParseRegister(fields []string) error {
	reg, err := parseSingleRegister(fields)
	if err != nil {
		return err
	}
	r.reg.reg = reg
	return nil
}

func (r *Read) RegisterOffsets() []uint32 { return []uint32{r.reg.reg} }

func (r *Read) Refresh(ctx context.Context, n int) error {
	prev := r.reg.cached(n)
	v, err := r.reg.hw.ReadRegister(ctx, r.reg.base, uint32(n), r.reg.reg)
	if err != nil {
		return err
	}
	r.reg.mu.Lock()
	r.reg.cache[n] = v
	r.reg.mu.Unlock()
	if v != prev {
		r.reg.tracker.Bump(n, r.reg.idx)
	}
	return nil
}

func (r *Read) Get(n int) (string, error) {
	return r.ty.Format(n, r.reg.cached(n))
}

func (r *Read) Family() changeset.Family { return changeset.Read }

func (r *Read) ChangeSet(report uint64, changes []bool) {
	r.reg.tracker.Fill(report, changes)
}

var (
	_ Class        = (*Read)(nil)
	_ Getter       = (*Read)(nil)
	_ Refresher    = (*Read)(nil)
	_ ChangeSetter = (*Read)(nil)
)
