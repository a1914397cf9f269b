package class

import (
	"context"
	"sync"

	"github.com/pandablocks/pandad/internal/changeset"
	"github.com/pandablocks/pandad/internal/hardware"
)

// registerIO adapts one (block_base, reg) pair across N instances to
// hardware register reads/writes, and implements types.Register so a
// Type can invoke Changed when a type-local attribute write should bump
// the owning field's change index without touching the raw value.
type registerIO struct {
	hw   hardware.Interface
	base uint32
	reg  uint32

	mu      sync.Mutex
	cache   []uint32
	tracker *changeset.Tracker
	idx     *changeset.Index
}

func newRegisterIO(hw hardware.Interface, base, reg uint32, n int, idx *changeset.Index) *registerIO {
	return &registerIO{
		hw:      hw,
		base:    base,
		reg:     reg,
		cache:   make([]uint32, n),
		tracker: changeset.NewTracker(n),
		idx:     idx,
	}
}

func (r *registerIO) hwRead(ctx context.Context, n int) (uint32, error) {
	v, err := r.hw.ReadRegister(ctx, r.base, uint32(n), r.reg)
	if err != nil {
		return 0, err
	}
	r.mu.Lock()
	r.cache[n] = v
	r.mu.Unlock()
	return v, nil
}

func (r *registerIO) hwWrite(ctx context.Context, n int, v uint32) error {
	if err := r.hw.WriteRegister(ctx, r.base, uint32(n), r.reg, v); err != nil {
		return err
	}
	r.mu.Lock()
	r.cache[n] = v
	r.mu.Unlock()
	r.tracker.Bump(n, r.idx)
	return nil
}

func (r *registerIO) cached(n int) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache[n]
}

// Read implements types.Register against the locally cached value,
// without re-reading hardware (used by format/parse that need the raw
// value without a fresh poll).
func (r *registerIO) Read(n int) (uint32, error) {
	return r.cached(n), nil
}

func (r *registerIO) Write(n int, v uint32) error {
	return r.hwWrite(context.Background(), n, v)
}

// Changed lets a Type's attribute setters (SCALE, OFFSET, UNITS) bump
// the change index without altering the raw register value.
func (r *registerIO) Changed(n int) {
	r.tracker.Bump(n, r.idx)
}
