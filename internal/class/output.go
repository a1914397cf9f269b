package class

import (
	"context"
	"fmt"

	"github.com/pandablocks/pandad/internal/attr"
	"github.com/pandablocks/pandad/internal/busregistry"
	"github.com/pandablocks/pandad/internal/changeset"
	"github.com/pandablocks/pandad/internal/hardware"
)

// BitOut subscribes to the global bit bus: each instance names a fixed
// bus index (bound from the `registers` file) and exposes that bit's
// current value plus a CAPTURE selector.
type BitOut struct {
	name    string
	bus     *busregistry.Bus
	idx     *changeset.Index
	indices []int
	capture *busregistry.CaptureState
}

// NewBitOut constructs a bit_out field over count instances.
func NewBitOut(name string, bus *busregistry.Bus, idx *changeset.Index, count int, attrs *attr.Map) (*BitOut, error) {
	b := &BitOut{
		name:    name,
		bus:     bus,
		idx:     idx,
		indices: make([]int, count),
		capture: busregistry.NewCaptureState(busregistry.BitOutCaptureLabels, count),
	}
	if err := attrs.Add(captureAttr(b.capture)); err != nil {
		return nil, err
	}
	return b, nil
}

func captureAttr(cs *busregistry.CaptureState) *attr.Attribute {
	a := attr.New("CAPTURE", "Capture mode for this output", cs.Len())
	a.Format = func(n int) (string, error) { return cs.Get(n), nil }
	a.Put = func(n int, value string) error { return cs.Set(n, value) }
	a.GetEnumeration = func() []string { return cs.Labels() }
	return a
}

func (b *BitOut) Name() string { return b.name }

// ParseRegister consumes the bus-index-per-instance list.
func (b *BitOut) ParseRegister(fields []string) error {
	primary, _, err := parseBusIndices(fields)
	if err != nil {
		return err
	}
	if len(primary) != len(b.indices) {
		return fmt.Errorf("bit_out %s: expected %d bus indices, got %d", b.name, len(b.indices), len(primary))
	}
	copy(b.indices, primary)
	return nil
}

// Index exposes instance n's bus index for mux-table registration by
// the database loader.
func (b *BitOut) Index(n int) int { return b.indices[n] }

func (b *BitOut) Refresh(ctx context.Context, n int) error {
	return b.bus.RefreshBits(ctx, b.idx)
}

func (b *BitOut) Get(n int) (string, error) {
	if b.bus.Bit(b.indices[n])&1 != 0 {
		return "1", nil
	}
	return "0", nil
}

func (b *BitOut) Family() changeset.Family { return changeset.Bits }

func (b *BitOut) ChangeSet(report uint64, changes []bool) {
	for n, bi := range b.indices {
		changes[n] = b.bus.BitChanged(bi, report)
	}
}

var (
	_ Class        = (*BitOut)(nil)
	_ Getter       = (*BitOut)(nil)
	_ Refresher    = (*BitOut)(nil)
	_ ChangeSetter = (*BitOut)(nil)
)

// PosOut subscribes to the global position bus, analogous to BitOut but
// with a richer capture label set (§4.6's Encoder/ADC variants).
type PosOut struct {
	name    string
	bus     *busregistry.Bus
	idx     *changeset.Index
	indices []int
	capture *busregistry.CaptureState
}

// NewPosOut constructs a pos_out field. labels selects the capture
// label set appropriate to the sub-type (plain/encoder/adc).
func NewPosOut(name string, bus *busregistry.Bus, idx *changeset.Index, count int, labels []string, attrs *attr.Map) (*PosOut, error) {
	p := &PosOut{
		name:    name,
		bus:     bus,
		idx:     idx,
		indices: make([]int, count),
		capture: busregistry.NewCaptureState(labels, count),
	}
	if err := attrs.Add(captureAttr(p.capture)); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *PosOut) Name() string { return p.name }

func (p *PosOut) ParseRegister(fields []string) error {
	primary, _, err := parseBusIndices(fields)
	if err != nil {
		return err
	}
	if len(primary) != len(p.indices) {
		return fmt.Errorf("pos_out %s: expected %d bus indices, got %d", p.name, len(p.indices), len(primary))
	}
	copy(p.indices, primary)
	return nil
}

func (p *PosOut) Index(n int) int { return p.indices[n] }

func (p *PosOut) Refresh(ctx context.Context, n int) error {
	return p.bus.RefreshPositions(ctx, p.idx)
}

func (p *PosOut) Get(n int) (string, error) {
	return fmt.Sprintf("%d", p.bus.Position(p.indices[n])), nil
}

func (p *PosOut) Family() changeset.Family { return changeset.Position }

func (p *PosOut) ChangeSet(report uint64, changes []bool) {
	for n, bi := range p.indices {
		changes[n] = p.bus.PositionChanged(bi, report)
	}
}

var (
	_ Class        = (*PosOut)(nil)
	_ Getter       = (*PosOut)(nil)
	_ Refresher    = (*PosOut)(nil)
	_ ChangeSetter = (*PosOut)(nil)
)

// ExtOut is an extension-bus output: it reads a dedicated register
// rather than the bit/position bus, per §4.6's ext_out sub-types
// (generic, offset, adc_count, bits).
type ExtOut struct {
	name    string
	reg     *registerIO
	capture *busregistry.CaptureState
}

func NewExtOut(name string, hw hardware.Interface, base uint32, count int, idx *changeset.Index, attrs *attr.Map) (*ExtOut, error) {
	e := &ExtOut{
		name:    name,
		reg:     newRegisterIO(hw, base, 0, count, idx),
		capture: busregistry.NewCaptureState(busregistry.ExtOutCaptureLabels, count),
	}
	if err := attrs.Add(captureAttr(e.capture)); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *ExtOut) Name() string { return e.name }

func (e *ExtOut) ParseRegister(fields []string) error {
	reg, err := parseSingleRegister(fields)
	if err != nil {
		return err
	}
	e.reg.reg = reg
	return nil
}

func (e *ExtOut) RegisterOffsets() []uint32 { return []uint32{e.reg.reg} }

func (e *ExtOut) Refresh(ctx context.Context, n int) error {
	_, err := e.reg.hwRead(ctx, n)
	return err
}

func (e *ExtOut) Get(n int) (string, error) {
	return fmt.Sprintf("%d", e.reg.cached(n)), nil
}

func (e *ExtOut) Family() changeset.Family { return changeset.Read }

func (e *ExtOut) ChangeSet(report uint64, changes []bool) {
	e.reg.tracker.Fill(report, changes)
}

var (
	_ Class        = (*ExtOut)(nil)
	_ Getter       = (*ExtOut)(nil)
	_ Refresher    = (*ExtOut)(nil)
	_ ChangeSetter = (*ExtOut)(nil)
)
