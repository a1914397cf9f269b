// Package busregistry holds the global bit/position output bus
// snapshot and the bit_mux/pos_mux name tables every output and mux
// field shares (§4.6, §4.7).
package busregistry

import (
	"context"
	"sync"

	"github.com/pandablocks/pandad/internal/changeset"
	"github.com/pandablocks/pandad/internal/hardware"
)

// Bus is the shared bit/position bus snapshot. One instance serves the
// whole runtime: every bit_out/pos_out field reads its slice of it
// rather than hitting hardware directly, per §4.6's single-mutex
// design note.
type Bus struct {
	mu sync.Mutex

	bits [hardware.BitBusCount]uint32
	pos  [hardware.PosBusCount]int32

	bitIdx *changeset.Tracker
	posIdx *changeset.Tracker

	hw hardware.Interface
}

// NewBus wires a Bus to its hardware shim.
func NewBus(hw hardware.Interface) *Bus {
	return &Bus{
		hw:     hw,
		bitIdx: changeset.NewTracker(hardware.BitBusCount),
		posIdx: changeset.NewTracker(hardware.PosBusCount),
	}
}

// RefreshBits snapshots the bit bus and bumps the update index of every
// bit whose raw value changed since the last sample.
func (b *Bus) RefreshBits(ctx context.Context, idx *changeset.Index) error {
	var bits [hardware.BitBusCount]uint32
	var changes [hardware.BitBusCount]bool
	if err := b.hw.ReadBits(ctx, &bits, &changes); err != nil {
		return err
	}
	b.mu.Lock()
	b.bits = bits
	b.mu.Unlock()
	for i, changed := range changes {
		if changed {
			b.bitIdx.Bump(i, idx)
		}
	}
	return nil
}

// RefreshPositions is RefreshBits' position-bus counterpart.
func (b *Bus) RefreshPositions(ctx context.Context, idx *changeset.Index) error {
	var pos [hardware.PosBusCount]int32
	var changes [hardware.PosBusCount]bool
	if err := b.hw.ReadPositions(ctx, &pos, &changes); err != nil {
		return err
	}
	b.mu.Lock()
	b.pos = pos
	b.mu.Unlock()
	for i, changed := range changes {
		if changed {
			b.posIdx.Bump(i, idx)
		}
	}
	return nil
}

// Bit returns the current snapshot value of bit bus index i.
func (b *Bus) Bit(i int) uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bits[i]
}

// Position returns the current snapshot value of position bus index i.
func (b *Bus) Position(i int) int32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pos[i]
}

// BitChanged reports whether bit bus index i changed since report.
func (b *Bus) BitChanged(i int, report uint64) bool {
	return b.bitIdx.Changed(i, report)
}

// PositionChanged reports whether position bus index i changed since
// report.
func (b *Bus) PositionChanged(i int, report uint64) bool {
	return b.posIdx.Changed(i, report)
}
