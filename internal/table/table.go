// Package table implements the double-buffered table engine (§4.9):
// each table field instance holds a committed (data, length) pair and a
// transient write-in-progress buffer, published atomically once a
// writer closes.
package table

import (
	"context"
	"fmt"
	"sync"

	"github.com/pandablocks/pandad/internal/changeset"
	"github.com/pandablocks/pandad/internal/hardware"
)

// Block is one table field instance's state.
type Block struct {
	hw   hardware.Interface
	h    hardware.TableHandle
	base uint32

	rw   sync.RWMutex // guards data/length (committed state)
	data []uint32
	length int

	writeMu   sync.Mutex // try-lock: only one writer at a time
	writeBusy bool

	rowWidth int
	maxLen   int // short table cap; 0 for long tables

	idxSlot int
	tracker *changeset.Tracker
	idx     *changeset.Index
}

// NewBlock wraps an already-open hardware table handle. rowWidth is the
// word count of one table row (used to validate a completed write);
// maxLen is the short-table capacity, or 0 for a long table whose
// capacity is fixed by its allocation order.
func NewBlock(hw hardware.Interface, h hardware.TableHandle, rowWidth, maxLen int, tracker *changeset.Tracker, slot int, idx *changeset.Index) *Block {
	return &Block{
		hw:       hw,
		h:        h,
		rowWidth: rowWidth,
		maxLen:   maxLen,
		tracker:  tracker,
		idxSlot:  slot,
		idx:      idx,
	}
}

// ErrBusy is returned by OpenWriter when a write is already in progress.
var ErrBusy = fmt.Errorf("Table currently being written")

// Committed returns the committed row data and its length in words.
func (b *Block) Committed() ([]uint32, int) {
	b.rw.RLock()
	defer b.rw.RUnlock()
	out := make([]uint32, b.length)
	copy(out, b.data[:b.length])
	return out, b.length
}

// Read reads back committed words directly from hardware; the table
// class's plain table reads use it (§4.9: "Reads ... acquire the rwlock
// for reading").
func (b *Block) Read(ctx context.Context) ([]uint32, error) {
	b.rw.RLock()
	defer b.rw.RUnlock()
	out := make([]uint32, b.length)
	if b.length == 0 {
		return out, nil
	}
	if err := b.hw.ReadTableData(ctx, b.h, 0, out); err != nil {
		return nil, err
	}
	return out, nil
}

// OpenWriter starts a new write. append continues after the current
// committed length instead of truncating to zero; binary selects the
// base64 payload decoder instead of ASCII whitespace-separated decimal.
func (b *Block) OpenWriter(appendMode, binary bool) (*Writer, error) {
	if !b.writeMu.TryLock() {
		return nil, ErrBusy
	}
	offset := 0
	if appendMode {
		b.rw.RLock()
		offset = b.length
		b.rw.RUnlock()
	}
	return &Writer{block: b, offset: offset, binary: binary}, nil
}
