package table

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"fmt"

	"github.com/pandablocks/pandad/internal/parseutil"
)

// Writer buffers incoming table lines until the command stream's
// payload ends, then commits them in one hardware write.
type Writer struct {
	block  *Block
	offset int
	binary bool

	pending []uint32
	closed  bool
}

// WriteLine appends one payload line: whitespace-separated decimal
// uint32 words in ASCII mode, or one base64-encoded group of
// little-endian u32 words in binary mode.
func (w *Writer) WriteLine(line string) error {
	if w.closed {
		return fmt.Errorf("table writer already closed")
	}
	if w.binary {
		raw, err := base64.StdEncoding.DecodeString(line)
		if err != nil {
			return fmt.Errorf("invalid base64 table data: %w", err)
		}
		if len(raw)%4 != 0 {
			return fmt.Errorf("base64 table data is not a whole number of words")
		}
		for i := 0; i+4 <= len(raw); i += 4 {
			w.pending = append(w.pending, binary.LittleEndian.Uint32(raw[i:i+4]))
		}
		return nil
	}
	for _, f := range parseutil.Fields(line) {
		v, err := parseutil.Uint32(f)
		if err != nil {
			return err
		}
		w.pending = append(w.pending, v)
	}
	return nil
}

// Abort releases the write-mutex without committing anything, for a
// connection that drops mid-payload.
func (w *Writer) Abort() {
	if w.closed {
		return
	}
	w.closed = true
	w.block.writeMu.Unlock()
}

// Close validates the row width, publishes the write to hardware, and
// updates the committed length and change index, all under the
// block's rwlock, then releases the write-mutex.
func (w *Writer) Close(ctx context.Context) error {
	if w.closed {
		return fmt.Errorf("table writer already closed")
	}
	defer func() {
		w.closed = true
		w.block.writeMu.Unlock()
	}()

	if w.block.rowWidth > 0 && len(w.pending)%w.block.rowWidth != 0 {
		return fmt.Errorf("table data length %d is not a multiple of row width %d", len(w.pending), w.block.rowWidth)
	}
	if w.block.maxLen > 0 && w.offset+len(w.pending) > w.block.maxLen {
		return fmt.Errorf("table write exceeds capacity %d", w.block.maxLen)
	}

	w.block.rw.Lock()
	defer w.block.rw.Unlock()

	if err := w.block.hw.WriteTable(ctx, w.block.h, w.offset, w.pending); err != nil {
		return err
	}
	need := w.offset + len(w.pending)
	if need > len(w.block.data) {
		grown := make([]uint32, need)
		copy(grown, w.block.data)
		w.block.data = grown
	}
	copy(w.block.data[w.offset:need], w.pending)
	w.block.length = need

	if w.block.tracker != nil {
		w.block.tracker.Bump(w.block.idxSlot, w.block.idx)
	}
	return nil
}
