package class

import (
	"context"
	"fmt"

	"github.com/pandablocks/pandad/internal/changeset"
	"github.com/pandablocks/pandad/internal/hardware"
	"github.com/pandablocks/pandad/internal/parseutil"
	"github.com/pandablocks/pandad/internal/table"
)

// Table is the short/long table class (§4.9). Each instance owns its
// own hardware table handle and table.Block.
type Table struct {
	name     string
	hw       hardware.Interface
	base     uint32
	idx      *changeset.Index
	rowWidth int

	long     bool
	order    int // long table capacity, log2 words
	maxLen   int // short table capacity, words
	longBase uint32

	blocks  []*table.Block
	fields  []table.SubField
	tracker *changeset.Tracker
}

// NewTable constructs a table field with count instances and the given
// row width in words (derived from the highest bit any sub-field uses,
// or 1 if the table declares no sub-fields). long selects the long-table
// register-spec shape ("2^order base length") over the short-table one
// ("max_length init fill length"); it comes from the config file's
// class argument (`table short`/`table long`), not from sniffing the
// registers file.
func NewTable(name string, hw hardware.Interface, base uint32, count, rowWidth int, long bool, idx *changeset.Index) *Table {
	return &Table{
		name:     name,
		hw:       hw,
		base:     base,
		idx:      idx,
		rowWidth: rowWidth,
		long:     long,
		tracker:  changeset.NewTracker(count),
		blocks:   make([]*table.Block, count),
	}
}

func (t *Table) Name() string { return t.name }

func (t *Table) SetBase(base uint32) { t.base = base }

// SetSubFields installs the table's row bit-slice sub-fields, having
// already validated them with table.ValidateSubFields.
func (t *Table) SetSubFields(fields []table.SubField) {
	t.fields = fields
}

// ParseRegister consumes either a short-table tail
// ("max_length init fill length") or a long-table tail
// ("2^order base length"), per t.long.
func (t *Table) ParseRegister(fields []string) error {
	if len(fields) == 0 {
		return fmt.Errorf("table %s: empty register spec", t.name)
	}
	if t.long {
		return t.parseLongRegister(fields)
	}
	return t.parseShortRegister(fields)
}

func (t *Table) parseShortRegister(fields []string) error {
	if len(fields) < 1 {
		return fmt.Errorf("table %s: expected max_length", t.name)
	}
	maxLen, err := parseutil.Uint32(fields[0])
	if err != nil {
		return err
	}
	t.maxLen = int(maxLen)
	return nil
}

func (t *Table) parseLongRegister(fields []string) error {
	if len(fields) < 2 {
		return fmt.Errorf("table %s: expected order and base", t.name)
	}
	orderTok := fields[0]
	if len(orderTok) > 2 && orderTok[:2] == "2^" {
		orderTok = orderTok[2:]
	}
	order, err := parseutil.Uint32(orderTok)
	if err != nil {
		return err
	}
	base, err := parseutil.Uint32(fields[1])
	if err != nil {
		return err
	}
	t.long = true
	t.order = int(order)
	t.longBase = base
	return nil
}

// Finalise opens the backing hardware table handle for every instance.
func (t *Table) Finalise(ctx context.Context) error {
	for n := range t.blocks {
		var h hardware.TableHandle
		var err error
		if t.long {
			h, err = t.hw.OpenLongTable(ctx, t.longBase, uint32(n), t.order)
		} else {
			h, err = t.hw.OpenShortTable(ctx, t.base, uint32(n), t.maxLen)
		}
		if err != nil {
			return err
		}
		t.blocks[n] = table.NewBlock(t.hw, h, t.rowWidth, t.maxLen, t.tracker, n, t.idx)
	}
	return nil
}

func (t *Table) GetMany(n int) ([]string, error) {
	data, err := t.blocks[n].Read(context.Background())
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(data)/maxInt(t.rowWidth, 1))
	for i := 0; i+t.rowWidth <= len(data); i += t.rowWidth {
		row := data[i : i+t.rowWidth]
		line := fmt.Sprintf("%d", row[0])
		for _, w := range row[1:] {
			line += fmt.Sprintf(" %d", w)
		}
		out = append(out, line)
	}
	return out, nil
}

func (t *Table) PutTable(n int, appendMode, binary bool) (*table.Writer, error) {
	return t.blocks[n].OpenWriter(appendMode, binary)
}

func (t *Table) Family() changeset.Family { return changeset.Table }

func (t *Table) ChangeSet(report uint64, changes []bool) {
	t.tracker.Fill(report, changes)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

var (
	_ Class        = (*Table)(nil)
	_ MultiGetter  = (*Table)(nil)
	_ TablePutter  = (*Table)(nil)
	_ ChangeSetter = (*Table)(nil)
	_ Finaliser    = (*Table)(nil)
)
