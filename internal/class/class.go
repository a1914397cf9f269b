// Package class implements the field-behaviour variants (§4.2): param,
// read, write, time, bit_out, pos_out, ext_out, pos_mux, bit_mux,
// table. Every variant is a plain Go type; the command dispatcher never
// switches on variant identity, only on which of the optional
// capability interfaces below a class instance happens to implement,
// the same closed-set-via-type-assertion discipline a filesystem node
// tree uses for its optional-capability interfaces.
package class

import (
	"context"

	"github.com/pandablocks/pandad/internal/changeset"
	"github.com/pandablocks/pandad/internal/table"
)

// Class is deliberately near-empty: a class's real behaviour lives in
// whichever of the interfaces below it implements. Name identifies it
// for error messages and for the dispatcher's registry.
type Class interface {
	Name() string
}

// Getter answers `block.field?` with a single-line response.
type Getter interface {
	Get(n int) (string, error)
}

// MultiGetter answers `block.field?` with a multi-line response. A
// class should implement at most one of Getter/MultiGetter.
type MultiGetter interface {
	GetMany(n int) ([]string, error)
}

// Putter answers `block.field=value`.
type Putter interface {
	Put(n int, value string) error
}

// TablePutter answers `block.field<...`, opening a buffered write.
type TablePutter interface {
	PutTable(n int, appendMode, binary bool) (*table.Writer, error)
}

// Refresher refreshes cached state from hardware immediately before a
// read; the output classes (bit_out/pos_out/ext_out) and the polled
// read class implement it.
type Refresher interface {
	Refresh(ctx context.Context, n int) error
}

// ChangeSetter identifies which change-set family a class answers to
// and fills a per-instance changed vector against a report index.
type ChangeSetter interface {
	Family() changeset.Family
	ChangeSet(report uint64, changes []bool)
}

// Enumerator returns the label set applicable to a class's value (used
// by pos_mux/bit_mux and any class wrapping an enum type).
type Enumerator interface {
	GetEnumeration() []string
}

// Finaliser runs once after database loading completes. Param reads
// every instance's register into its cache, Table opens its hardware
// table handles, and Time does nothing; no Finalise writes default
// values to hardware.
type Finaliser interface {
	Finalise(ctx context.Context) error
}

// RegisterBinder consumes a register-definition line from the
// `registers` file tail. Classes keep no finalised flag: the loader
// rejects a second line for the same field, but a field with no line in
// the `registers` file is accepted and keeps its constructed defaults.
type RegisterBinder interface {
	ParseRegister(fields []string) error
}

// BaseSetter receives the block's base register number, bound from the
// `registers` file block header, after construction (block headers are
// read before the class instances that live under them are fully
// addressable).
type BaseSetter interface {
	SetBase(base uint32)
}

// RegisterFootprint is implemented by classes whose ParseRegister binds
// to one or more numeric (block-relative) register offsets, so the
// loader can reject two fields in the same block claiming the same
// offset instead of silently letting the second overwrite the first
// (§4.2, §4.10(3), §5: "exactly one class instance per register").
// bit_out/pos_out (bus indices, not hardware registers) and table
// (a capacity/region spec, not a single offset) do not implement it.
type RegisterFootprint interface {
	RegisterOffsets() []uint32
}
