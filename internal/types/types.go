// Package types implements the value-representation adapters bound to a
// register accessor (§4.3): uint, int, scalar, bit, lut, enum, bit_mux,
// pos_mux, position and time. Each adapter owns no storage of its own
// beyond small per-field extras (scale, offset, unit selection, shared
// by every instance of the field); the
// underlying 32-bit value always lives behind the Register it is bound
// to.
package types

import "fmt"

// Register is what a Type parses into and formats out of. Changed is
// invoked by a type whenever a type-local attribute (SCALE, OFFSET,
// UNITS, ...) is written, so the owning field's change index advances
// even though the raw register value did not move.
type Register interface {
	Read(n int) (uint32, error)
	Write(n int, v uint32) error
	Changed(n int)
}

// Type is the closed-set interface every value adapter implements.
type Type interface {
	// Parse converts a wire-format string to the raw register value for
	// instance n.
	Parse(n int, s string) (uint32, error)
	// Format renders instance n's current register value back to its
	// wire-format string.
	Format(n int, v uint32) (string, error)
}

// Enumerator is implemented by types whose value space is a fixed label
// set (enum, bit_mux, pos_mux).
type Enumerator interface {
	GetEnumeration() []string
}

// AttributeBinder is implemented by types that expose extra attributes
// (scalar's RAW/SCALE/OFFSET/UNITS, time's UNITS) beyond the field's
// primary value.
type AttributeBinder interface {
	BindAttributes(reg Register, n int) (map[string]Attr, error)
}

// Attr is the minimal shape a type hands back to the class layer to wire
// into an attr.Map, avoiding an import of internal/attr here (types has
// no business depending on the attribute package's change-tracking
// internals; the class layer owns that wiring).
type Attr struct {
	Description string
	Format      func(n int) (string, error)
	Put         func(n int, value string) error
}

var errOutOfRange = fmt.Errorf("value out of range")
