package types

import "fmt"

// Factory constructs the no-argument types: uint, int, bit, lut, scalar,
// position, time. enum, bit_mux and pos_mux need extra construction-time
// state (a label set, or a mux name table and ZERO-sentinel flag) and are
// built directly by the database loader instead of through this table.
var Factory = map[string]func() Type{
	"uint":     func() Type { return &UintType{} },
	"int":      func() Type { return &IntType{} },
	"bit":      func() Type { return &BitType{} },
	"lut":      func() Type { return &LutType{} },
	"scalar":   func() Type { return NewScalarType() },
	"position": func() Type { return NewPositionType() },
	"time":     func() Type { return NewTimeType() },
}

// New looks up name in Factory.
func New(name string) (Type, error) {
	ctor, ok := Factory[name]
	if !ok {
		return nil, fmt.Errorf("unknown type %q", name)
	}
	return ctor(), nil
}
