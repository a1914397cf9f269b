package types

import "github.com/pandablocks/pandad/internal/hashtable"

// EnumType adapts a static or dynamic hashtable.Enum label set to the
// Type interface.
type EnumType struct {
	Enum *hashtable.Enum
}

func (t *EnumType) Parse(n int, s string) (uint32, error) {
	return t.Enum.Parse(s)
}

func (t *EnumType) Format(n int, v uint32) (string, error) {
	return t.Enum.Format(v)
}

func (t *EnumType) GetEnumeration() []string {
	return t.Enum.Labels()
}
