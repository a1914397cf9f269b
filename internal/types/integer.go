package types

import (
	"fmt"

	"github.com/pandablocks/pandad/internal/parseutil"
)

// UintType renders the raw register value as an unsigned decimal.
type UintType struct{}

func (t *UintType) Parse(n int, s string) (uint32, error) {
	return parseutil.Uint32(s)
}

func (t *UintType) Format(n int, v uint32) (string, error) {
	return fmt.Sprintf("%d", v), nil
}

// IntType renders the raw register value as a signed 32-bit decimal.
type IntType struct{}

func (t *IntType) Parse(n int, s string) (uint32, error) {
	v, err := parseutil.Int32(s)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

func (t *IntType) Format(n int, v uint32) (string, error) {
	return fmt.Sprintf("%d", int32(v)), nil
}

// BitType accepts and renders only "0" or "1".
type BitType struct{}

func (t *BitType) Parse(n int, s string) (uint32, error) {
	switch s {
	case "0":
		return 0, nil
	case "1":
		return 1, nil
	default:
		return 0, fmt.Errorf("invalid bit value %q", s)
	}
}

func (t *BitType) Format(n int, v uint32) (string, error) {
	if v&1 != 0 {
		return "1", nil
	}
	return "0", nil
}

// LutType renders the raw register value as 32-bit hex with a 0x prefix.
type LutType struct{}

func (t *LutType) Parse(n int, s string) (uint32, error) {
	return parseutil.Uint32(s)
}

func (t *LutType) Format(n int, v uint32) (string, error) {
	return fmt.Sprintf("0x%08X", v), nil
}
