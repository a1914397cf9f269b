package types

import (
	"fmt"
	"strconv"
)

// ScalarType is an IntType with a scale/offset transform applied on the
// way in and out: the wire value is raw*scale + offset, formatted with
// 12 significant digits. The RAW attribute exposes the untransformed
// integer.
type ScalarType struct {
	Scale  float64
	Offset float64
	Units  string
}

func NewScalarType() *ScalarType {
	return &ScalarType{Scale: 1}
}

func (t *ScalarType) Parse(n int, s string) (uint32, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid scalar value %q", s)
	}
	if t.Scale == 0 {
		return 0, fmt.Errorf("scalar type has zero scale")
	}
	raw := (f - t.Offset) / t.Scale
	if raw < -(1 << 31) || raw > (1<<31)-1 {
		return 0, errOutOfRange
	}
	return uint32(int32(raw)), nil
}

func (t *ScalarType) Format(n int, v uint32) (string, error) {
	scaled := float64(int32(v))*t.Scale + t.Offset
	return strconv.FormatFloat(scaled, 'g', 12, 64), nil
}

func (t *ScalarType) BindAttributes(reg Register, n int) (map[string]Attr, error) {
	return map[string]Attr{
		"RAW": {
			Description: "Raw register value",
			Format: func(n int) (string, error) {
				v, err := reg.Read(n)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("%d", int32(v)), nil
			},
		},
		"SCALE": {
			Description: "Scale factor",
			Format: func(n int) (string, error) {
				return strconv.FormatFloat(t.Scale, 'g', 12, 64), nil
			},
			Put: func(n int, value string) error {
				f, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return fmt.Errorf("invalid scale %q", value)
				}
				t.Scale = f
				reg.Changed(n)
				return nil
			},
		},
		"OFFSET": {
			Description: "Offset applied after scaling",
			Format: func(n int) (string, error) {
				return strconv.FormatFloat(t.Offset, 'g', 12, 64), nil
			},
			Put: func(n int, value string) error {
				f, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return fmt.Errorf("invalid offset %q", value)
				}
				t.Offset = f
				reg.Changed(n)
				return nil
			},
		},
		"UNITS": {
			Description: "Units string",
			Format: func(n int) (string, error) {
				return t.Units, nil
			},
			Put: func(n int, value string) error {
				t.Units = value
				reg.Changed(n)
				return nil
			},
		},
	}, nil
}
