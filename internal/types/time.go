package types

import (
	"fmt"
	"strconv"

	"github.com/pandablocks/pandad/internal/hardware"
)

// ticksPerUnit gives the hardware-clock ticks in one unit of the given
// name, derived from the device's fixed CLOCK_FREQUENCY.
var ticksPerUnit = map[string]float64{
	"min": float64(hardware.ClockFrequency) * 60,
	"s":   float64(hardware.ClockFrequency),
	"ms":  float64(hardware.ClockFrequency) / 1e3,
	"us":  float64(hardware.ClockFrequency) / 1e6,
}

// TimeType is the 32-bit-ticks time adapter used by fields whose value
// is a single duration register (distinct from the paired-register
// time *class*, §4.8, which handles the 48-bit quantity).
type TimeType struct {
	Units string
}

func NewTimeType() *TimeType {
	return &TimeType{Units: "s"}
}

func (t *TimeType) Parse(n int, s string) (uint32, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid time value %q", s)
	}
	per, ok := ticksPerUnit[t.Units]
	if !ok {
		return 0, fmt.Errorf("unknown time unit %q", t.Units)
	}
	ticks := roundHalfEven(f * per)
	if ticks < 0 || ticks > math32Max {
		return 0, errOutOfRange
	}
	return uint32(ticks), nil
}

func (t *TimeType) Format(n int, v uint32) (string, error) {
	per, ok := ticksPerUnit[t.Units]
	if !ok {
		return "", fmt.Errorf("unknown time unit %q", t.Units)
	}
	return strconv.FormatFloat(float64(v)/per, 'g', 12, 64), nil
}

func (t *TimeType) BindAttributes(reg Register, n int) (map[string]Attr, error) {
	return map[string]Attr{
		"UNITS": {
			Description: "Time unit (min, s, ms, us)",
			Format: func(n int) (string, error) {
				return t.Units, nil
			},
			Put: func(n int, value string) error {
				if _, ok := ticksPerUnit[value]; !ok {
					return fmt.Errorf("invalid time unit %q", value)
				}
				t.Units = value
				reg.Changed(n)
				return nil
			},
		},
	}, nil
}

const math32Max = 1<<32 - 1
