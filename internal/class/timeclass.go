package class

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/pandablocks/pandad/internal/attr"
	"github.com/pandablocks/pandad/internal/changeset"
	"github.com/pandablocks/pandad/internal/hardware"
)

// timeTicksPerUnit mirrors internal/types' table; kept local since the
// time class works in 48-bit ticks directly rather than through a Type.
var timeTicksPerUnit = map[string]float64{
	"min": float64(hardware.ClockFrequency) * 60,
	"s":   float64(hardware.ClockFrequency),
	"ms":  float64(hardware.ClockFrequency) / 1e3,
	"us":  float64(hardware.ClockFrequency) / 1e6,
}

// Time is the paired-register 48-bit duration class (§4.8). Unlike
// TimeType (a 32-bit single-register adapter), Time owns two hardware
// registers per instance and enforces the forbidden band
// [1, min_value].
type Time struct {
	hw       hardware.Interface
	base     uint32
	lowReg   uint32
	highReg  uint32
	minValue uint64 // forbidden-band upper bound, in raw ticks

	mu      sync.Mutex
	units   []string
	value   []uint64
	tracker *changeset.Tracker
	idx     *changeset.Index

	name string
}

func NewTime(name string, hw hardware.Interface, base uint32, count int, idx *changeset.Index, attrs *attr.Map) (*Time, error) {
	t := &Time{
		name:    name,
		hw:      hw,
		base:    base,
		units:   make([]string, count),
		value:   make([]uint64, count),
		tracker: changeset.NewTracker(count),
		idx:     idx,
	}
	for i := range t.units {
		t.units[i] = "s"
	}
	if err := attrs.Add(rawAttr(t)); err != nil {
		return nil, err
	}
	if err := attrs.Add(unitsAttr(t)); err != nil {
		return nil, err
	}
	if err := attrs.Add(minAttr(t)); err != nil {
		return nil, err
	}
	return t, nil
}

func rawAttr(t *Time) *attr.Attribute {
	a := attr.New("RAW", "Unscaled tick count", len(t.value))
	a.Format = func(n int) (string, error) {
		t.mu.Lock()
		defer t.mu.Unlock()
		return strconv.FormatUint(t.value[n], 10), nil
	}
	return a
}

func unitsAttr(t *Time) *attr.Attribute {
	a := attr.New("UNITS", "Time unit (min, s, ms, us)", len(t.value))
	a.Format = func(n int) (string, error) {
		t.mu.Lock()
		defer t.mu.Unlock()
		return t.units[n], nil
	}
	a.Put = func(n int, value string) error {
		if _, ok := timeTicksPerUnit[value]; !ok {
			return fmt.Errorf("invalid time unit %q", value)
		}
		t.mu.Lock()
		t.units[n] = value
		t.mu.Unlock()
		t.tracker.Bump(n, t.idx)
		return nil
	}
	return a
}

func minAttr(t *Time) *attr.Attribute {
	a := attr.New("MIN", "Forbidden-band upper bound, in the current unit", len(t.value))
	a.Format = func(n int) (string, error) {
		t.mu.Lock()
		unit := t.units[n]
		t.mu.Unlock()
		per := timeTicksPerUnit[unit]
		return strconv.FormatFloat(float64(t.minValue)/per, 'g', 12, 64), nil
	}
	return a
}

func (t *Time) Name() string { return t.name }

func (t *Time) SetBase(base uint32) { t.base = base }

func (t *Time) ParseRegister(fields []string) error {
	low, high, min, err := parseTimeRegisters(fields)
	if err != nil {
		return err
	}
	t.lowReg, t.highReg = low, high
	if min != nil {
		t.minValue = uint64(*min)
	}
	return nil
}

func (t *Time) RegisterOffsets() []uint32 { return []uint32{t.lowReg, t.highReg} }

func (t *Time) Finalise(ctx context.Context) error {
	return nil
}

func (t *Time) Get(n int) (string, error) {
	t.mu.Lock()
	unit := t.units[n]
	v := t.value[n]
	t.mu.Unlock()
	per := timeTicksPerUnit[unit]
	return strconv.FormatFloat(float64(v)/per, 'g', 12, 64), nil
}

func (t *Time) Put(n int, value string) error {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid time value %q", value)
	}
	t.mu.Lock()
	unit := t.units[n]
	t.mu.Unlock()
	per, ok := timeTicksPerUnit[unit]
	if !ok {
		return fmt.Errorf("unknown time unit %q", unit)
	}
	ticks := uint64(roundHalfEven(f * per))
	if ticks > hardware.MaxClockValue {
		return fmt.Errorf("time value out of range")
	}
	if ticks >= 1 && ticks <= t.minValue {
		return fmt.Errorf("time value falls in the forbidden band [1, %d] ticks", t.minValue)
	}
	if err := t.writeRegisters(n, ticks); err != nil {
		return err
	}
	t.mu.Lock()
	t.value[n] = ticks
	t.mu.Unlock()
	t.tracker.Bump(n, t.idx)
	return nil
}

func (t *Time) writeRegisters(n int, ticks uint64) error {
	ctx := context.Background()
	low := uint32(ticks & 0xFFFFFFFF)
	high := uint32(ticks >> 32)
	if err := t.hw.WriteRegister(ctx, t.base, uint32(n), t.lowReg, low); err != nil {
		return err
	}
	return t.hw.WriteRegister(ctx, t.base, uint32(n), t.highReg, high)
}

func (t *Time) Family() changeset.Family { return changeset.Config }

func (t *Time) ChangeSet(report uint64, changes []bool) {
	t.tracker.Fill(report, changes)
}

// roundHalfEven duplicates internal/types' banker's-rounding helper,
// which is unexported there.
func roundHalfEven(f float64) float64 {
	floor := float64(int64(f))
	if f < 0 && floor != f {
		floor--
	}
	diff := f - floor
	switch {
	case diff < 0.5:
		return floor
	case diff > 0.5:
		return floor + 1
	default:
		if int64(floor)%2 == 0 {
			return floor
		}
		return floor + 1
	}
}

var (
	_ Class        = (*Time)(nil)
	_ Getter       = (*Time)(nil)
	_ Putter       = (*Time)(nil)
	_ ChangeSetter = (*Time)(nil)
	_ Finaliser    = (*Time)(nil)
)
