package types

import (
	"testing"

	"github.com/pandablocks/pandad/internal/hardware"
	"github.com/pandablocks/pandad/internal/hashtable"
	"github.com/stretchr/testify/require"
)

func TestUintTypeRoundTrip(t *testing.T) {
	var ty UintType
	v, err := ty.Parse(0, "42")
	require.NoError(t, err)
	s, err := ty.Format(0, v)
	require.NoError(t, err)
	require.Equal(t, "42", s)
}

func TestIntTypeNegative(t *testing.T) {
	var ty IntType
	v, err := ty.Parse(0, "-7")
	require.NoError(t, err)
	s, err := ty.Format(0, v)
	require.NoError(t, err)
	require.Equal(t, "-7", s)
}

func TestLutTypeHex(t *testing.T) {
	var ty LutType
	v, err := ty.Parse(0, "0x1F")
	require.NoError(t, err)
	s, err := ty.Format(0, v)
	require.NoError(t, err)
	require.Equal(t, "0x0000001F", s)
}

func TestScalarTypeScaleOffset(t *testing.T) {
	ty := NewScalarType()
	ty.Scale = 0.5
	ty.Offset = 1
	v, err := ty.Parse(0, "6")
	require.NoError(t, err)
	require.Equal(t, uint32(10), v) // (6-1)/0.5 = 10
	s, err := ty.Format(0, v)
	require.NoError(t, err)
	require.Equal(t, "6", s)
}

func TestPositionTypeRoundHalfEven(t *testing.T) {
	ty := NewPositionType()
	v, err := ty.Parse(0, "2.5")
	require.NoError(t, err)
	require.Equal(t, uint32(2), v)

	v, err = ty.Parse(0, "3.5")
	require.NoError(t, err)
	require.Equal(t, uint32(4), v)
}

func TestTimeTypeUnits(t *testing.T) {
	ty := NewTimeType()
	ty.Units = "ms"
	v, err := ty.Parse(0, "8")
	require.NoError(t, err)
	require.Equal(t, uint32(hardware.ClockFrequency/1000*8), v)
}

func TestEnumTypeStatic(t *testing.T) {
	e := hashtable.NewEnum([]string{"Off", "On"})
	ty := &EnumType{Enum: e}
	v, err := ty.Parse(0, "On")
	require.NoError(t, err)
	require.Equal(t, uint32(1), v)
	s, err := ty.Format(0, v)
	require.NoError(t, err)
	require.Equal(t, "On", s)
}

func TestMuxTypeZeroSentinel(t *testing.T) {
	names := hashtable.NewNameIndex()
	require.NoError(t, names.Add("TTLIN1.VAL", 0))
	ty := &MuxType{Names: names, ZeroOK: true}

	v, err := ty.Parse(0, "ZERO")
	require.NoError(t, err)
	require.Equal(t, uint32(hardware.PosBusCount), v)
	s, err := ty.Format(0, v)
	require.NoError(t, err)
	require.Equal(t, "ZERO", s)

	v, err = ty.Parse(0, "TTLIN1.VAL")
	require.NoError(t, err)
	require.Equal(t, uint32(0), v)
}
