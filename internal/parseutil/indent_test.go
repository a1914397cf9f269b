package parseutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndentReaderDepths(t *testing.T) {
	src := `
TTLIN 6
    VAL param uint
        RAW
PULSE 4
    DELAY time
`
	r := NewIndentReader(strings.NewReader(src))
	var got []int
	var texts []string
	for {
		l, err := r.Next()
		if err != nil {
			break
		}
		got = append(got, l.Depth)
		texts = append(texts, l.Text)
	}
	require.Equal(t, []int{0, 1, 2, 0, 1}, got)
	require.Equal(t, []string{"TTLIN 6", "VAL param uint", "RAW", "PULSE 4", "DELAY time"}, texts)
}

func TestIdentValidation(t *testing.T) {
	ok, err := Ident("ttlin_Value1")
	require.NoError(t, err)
	require.Equal(t, "ttlin_Value1", ok)

	_, err = Ident("1leading")
	require.Error(t, err)

	_, err = Ident("way_too_long_an_identifier_here")
	require.Error(t, err)
}

func TestUint32HexAndDecimal(t *testing.T) {
	v, err := Uint32("0x1F")
	require.NoError(t, err)
	require.Equal(t, uint32(31), v)

	v, err = Uint32("42")
	require.NoError(t, err)
	require.Equal(t, uint32(42), v)

	_, err = Uint32("4294967296")
	require.Error(t, err)
}
