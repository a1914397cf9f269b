package attr

import (
	"testing"

	"github.com/pandablocks/pandad/internal/changeset"
	"github.com/stretchr/testify/require"
)

func TestMapRejectsDuplicateNames(t *testing.T) {
	m := NewMap()
	require.NoError(t, m.Add(New("RAW", "raw value", 1)))
	require.Error(t, m.Add(New("RAW", "again", 1)))
}

func TestMapRejectsUnformattedPolledAttribute(t *testing.T) {
	m := NewMap()
	a := New("UNITS", "units", 1)
	a.PolledChangeSet = true
	require.Error(t, m.Add(a))
}

func TestAttributePolledChangeDetection(t *testing.T) {
	idx := changeset.NewIndex()
	a := New("UNITS", "units", 2)
	a.PolledChangeSet = true
	val := []string{"ms", "ms"}
	a.Format = func(n int) (string, error) { return val[n], nil }

	report := idx.Current()
	changed, err := a.Changed(0, report, idx)
	require.NoError(t, err)
	require.True(t, changed, "first observation is always a change")

	report2 := idx.Current()
	changed, err = a.Changed(0, report2, idx)
	require.NoError(t, err)
	require.False(t, changed)

	val[0] = "us"
	changed, err = a.Changed(0, report2, idx)
	require.NoError(t, err)
	require.True(t, changed)
}
