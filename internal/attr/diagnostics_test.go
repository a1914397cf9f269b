package attr

import (
	"testing"

	"github.com/pandablocks/pandad/internal/changeset"
	"github.com/stretchr/testify/require"
)

func TestPolledChangeRecordsDiagnostic(t *testing.T) {
	idx := changeset.NewIndex()
	a := New("UNITS", "units", 1)
	a.PolledChangeSet = true
	a.Format = func(n int) (string, error) { return "mm", nil }

	_, err := a.Changed(0, idx.Current(), idx)
	require.NoError(t, err)

	recent := Diagnostics.Recent()
	require.Equal(t, "mm", recent["UNITS#0"])
}

func TestDiagnosticCacheEvictsPastCapacity(t *testing.T) {
	d := newDiagnosticCache(2)
	d.record("A", 0, "1")
	d.record("B", 0, "2")
	d.record("C", 0, "3")

	recent := d.Recent()
	require.Len(t, recent, 2)
	require.NotContains(t, recent, "A#0")
}
