package class

import (
	"context"
	"testing"

	"github.com/pandablocks/pandad/internal/changeset"
	"github.com/pandablocks/pandad/internal/hardware"
	"github.com/stretchr/testify/require"
)

func TestTableClassWriteAndRead(t *testing.T) {
	sim := hardware.NewSimulator()
	idx := changeset.NewIndex()
	tb := NewTable("SEQ", sim, 0, 1, 2, false, idx)
	require.NoError(t, tb.ParseRegister([]string{"16"}))
	require.NoError(t, tb.Finalise(context.Background()))

	w, err := tb.PutTable(0, false, false)
	require.NoError(t, err)
	require.NoError(t, w.WriteLine("1 2"))
	require.NoError(t, w.WriteLine("3 4"))
	require.NoError(t, w.Close(context.Background()))

	lines, err := tb.GetMany(0)
	require.NoError(t, err)
	require.Equal(t, []string{"1 2", "3 4"}, lines)
	require.Equal(t, changeset.Table, tb.Family())
}
