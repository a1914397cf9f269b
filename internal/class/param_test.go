package class

import (
	"context"
	"testing"

	"github.com/pandablocks/pandad/internal/attr"
	"github.com/pandablocks/pandad/internal/changeset"
	"github.com/pandablocks/pandad/internal/hardware"
	"github.com/pandablocks/pandad/internal/types"
	"github.com/stretchr/testify/require"
)

func TestParamWriteThrough(t *testing.T) {
	sim := hardware.NewSimulator()
	idx := changeset.NewIndex()
	m := attr.NewMap()
	p, err := NewParam("VAL", &types.UintType{}, sim, 4, 2, idx, m)
	require.NoError(t, err)
	require.NoError(t, p.ParseRegister([]string{"3"}))

	require.NoError(t, p.Put(0, "42"))
	s, err := p.Get(0)
	require.NoError(t, err)
	require.Equal(t, "42", s)

	v, err := sim.ReadRegister(context.Background(), 4, 0, 3)
	require.NoError(t, err)
	require.Equal(t, uint32(42), v)
}

func TestParamFinaliseCachesEveryInstance(t *testing.T) {
	sim := hardware.NewSimulator()
	idx := changeset.NewIndex()
	m := attr.NewMap()
	p, err := NewParam("VAL", &types.UintType{}, sim, 0, 3, idx, m)
	require.NoError(t, err)
	require.NoError(t, p.ParseRegister([]string{"0"}))

	require.NoError(t, sim.WriteRegister(context.Background(), 0, 2, 0, 55))
	require.NoError(t, p.Finalise(context.Background()))

	s, err := p.Get(2)
	require.NoError(t, err)
	require.Equal(t, "55", s, "Finalise must prime every instance's cache, not just instance 0")
}

func TestParamChangeSet(t *testing.T) {
	sim := hardware.NewSimulator()
	idx := changeset.NewIndex()
	m := attr.NewMap()
	p, err := NewParam("VAL", &types.UintType{}, sim, 0, 2, idx, m)
	require.NoError(t, err)
	require.NoError(t, p.ParseRegister([]string{"0"}))

	report := idx.Current()
	require.NoError(t, p.Put(1, "7"))

	changes := make([]bool, 2)
	p.ChangeSet(report, changes)
	require.Equal(t, []bool{false, true}, changes)
	require.Equal(t, changeset.Config, p.Family())
}

func TestReadOnlyBumpsOnValueChange(t *testing.T) {
	sim := hardware.NewSimulator()
	idx := changeset.NewIndex()
	r := NewRead("STATUS", &types.UintType{}, sim, 0, 1, idx)
	require.NoError(t, r.ParseRegister([]string{"1"}))

	report := idx.Current()
	require.NoError(t, r.Refresh(context.Background(), 0))
	changes := []bool{false}
	r.ChangeSet(report, changes)
	require.False(t, changes[0], "value didn't change, no bump expected")

	require.NoError(t, sim.WriteRegister(context.Background(), 0, 0, 1, 99))
	require.NoError(t, r.Refresh(context.Background(), 0))
	r.ChangeSet(report, changes)
	require.True(t, changes[0])
}

func TestTimeClassForbiddenBand(t *testing.T) {
	sim := hardware.NewSimulator()
	idx := changeset.NewIndex()
	m := attr.NewMap()
	tm, err := NewTime("DELAY", sim, 0, 1, idx, m)
	require.NoError(t, err)
	require.NoError(t, tm.ParseRegister([]string{"0", "1", ">", "1000"}))

	err = tm.Put(0, "0.0000001")
	require.Error(t, err, "expect forbidden-band rejection for a tiny nonzero value")

	require.NoError(t, tm.Put(0, "1"))
	s, err := tm.Get(0)
	require.NoError(t, err)
	require.Equal(t, "1", s)
}
