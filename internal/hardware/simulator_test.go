package hardware

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimulatorRegisterRoundTrip(t *testing.T) {
	s := NewSimulator()
	ctx := context.Background()
	require.NoError(t, s.WriteRegister(ctx, 4, 0, 2, 0xDEAD))
	v, err := s.ReadRegister(ctx, 4, 0, 2)
	require.NoError(t, err)
	require.Equal(t, uint32(0xDEAD), v)
}

func TestSimulatorBitChanges(t *testing.T) {
	s := NewSimulator()
	ctx := context.Background()
	var bits [BitBusCount]uint32
	var changes [BitBusCount]bool
	require.NoError(t, s.ReadBits(ctx, &bits, &changes))
	require.True(t, changes[0])

	require.NoError(t, s.ReadBits(ctx, &bits, &changes))
	require.False(t, changes[0])

	s.SetBit(5, 1)
	require.NoError(t, s.ReadBits(ctx, &bits, &changes))
	require.True(t, changes[5])
	require.False(t, changes[0])
}

func TestSimulatorShortTableOverflow(t *testing.T) {
	s := NewSimulator()
	ctx := context.Background()
	h, err := s.OpenShortTable(ctx, 0, 0, 4)
	require.NoError(t, err)
	require.NoError(t, s.WriteTable(ctx, h, 0, []uint32{1, 2, 3, 4}))
	require.Error(t, s.WriteTable(ctx, h, 0, []uint32{1, 2, 3, 4, 5}))

	out := make([]uint32, 4)
	require.NoError(t, s.ReadTableData(ctx, h, 0, out))
	require.Equal(t, []uint32{1, 2, 3, 4}, out)
}

func TestSimulatorValidateRequiresBinding(t *testing.T) {
	s := NewSimulator()
	s.RequireNamedRegister("PCAP_ARM")
	require.Error(t, s.Validate())
	require.NoError(t, s.SetNamedRegister("PCAP_ARM", 12))
	require.NoError(t, s.Validate())
}
