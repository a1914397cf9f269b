package table

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"testing"

	"github.com/pandablocks/pandad/internal/changeset"
	"github.com/pandablocks/pandad/internal/hardware"
	"github.com/stretchr/testify/require"
)

func newTestBlock(t *testing.T) (*Block, *hardware.Simulator) {
	sim := hardware.NewSimulator()
	h, err := sim.OpenShortTable(context.Background(), 0, 0, 16)
	require.NoError(t, err)
	idx := changeset.NewIndex()
	tr := changeset.NewTracker(1)
	return NewBlock(sim, h, 2, 16, tr, 0, idx), sim
}

func TestWriterASCIICommit(t *testing.T) {
	b, _ := newTestBlock(t)
	w, err := b.OpenWriter(false, false)
	require.NoError(t, err)
	require.NoError(t, w.WriteLine("1 2"))
	require.NoError(t, w.WriteLine("3 4"))
	require.NoError(t, w.Close(context.Background()))

	data, length := b.Committed()
	require.Equal(t, 4, length)
	require.Equal(t, []uint32{1, 2, 3, 4}, data)
}

func TestWriterRejectsBadRowWidth(t *testing.T) {
	b, _ := newTestBlock(t)
	w, err := b.OpenWriter(false, false)
	require.NoError(t, err)
	require.NoError(t, w.WriteLine("1 2 3"))
	require.Error(t, w.Close(context.Background()))
}

func TestSecondWriterBusy(t *testing.T) {
	b, _ := newTestBlock(t)
	_, err := b.OpenWriter(false, false)
	require.NoError(t, err)
	_, err = b.OpenWriter(false, false)
	require.Equal(t, ErrBusy, err)
}

func TestWriterBinaryBase64(t *testing.T) {
	b, _ := newTestBlock(t)
	w, err := b.OpenWriter(false, true)
	require.NoError(t, err)

	raw := make([]byte, 8)
	binary.LittleEndian.PutUint32(raw[0:4], 10)
	binary.LittleEndian.PutUint32(raw[4:8], 20)
	require.NoError(t, w.WriteLine(base64.StdEncoding.EncodeToString(raw)))
	require.NoError(t, w.Close(context.Background()))

	data, length := b.Committed()
	require.Equal(t, 2, length)
	require.Equal(t, []uint32{10, 20}, data)
}

func TestWriterAppendContinuesOffset(t *testing.T) {
	b, _ := newTestBlock(t)
	w, err := b.OpenWriter(false, false)
	require.NoError(t, err)
	require.NoError(t, w.WriteLine("1 2"))
	require.NoError(t, w.Close(context.Background()))

	w2, err := b.OpenWriter(true, false)
	require.NoError(t, err)
	require.NoError(t, w2.WriteLine("3 4"))
	require.NoError(t, w2.Close(context.Background()))

	data, length := b.Committed()
	require.Equal(t, 4, length)
	require.Equal(t, []uint32{1, 2, 3, 4}, data)
}

func TestValidateSubFieldsOverlap(t *testing.T) {
	fields := []SubField{{Name: "a", Hi: 3, Lo: 0}, {Name: "b", Hi: 5, Lo: 2}}
	require.Error(t, ValidateSubFields(fields, 32))
}

func TestValidateSubFieldsOK(t *testing.T) {
	fields := []SubField{{Name: "a", Hi: 3, Lo: 0}, {Name: "b", Hi: 7, Lo: 4}}
	require.NoError(t, ValidateSubFields(fields, 32))
}
