package dispatch

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pandablocks/pandad/internal/changeset"
	"github.com/pandablocks/pandad/internal/database"
	"github.com/pandablocks/pandad/internal/hardware"
)

func mustLoad(t *testing.T, config, registers string) (*database.Database, *changeset.Index, *hardware.Simulator) {
	t.Helper()
	hw := hardware.NewSimulator()
	idx := changeset.NewIndex()
	db, err := database.Load(context.Background(), database.Sources{
		Config:    strings.NewReader(config),
		Registers: strings.NewReader(registers),
	}, hw, idx)
	require.NoError(t, err)
	return db, idx, hw
}

// Scenario 1 (§8): TTLIN[1].VAL=7 then ?.
func TestDispatchScenarioParamWrite(t *testing.T) {
	db, idx, hw := mustLoad(t,
		"TTLIN\n    VAL param uint\n",
		"*REG\nTTLIN 0\n    VAL 0\n")
	_ = hw
	rt := NewRuntime(db, idx)
	sess := NewSession()

	r1 := Dispatch(context.Background(), rt, sess, "TTLIN.VAL=7")
	require.Equal(t, "OK\n", r1.Render())

	r2 := Dispatch(context.Background(), rt, sess, "TTLIN.VAL?")
	require.Equal(t, "OK =7\n", r2.Render())
}

// Scenario 2 (§8): PULSE[4].DELAY is a time field; RAW exposes ticks.
func TestDispatchScenarioTimeRaw(t *testing.T) {
	db, idx, _ := mustLoad(t,
		"PULSE 4\n    DELAY time\n",
		"*REG\nPULSE 0\n    DELAY 0 1\n")
	rt := NewRuntime(db, idx)
	sess := NewSession()

	r1 := Dispatch(context.Background(), rt, sess, "PULSE1.DELAY=1.0")
	require.Equal(t, "OK\n", r1.Render())

	r2 := Dispatch(context.Background(), rt, sess, "PULSE1.DELAY.RAW?")
	require.Equal(t, "OK =125000000\n", r2.Render())
}

// Scenario 3 (§8): a short table write then read.
func TestDispatchScenarioTableRoundTrip(t *testing.T) {
	db, idx, _ := mustLoad(t,
		"SEQ\n    TABLE table\n",
		"*REG\nSEQ 0\n    TABLE 8\n")
	rt := NewRuntime(db, idx)
	sess := NewSession()

	r := Dispatch(context.Background(), rt, sess, "SEQ.TABLE<")
	require.Equal(t, ResultTableWrite, r.Kind)
	require.NoError(t, r.Writer.WriteLine("1"))
	require.NoError(t, r.Writer.WriteLine("2"))
	require.NoError(t, r.Writer.WriteLine("3"))
	require.NoError(t, r.Writer.Close(context.Background()))

	read := Dispatch(context.Background(), rt, sess, "SEQ.TABLE?")
	require.Equal(t, "!1\n!2\n!3\n.\n", read.Render())
}

// Scenario 4 (§8): a fresh connection's first *CHANGES? reports every
// field's current state (nothing has been reported yet); a second poll
// with no intervening write then reports nothing; a write between two
// polls is reported on the next one.
func TestDispatchScenarioChanges(t *testing.T) {
	db, idx, _ := mustLoad(t,
		"TTLIN\n    VAL param uint\n",
		"*REG\nTTLIN 0\n    VAL 0\n")
	rt := NewRuntime(db, idx)
	sess := NewSession()

	baseline := Dispatch(context.Background(), rt, sess, "*CHANGES?")
	require.Equal(t, "!TTLIN.VAL=0\n.\n", baseline.Render())

	noop := Dispatch(context.Background(), rt, sess, "*CHANGES?")
	require.Equal(t, "OK\n.\n", noop.Render())

	require.Equal(t, "OK\n", Dispatch(context.Background(), rt, sess, "TTLIN.VAL=9").Render())

	after := Dispatch(context.Background(), rt, sess, "*CHANGES?")
	require.Equal(t, "!TTLIN.VAL=9\n.\n", after.Render())
}

// Scenario 5 (§8): pos_mux lookup round trip through a bit_out/pos_out
// registered name.
func TestDispatchScenarioPosMuxLookup(t *testing.T) {
	db, idx, _ := mustLoad(t,
		"COUNTER\n    OUT pos_out\nPCAP\n    TRIG pos_mux\n",
		"*REG\nCOUNTER 0\n    OUT 5\nPCAP 1\n    TRIG 0\n")
	rt := NewRuntime(db, idx)
	sess := NewSession()

	w := Dispatch(context.Background(), rt, sess, "PCAP.TRIG=COUNTER.OUT")
	require.Equal(t, "OK\n", w.Render())

	r := Dispatch(context.Background(), rt, sess, "PCAP.TRIG?")
	require.Equal(t, "OK =COUNTER.OUT\n", r.Render())
}

func TestDispatchRejectsOmittedIndexOnMultiInstanceBlock(t *testing.T) {
	db, idx, _ := mustLoad(t,
		"PULSE 2\n    WIDTH param uint\n",
		"*REG\nPULSE 0\n    WIDTH 0\n")
	rt := NewRuntime(db, idx)
	sess := NewSession()

	r := Dispatch(context.Background(), rt, sess, "PULSE.WIDTH?")
	require.Equal(t, ResultErr, r.Kind)
}

func TestDispatchUnknownBlock(t *testing.T) {
	db, idx, _ := mustLoad(t, "TTLIN\n    VAL param uint\n", "*REG\nTTLIN 0\n    VAL 0\n")
	rt := NewRuntime(db, idx)
	sess := NewSession()

	r := Dispatch(context.Background(), rt, sess, "NOPE.VAL?")
	require.Equal(t, ResultErr, r.Kind)
	require.ErrorIs(t, r.Err, ErrNoSuchBlock)
}

func TestDispatchBlocksAndIdn(t *testing.T) {
	db, idx, _ := mustLoad(t,
		"TTLIN\n    VAL param uint\nPULSE 2\n    WIDTH param uint\n",
		"*REG\nTTLIN 0\n    VAL 0\nPULSE 1\n    WIDTH 0\n")
	rt := NewRuntime(db, idx)
	sess := NewSession()

	idn := Dispatch(context.Background(), rt, sess, "*IDN?")
	require.Equal(t, ResultOKValue, idn.Kind)

	blocks := Dispatch(context.Background(), rt, sess, "*BLOCKS?")
	require.Equal(t, []string{"TTLIN", "PULSE 2"}, blocks.Lines)
}

func TestParseEntityRejectsGarbage(t *testing.T) {
	_, err := ParseEntity("")
	require.Error(t, err)
	_, err = ParseEntity("1BAD")
	require.Error(t, err)
}

func TestParseEntityFieldWildcard(t *testing.T) {
	e, err := ParseEntity("PULSE2.*")
	require.NoError(t, err)
	require.Equal(t, "PULSE", e.Block)
	require.True(t, e.HasIndex)
	require.Equal(t, 1, e.Instance)
	require.True(t, e.FieldStar)
}
