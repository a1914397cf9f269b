package dataoptions

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pandablocks/pandad/internal/changeset"
	"github.com/pandablocks/pandad/internal/database"
	"github.com/pandablocks/pandad/internal/dispatch"
	"github.com/pandablocks/pandad/internal/hardware"
)

func loadTestDB(t *testing.T) *database.Database {
	t.Helper()
	hw := hardware.NewSimulator()
	idx := changeset.NewIndex()
	db, err := database.Load(context.Background(), database.Sources{
		Config:    strings.NewReader("COUNTER\n    OUT pos_out\n"),
		Registers: strings.NewReader("*REG\nCOUNTER 0\n    OUT 5\n"),
	}, hw, idx)
	require.NoError(t, err)
	return db
}

func TestCapturedFieldsEmptyUntilArmed(t *testing.T) {
	db := loadTestDB(t)

	none, err := CapturedFields(db)
	require.NoError(t, err)
	require.Empty(t, none)

	rt := dispatch.NewRuntime(db, changeset.NewIndex())
	sess := dispatch.NewSession()
	require.Equal(t, "OK\n", dispatch.Dispatch(context.Background(), rt, sess, "COUNTER.OUT.CAPTURE=Triggered").Render())

	fields, err := CapturedFields(db)
	require.NoError(t, err)
	require.Len(t, fields, 1)
	require.Equal(t, "COUNTER.OUT", fields[0].Name)
	require.Equal(t, "pos_out", fields[0].Type)
	require.Equal(t, "Triggered", fields[0].Capture)
}

func TestRenderHeaderOmitted(t *testing.T) {
	opt := bare()
	out, err := RenderHeader(opt, []CapturedField{{Name: "COUNTER.OUT", Type: "pos_out", Capture: "Triggered"}})
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestRenderHeaderText(t *testing.T) {
	opt := Default()
	out, err := RenderHeader(opt, []CapturedField{{Name: "COUNTER.OUT", Type: "pos_out", Capture: "Triggered"}})
	require.NoError(t, err)
	require.Equal(t, "fields:\n  COUNTER.OUT pos_out Triggered\n", out)
}

func TestRenderHeaderXML(t *testing.T) {
	opt := Default()
	opt.XMLHeader = true
	out, err := RenderHeader(opt, []CapturedField{
		{Name: "TTLIN1.VAL", Type: "param", Capture: "Value", Scale: "2", Offset: "0", Units: "mm"},
	})
	require.NoError(t, err)
	require.Contains(t, out, `name="TTLIN1.VAL"`)
	require.Contains(t, out, `scale="2"`)
	require.Contains(t, out, `units="mm"`)
}
