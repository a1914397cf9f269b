package dataoptions

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDefault(t *testing.T) {
	opt, err := Parse("")
	require.NoError(t, err)
	require.Equal(t, Default(), opt)
}

func TestParseBareAlias(t *testing.T) {
	opt, err := Parse("BARE")
	require.NoError(t, err)
	require.Equal(t, Unframed, opt.Format)
	require.Equal(t, Unscaled, opt.Process)
	require.True(t, opt.OmitHeader)
	require.True(t, opt.OmitStatus)
	require.True(t, opt.OneShot)
}

func TestParseCombinesTokens(t *testing.T) {
	opt, err := Parse("framed raw no_header xml")
	require.NoError(t, err)
	require.Equal(t, Framed, opt.Format)
	require.Equal(t, Raw, opt.Process)
	require.True(t, opt.OmitHeader)
	require.True(t, opt.XMLHeader)
	require.False(t, opt.OneShot)
}

func TestParseDefaultAliasResetsPriorTokens(t *testing.T) {
	opt, err := Parse("BARE DEFAULT")
	require.NoError(t, err)
	require.Equal(t, Default(), opt)
}

func TestParseRejectsUnknownToken(t *testing.T) {
	_, err := Parse("NOT_AN_OPTION")
	require.Error(t, err)
}

func TestFormatAndProcessStrings(t *testing.T) {
	require.Equal(t, "ASCII", Ascii.String())
	require.Equal(t, "BASE64", Base64.String())
	require.Equal(t, "FRAMED", Framed.String())
	require.Equal(t, "UNFRAMED", Unframed.String())
	require.Equal(t, "SCALED", Scaled.String())
	require.Equal(t, "UNSCALED", Unscaled.String())
	require.Equal(t, "RAW", Raw.String())
}
