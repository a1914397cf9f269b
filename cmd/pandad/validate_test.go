package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfigDir(t *testing.T, config, registers string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config"), []byte(config), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "registers"), []byte(registers), 0o644))
	return dir
}

func TestValidateConfigAcceptsWellFormedDirectory(t *testing.T) {
	dir := writeConfigDir(t, "TTLIN\n    VAL param uint\n", "*REG\nTTLIN 0\n    VAL 0\n")

	cmd := newValidateConfigCmd()
	cmd.SetArgs([]string{"--config-dir", dir})
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "config OK")
}

func TestValidateConfigRejectsUnknownRegisterBlock(t *testing.T) {
	dir := writeConfigDir(t, "TTLIN\n    VAL param uint\n", "*REG\nGHOST 0\n    VAL 0\n")

	cmd := newValidateConfigCmd()
	cmd.SetArgs([]string{"--config-dir", dir})
	cmd.SetOut(&bytes.Buffer{})

	require.Error(t, cmd.Execute())
}

func TestValidateConfigRejectsMissingDirectory(t *testing.T) {
	cmd := newValidateConfigCmd()
	cmd.SetArgs([]string{"--config-dir", filepath.Join(t.TempDir(), "missing")})
	cmd.SetOut(&bytes.Buffer{})

	require.Error(t, cmd.Execute())
}
