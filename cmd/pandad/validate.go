package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pandablocks/pandad/internal/changeset"
	"github.com/pandablocks/pandad/internal/database"
	"github.com/pandablocks/pandad/internal/hardware"
)

func newValidateConfigCmd() *cobra.Command {
	var configDir string

	cmd := &cobra.Command{
		Use:   "validate-config",
		Short: "Load a config directory and report validation errors without serving",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidateConfig(cmd, configDir)
		},
	}
	cmd.Flags().StringVar(&configDir, "config-dir", "", "directory containing config, registers and description files")
	cmd.MarkFlagRequired("config-dir")
	return cmd
}

func runValidateConfig(cmd *cobra.Command, configDir string) error {
	src, closeSources, err := openSources(configDir)
	if err != nil {
		return err
	}
	defer closeSources()

	hw := hardware.NewSimulator()
	idx := changeset.NewIndex()
	if _, err := database.Load(cmd.Context(), src, hw, idx); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "config OK")
	return nil
}
