// Command pandad is the control-plane server for a programmable
// timing/DAQ device: it loads a config directory and serves the
// line-oriented command protocol over TCP.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pandad",
	Short: "Control-plane server for a programmable timing/DAQ device",
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newValidateConfigCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
