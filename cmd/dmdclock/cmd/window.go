package cmd

import (
	"dmdclock/hal"

	"github.com/spf13/cobra"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Run the clock in a desktop window (default)",
	RunE:  runWindow,
}

func init() {
	rootCmd.AddCommand(windowCmd)
}

func runWindow(cmd *cobra.Command, args []string) error {
	return hal.RunWindow(hostConfig(cmd), newApp)
}
