package cmd

import (
	"fmt"

	"dmdclock/hal"

	"github.com/spf13/cobra"
)

var (
	headlessHz     int
	headlessTicks  uint64
	headlessScript string
	headlessDump   bool
)

var headlessCmd = &cobra.Command{
	Use:   "headless",
	Short: "Run the clock without a window",
	Long: `Run the clock on a ticker with no window. Buttons are driven by --script, a
comma-separated list of button@tick[:hold] presses, e.g.

  dmdclock headless --ticks 200 --script "menu@10,plus@40,plus@60,enter@80" --dump

Buttons: menu, minus, plus, enter. --dump prints the last frame as ASCII art.`,
	RunE: runHeadless,
}

func init() {
	headlessCmd.Flags().IntVar(&headlessHz, "hz", 60, "frame rate")
	headlessCmd.Flags().Uint64Var(&headlessTicks, "ticks", 0, "stop after N frames (0 = run until interrupted)")
	headlessCmd.Flags().StringVar(&headlessScript, "script", "", "scripted button presses")
	headlessCmd.Flags().BoolVar(&headlessDump, "dump", false, "print the last frame when the run ends")
	rootCmd.AddCommand(headlessCmd)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	script, err := hal.ParsePressScript(headlessScript)
	if err != nil {
		return fmt.Errorf("--script: %w", err)
	}
	ctx, stop := signalContext()
	defer stop()

	return quiet(hal.RunHeadless(ctx, hostConfig(cmd), newApp, hal.HeadlessConfig{
		Hz:     headlessHz,
		Ticks:  headlessTicks,
		Script: script,
		Dump:   headlessDump,
	}))
}
