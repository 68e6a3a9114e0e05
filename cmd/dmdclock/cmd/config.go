package cmd

import (
	"errors"
	"fmt"

	"dmdclock/clockface"
	"dmdclock/config"
	"dmdclock/dmd"
	"dmdclock/hal"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or reset the stored settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored settings",
	RunE:  runConfigShow,
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Write the factory settings",
	RunE:  runConfigReset,
}

func init() {
	configCmd.AddCommand(configShowCmd, configResetCmd)
	rootCmd.AddCommand(configCmd)
}

func openStore() (*config.Store, string, error) {
	path := hal.FlashPath(flashPath)
	flash, err := hal.OpenFileFlash(path)
	if err != nil {
		return nil, "", err
	}
	return config.NewStore(flash, 0), path, nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	store, path, err := openStore()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "flash:        %s\n", path)

	it, err := store.Load()
	switch {
	case errors.Is(err, config.ErrNoConfig):
		fmt.Fprintln(out, "(no settings record, factory settings shown)")
		it = config.Defaults()
	case err != nil:
		return fmt.Errorf("%s: %w", path, err)
	}
	fmt.Fprintf(out, "dst:          %s\n", onOff(it.DSTOn()))
	fmt.Fprintf(out, "time format:  %s\n", timeFormatName(it.TimeFormat))
	fmt.Fprintf(out, "brightness:   %d/%d\n", it.Brightness, config.MaxBrightness)
	fmt.Fprintf(out, "clock delay:  %s\n", it.Delay())
	fmt.Fprintf(out, "clock font:   %s\n", clockface.Names()[it.ClockFont])
	fmt.Fprintf(out, "dot colour:   %s\n", dmd.Colour(it.DotColour))
	return nil
}

func runConfigReset(cmd *cobra.Command, args []string) error {
	store, path, err := openStore()
	if err != nil {
		return err
	}
	if err := store.Save(config.Defaults()); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: factory settings written\n", path)
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func timeFormatName(f int) string {
	switch f {
	case config.Format24Hour:
		return "24 hour"
	case config.Format12Hour:
		return "12 hour"
	case config.Format12HourAMPM:
		return "12 hour with AM/PM"
	default:
		return "?"
	}
}
