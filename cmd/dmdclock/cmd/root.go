package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"dmdclock/app"
	"dmdclock/hal"
	"dmdclock/internal/buildinfo"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flashPath    string
	setupTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "dmdclock",
	Short: "Dot-matrix clock firmware and desktop simulator",
	Long: `Runs the dot-matrix clock: the clock screens and the four-button settings
editor. Without a subcommand it opens the desktop simulator window.

Keys in the window:
  Esc / Backspace     Menu (back)
  Left / Down         Minus
  Right / Up          Plus
  Enter / Space       Enter (edit, save)

Environment (also read from .env):
  DMDCLOCK_FLASH_PATH   settings flash image (default dmdclock.flash)`,
	Version: buildinfo.Long(),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "warning: .env: %v\n", err)
		}
	},
	RunE: runWindow,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flashPath, "flash", "", "settings flash image (overrides "+hal.FlashPathEnv+")")
	rootCmd.PersistentFlags().DurationVar(&setupTimeout, "setup-timeout", app.DefaultSetupTimeout, "leave setup after this long without a button press (negative disables)")
}

func hostConfig(cmd *cobra.Command) hal.HostConfig {
	return hal.HostConfig{FlashPath: flashPath, Out: cmd.OutOrStdout()}
}

func newApp(h hal.HAL) func() error {
	return app.NewWithConfig(h, app.Config{SetupTimeout: setupTimeout})
}

// signalContext is cancelled on Ctrl-C.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// quiet drops the error of a run ended by Ctrl-C.
func quiet(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
