package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"dmdclock/config"
	"dmdclock/hal"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("dmdclock %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestConfigShowErasedFlash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clock.flash")
	out := run(t, "config", "show", "--flash", path)
	for _, want := range []string{"factory settings shown", "brightness:   32/63", "clock delay:  10s", "dot colour:   RED"} {
		if !strings.Contains(out, want) {
			t.Fatalf("config show = %q, want it to contain %q", out, want)
		}
	}
}

func TestConfigShowStored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clock.flash")
	flash, err := hal.OpenFileFlash(path)
	if err != nil {
		t.Fatalf("OpenFileFlash() = %v", err)
	}
	it := config.Defaults()
	it.DST = 1
	it.TimeFormat = config.Format12HourAMPM
	it.Brightness = 7
	it.ClockFont = 1
	if err := config.NewStore(flash, 0).Save(it); err != nil {
		t.Fatalf("Save() = %v", err)
	}

	out := run(t, "config", "show", "--flash", path)
	for _, want := range []string{"dst:          on", "12 hour with AM/PM", "brightness:   7/63", "clock font:   TREK"} {
		if !strings.Contains(out, want) {
			t.Fatalf("config show = %q, want it to contain %q", out, want)
		}
	}
}

func TestConfigReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clock.flash")
	if out := run(t, "config", "reset", "--flash", path); !strings.Contains(out, "factory settings written") {
		t.Fatalf("config reset = %q", out)
	}
	flash, err := hal.OpenFileFlash(path)
	if err != nil {
		t.Fatalf("OpenFileFlash() = %v", err)
	}
	got, err := config.NewStore(flash, 0).Load()
	if err != nil {
		t.Fatalf("Load() after reset = %v", err)
	}
	if got != config.Defaults() {
		t.Fatalf("Load() after reset = %v, want %v", got, config.Defaults())
	}
}

func TestHeadlessRejectsBadScript(t *testing.T) {
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"headless", "--script", "jump@3"})
	if err := rootCmd.Execute(); err == nil || !strings.Contains(err.Error(), "--script") {
		t.Fatalf("headless --script jump@3 = %v, want a --script error", err)
	}
}

func TestHeadlessRunsScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clock.flash")
	out := run(t, "headless", "--flash", path, "--hz", "100", "--ticks", "30", "--script", "menu@2:10", "--dump")
	for _, want := range []string{"hal: flash image " + path, "setup: start", "display: brightness=32"} {
		if !strings.Contains(out, want) {
			t.Fatalf("headless output = %q, want it to contain %q", out, want)
		}
	}
}
