//go:build !tinygo

package hal

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"dmdclock/dmd"
)

func TestParsePressScript(t *testing.T) {
	got, err := ParsePressScript(" enter@30, plus@60:40,,Menu@0")
	if err != nil {
		t.Fatalf("ParsePressScript: %v", err)
	}
	want := []Press{
		{Button: ButtonEnter, At: 30, Hold: DefaultHoldTicks},
		{Button: ButtonPlus, At: 60, Hold: 40},
		{Button: ButtonMenu, At: 0, Hold: DefaultHoldTicks},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("press %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestParsePressScriptErrors(t *testing.T) {
	for _, s := range []string{"enter", "select@3", "plus@x", "plus@3:0", "plus@3:y"} {
		if _, err := ParsePressScript(s); err == nil {
			t.Fatalf("ParsePressScript(%q) err = nil", s)
		}
	}
}

func TestLevels(t *testing.T) {
	script := []Press{{Button: ButtonPlus, At: 5, Hold: 2}}
	for tick, want := range map[uint64]bool{4: false, 5: true, 6: true, 7: false} {
		if got := levels(script, tick)[ButtonPlus]; got != want {
			t.Fatalf("levels(%d)[plus] = %v, want %v", tick, got, want)
		}
	}
}

func TestRunHeadlessDrivesPins(t *testing.T) {
	var out bytes.Buffer
	host := HostConfig{FlashPath: filepath.Join(t.TempDir(), "f"), Out: &out}
	cfg := HeadlessConfig{
		Hz:     1000,
		Ticks:  6,
		Script: []Press{{Button: ButtonEnter, At: 2, Hold: 2}},
		Dump:   true,
	}

	var seen []bool
	newApp := func(h HAL) func() error {
		pin := h.Buttons().Pin(ButtonEnter)
		frame := dmd.NewFrame()
		return func() error {
			seen = append(seen, pin.Pressed())
			frame.SetDot(0, 0, dmd.MaxLevel)
			return h.Display().SetFrame(frame)
		}
	}
	if err := RunHeadless(context.Background(), host, newApp, cfg); err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}

	want := []bool{false, false, true, true, false, false}
	if len(seen) != len(want) {
		t.Fatalf("steps = %d, want %d", len(seen), len(want))
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("step %d pressed = %v, want %v", i, seen[i], want[i])
		}
	}
	if !strings.Contains(out.String(), "|@") {
		t.Fatalf("dump missing lit dot:\n%s", out.String())
	}
}
