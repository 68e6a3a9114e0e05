//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultHoldTicks is how long a scripted press holds its button.
const DefaultHoldTicks = 3

// Press holds one button down for Hold ticks starting at tick At.
type Press struct {
	Button ButtonID
	At     uint64
	Hold   uint64
}

// ParsePressScript parses a comma-separated press list such as
// "enter@30,plus@60:40". Each entry is button@tick with an optional :hold
// tick count.
func ParsePressScript(s string) ([]Press, error) {
	var out []Press
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		name, at, ok := strings.Cut(field, "@")
		if !ok {
			return nil, fmt.Errorf("press %q: missing @tick", field)
		}
		id, ok := ParseButton(strings.ToLower(strings.TrimSpace(name)))
		if !ok {
			return nil, fmt.Errorf("press %q: unknown button %q", field, name)
		}
		p := Press{Button: id, Hold: DefaultHoldTicks}
		if tick, hold, ok := strings.Cut(at, ":"); ok {
			n, err := strconv.ParseUint(hold, 10, 64)
			if err != nil || n == 0 {
				return nil, fmt.Errorf("press %q: bad hold %q", field, hold)
			}
			p.Hold = n
			at = tick
		}
		n, err := strconv.ParseUint(at, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("press %q: bad tick %q", field, at)
		}
		p.At = n
		out = append(out, p)
	}
	return out, nil
}

// levels returns which buttons the script holds down at tick.
func levels(script []Press, tick uint64) [NumButtons]bool {
	var down [NumButtons]bool
	for _, p := range script {
		if tick >= p.At && tick < p.At+p.Hold {
			down[p.Button] = true
		}
	}
	return down
}

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Hz     int
	Ticks  uint64
	Script []Press
	// Dump logs the last frame as ASCII art when the run ends.
	Dump bool
}

// RunHeadless runs the clock without opening a window, driving the buttons
// from cfg.Script.
func RunHeadless(ctx context.Context, host HostConfig, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}

	h := newHost(host)
	step := newApp(h)
	if cfg.Dump {
		defer dumpDisplay(h.logger, h.display)
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			for id, down := range levels(cfg.Script, tick) {
				h.pins[id].Set(down)
			}
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}

func dumpDisplay(l Logger, d *hostDisplay) {
	frame, brightness, colour := d.snapshot()
	l.WriteLineString(fmt.Sprintf("display: brightness=%d colour=%s", brightness, colour))
	for _, line := range frame.Lines() {
		l.WriteLineString("|" + line)
	}
}
