package button

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestButton(level *bool) (*Button, *fakeClock) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	b := NewWithClock("test", LevelFunc(func() bool { return *level }), DefaultTiming, clk.now)
	return b, clk
}

func TestReleasedIsSteadyOff(t *testing.T) {
	level := false
	b, clk := newTestButton(&level)
	for i := 0; i < 5; i++ {
		if got := b.Read(); got != SteadyOff {
			t.Fatalf("Read() = %v, want %v", got, SteadyOff)
		}
		clk.advance(16 * time.Millisecond)
	}
}

func TestPressIsDebounced(t *testing.T) {
	level := false
	b, clk := newTestButton(&level)
	b.Read()

	level = true
	clk.advance(time.Millisecond)
	if got := b.Read(); got != SteadyOff {
		t.Fatalf("Read() before debounce = %v, want %v", got, SteadyOff)
	}

	clk.advance(DefaultTiming.Debounce)
	if got := b.Read(); got != Rising {
		t.Fatalf("Read() after debounce = %v, want %v", got, Rising)
	}
	clk.advance(16 * time.Millisecond)
	if got := b.Read(); got != SteadyOn {
		t.Fatalf("Read() while held = %v, want %v", got, SteadyOn)
	}
}

func TestBounceIsIgnored(t *testing.T) {
	level := false
	b, clk := newTestButton(&level)
	b.Read()

	for i := 0; i < 4; i++ {
		level = !level
		clk.advance(5 * time.Millisecond)
		if got := b.Read(); got != SteadyOff {
			t.Fatalf("bounce %d: Read() = %v, want %v", i, got, SteadyOff)
		}
	}
}

func TestHoldRepeats(t *testing.T) {
	level := false
	b, clk := newTestButton(&level)
	b.Read()

	level = true
	b.Read()
	clk.advance(DefaultTiming.Debounce)
	if got := b.Read(); got != Rising {
		t.Fatalf("Read() = %v, want %v", got, Rising)
	}

	clk.advance(DefaultTiming.HoldDelay - time.Millisecond)
	if got := b.Read(); got != SteadyOn {
		t.Fatalf("Read() before hold delay = %v, want %v", got, SteadyOn)
	}
	clk.advance(time.Millisecond)
	if got := b.Read(); got != OnHold {
		t.Fatalf("Read() at hold delay = %v, want %v", got, OnHold)
	}

	clk.advance(DefaultTiming.RepeatPeriod / 2)
	if got := b.Read(); got != SteadyOn {
		t.Fatalf("Read() between repeats = %v, want %v", got, SteadyOn)
	}
	clk.advance(DefaultTiming.RepeatPeriod / 2)
	if got := b.Read(); got != OnHold {
		t.Fatalf("Read() at repeat = %v, want %v", got, OnHold)
	}
}

func TestReleaseAfterPress(t *testing.T) {
	level := false
	b, clk := newTestButton(&level)
	b.Read()
	level = true
	b.Read()
	clk.advance(DefaultTiming.Debounce)
	b.Read()

	level = false
	b.Read()
	clk.advance(DefaultTiming.Debounce)
	if got := b.Read(); got != SteadyOff {
		t.Fatalf("Read() after release = %v, want %v", got, SteadyOff)
	}

	level = true
	b.Read()
	clk.advance(DefaultTiming.Debounce)
	if got := b.Read(); got != Rising {
		t.Fatalf("second press = %v, want %v", got, Rising)
	}
}

func TestZeroDebounce(t *testing.T) {
	level := true
	clk := &fakeClock{t: time.Unix(0, 0)}
	b := NewWithClock("z", LevelFunc(func() bool { return level }), Timing{HoldDelay: time.Second}, clk.now)
	if got := b.Read(); got != Rising {
		t.Fatalf("Read() = %v, want %v", got, Rising)
	}
}

func TestStateHelpers(t *testing.T) {
	if !Rising.Pressed() || OnHold.Pressed() {
		t.Fatal("Pressed() mismatch")
	}
	if !Rising.Repeating() || !OnHold.Repeating() || SteadyOn.Repeating() || SteadyOff.Repeating() {
		t.Fatal("Repeating() mismatch")
	}
}
