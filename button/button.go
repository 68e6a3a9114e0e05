// Package button turns raw button levels into press events.
//
// A Button is sampled once per frame. It reports Rising on the first debounced
// frame of a press, OnHold once the press has lasted HoldDelay and then every
// RepeatPeriod, SteadyOn for the other frames of a press and SteadyOff while
// released.
package button

import "time"

// State is the per-frame result of reading a button.
type State uint8

const (
	SteadyOff State = iota
	Rising
	OnHold
	SteadyOn
)

func (s State) String() string {
	switch s {
	case SteadyOff:
		return "off"
	case Rising:
		return "rising"
	case OnHold:
		return "hold"
	case SteadyOn:
		return "on"
	default:
		return "INVALID"
	}
}

// Pressed reports a fresh press.
func (s State) Pressed() bool { return s == Rising }

// Repeating reports a fresh press or an auto-repeat tick.
func (s State) Repeating() bool { return s == Rising || s == OnHold }

// Reader is anything that yields one State per frame.
type Reader interface {
	Read() State
}

// Level is a raw pin: true while the button is held down.
type Level interface {
	Pressed() bool
}

// LevelFunc adapts a function to Level.
type LevelFunc func() bool

func (f LevelFunc) Pressed() bool { return f() }

// Timing controls debouncing and auto-repeat.
type Timing struct {
	Debounce     time.Duration
	HoldDelay    time.Duration
	RepeatPeriod time.Duration
}

// DefaultTiming suits the clock's tactile switches.
var DefaultTiming = Timing{
	Debounce:     20 * time.Millisecond,
	HoldDelay:    500 * time.Millisecond,
	RepeatPeriod: 100 * time.Millisecond,
}

// Button debounces one Level.
type Button struct {
	name   string
	pin    Level
	timing Timing
	now    func() time.Time

	raw     bool
	changed time.Time
	down    bool
	repeat  time.Time
}

// New returns a Button sampling pin with DefaultTiming and the wall clock.
func New(name string, pin Level) *Button {
	return NewWithClock(name, pin, DefaultTiming, time.Now)
}

// NewWithClock is New with explicit timing and time source.
func NewWithClock(name string, pin Level, timing Timing, now func() time.Time) *Button {
	if now == nil {
		now = time.Now
	}
	if timing.RepeatPeriod <= 0 {
		timing.RepeatPeriod = DefaultTiming.RepeatPeriod
	}
	return &Button{name: name, pin: pin, timing: timing, now: now}
}

func (b *Button) Name() string { return b.name }

// Read samples the pin and returns this frame's State.
func (b *Button) Read() State {
	now := b.now()
	raw := b.pin != nil && b.pin.Pressed()
	if raw != b.raw || b.changed.IsZero() {
		b.raw = raw
		b.changed = now
	}

	if b.raw != b.down && now.Sub(b.changed) >= b.timing.Debounce {
		b.down = b.raw
		if b.down {
			b.repeat = now.Add(b.timing.HoldDelay)
			return Rising
		}
		return SteadyOff
	}

	if !b.down {
		return SteadyOff
	}
	if !now.Before(b.repeat) {
		b.repeat = b.repeat.Add(b.timing.RepeatPeriod)
		if b.repeat.Before(now) {
			b.repeat = now.Add(b.timing.RepeatPeriod)
		}
		return OnHold
	}
	return SteadyOn
}
