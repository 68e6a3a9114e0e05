// Package config holds the clock's user settings and persists them in flash.
package config

import (
	"fmt"
	"time"
)

// Time formats, in menu order.
const (
	Format24Hour = iota
	Format12Hour
	Format12HourAMPM

	NumTimeFormats
)

// Number of choices for the enumerated settings.
const (
	NumClockDelays = 7
	NumClockFonts  = 2
	NumColours     = 7
	MaxBrightness  = 63
)

// ClockDelays maps the clock-delay index to the time each clock screen stays up.
var ClockDelays = [NumClockDelays]time.Duration{
	5 * time.Second,
	10 * time.Second,
	15 * time.Second,
	30 * time.Second,
	time.Minute,
	2 * time.Minute,
	5 * time.Minute,
}

// Items is the working copy of the persisted settings. Enumerated settings
// are menu indexes so the choice editor can edit them in place.
type Items struct {
	DST        int // 0 off, 1 on
	TimeFormat int
	Brightness int // 0-63
	ClockDelay int
	DotColour  int
	ClockFont  int
}

// Defaults returns the factory settings.
func Defaults() Items {
	return Items{
		DST:        0,
		TimeFormat: Format24Hour,
		Brightness: 32,
		ClockDelay: 1,
		DotColour:  0,
		ClockFont:  0,
	}
}

// DSTOn reports whether daylight saving time is applied.
func (it Items) DSTOn() bool { return it.DST != 0 }

// Delay returns the clock-delay duration.
func (it Items) Delay() time.Duration {
	return ClockDelays[clamp(it.ClockDelay, 0, NumClockDelays-1)]
}

// Clamped forces every field into its valid range.
func (it Items) Clamped() Items {
	it.DST = clamp(it.DST, 0, 1)
	it.TimeFormat = clamp(it.TimeFormat, 0, NumTimeFormats-1)
	it.Brightness = clamp(it.Brightness, 0, MaxBrightness)
	it.ClockDelay = clamp(it.ClockDelay, 0, NumClockDelays-1)
	it.DotColour = clamp(it.DotColour, 0, NumColours-1)
	it.ClockFont = clamp(it.ClockFont, 0, NumClockFonts-1)
	return it
}

func (it Items) String() string {
	return fmt.Sprintf("dst=%d format=%d brightness=%d delay=%d colour=%d font=%d",
		it.DST, it.TimeFormat, it.Brightness, it.ClockDelay, it.DotColour, it.ClockFont)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
