package hal

import (
	"errors"
	"time"

	"dmdclock/dmd"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var (
	ErrNotImplemented          = errors.New("not implemented")
	ErrFlashWriteRequiresErase = errors.New("flash write requires erase")
)

// Display is the dot-matrix panel.
type Display interface {
	// WaitSync blocks until it is safe to hand over the next frame.
	WaitSync()
	// SetFrame copies f to the panel.
	SetFrame(f *dmd.Dotmap) error
	// SetBrightness applies a level in [0, dmd.MaxBrightness] immediately.
	SetBrightness(level int)
	SetColour(c dmd.Colour)
}

// ButtonID names one of the four front-panel buttons.
type ButtonID uint8

const (
	ButtonMenu ButtonID = iota
	ButtonMinus
	ButtonPlus
	ButtonEnter
	NumButtons
)

var buttonNames = [NumButtons]string{"menu", "minus", "plus", "enter"}

func (b ButtonID) String() string {
	if b >= NumButtons {
		return "unknown"
	}
	return buttonNames[b]
}

// ParseButton maps a button name to its id.
func ParseButton(name string) (ButtonID, bool) {
	for i, n := range buttonNames {
		if n == name {
			return ButtonID(i), true
		}
	}
	return 0, false
}

// ButtonPin is the raw, undebounced level of one button.
type ButtonPin interface {
	Name() string
	Pressed() bool
}

// Buttons provides the front-panel button pins.
type Buttons interface {
	Pin(id ButtonID) ButtonPin
}

// Flash provides raw access to non-volatile memory.
//
// It is intentionally low-level: addresses and erase blocks only.
type Flash interface {
	SizeBytes() uint32
	EraseBlockBytes() uint32
	ReadAt(p []byte, off uint32) (int, error)
	WriteAt(p []byte, off uint32) (int, error)
	Erase(off, size uint32) error
}

// RTC is the hardware real-time clock. It keeps standard time.
type RTC interface {
	Now() time.Time
	Set(t time.Time) error
}

// HAL provides the only contact point between the clock and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Buttons() Buttons
	Flash() Flash
	RTC() RTC
}
