package setup

import (
	"fmt"
	"time"

	"dmdclock/clock"
	"dmdclock/dmd"
)

// Masks blanking the hour or minute digits of ">HH:MM<".
const (
	HourMask   = " --    "
	MinuteMask = "    -- "
)

// Field is the part of the time that has focus.
type Field uint8

const (
	FieldHour Field = iota
	FieldMinute
)

// TimeEditor sets hours then minutes. The focused field blinks.
type TimeEditor struct {
	hour   int
	minute int
	focus  Field

	// Masks override HourMask and MinuteMask when set.
	HourMask   string
	MinuteMask string
}

// Fields returns the hour, minute and focused field being edited.
func (e *TimeEditor) Fields() (hour, minute int, focus Field) {
	return e.hour, e.minute, e.focus
}

// Tick handles one frame. blinkPhase false blanks the focused field. On the
// save the seconds are zeroed and the date of *t is kept.
func (e *TimeEditor) Tick(frame *dmd.Dotmap, c Chrome, blinkPhase, entering bool, t *time.Time, in Input) Result {
	if entering {
		f := clock.Break(*t)
		e.hour, e.minute, e.focus = f.Hour, f.Minute, FieldHour
	}

	res := Continue
	switch {
	case in.Back.Pressed():
		res = Back
	case in.Enter.Pressed():
		if e.focus == FieldHour {
			e.focus = FieldMinute
			break
		}
		*t = clock.Make(*t, clock.Fields{Hour: e.hour, Minute: e.minute})
		res = Saved
	default:
		step := 0
		if in.Prev.Repeating() {
			step--
		}
		if in.Next.Repeating() {
			step++
		}
		if e.focus == FieldHour {
			e.hour = wrap(e.hour+step, 24)
		} else {
			e.minute = wrap(e.minute+step, 60)
		}
	}

	e.paint(frame, c, blinkPhase)
	return res
}

func (e *TimeEditor) paint(frame *dmd.Dotmap, c Chrome, blinkPhase bool) {
	c.PaintTitle(frame, SetTime.String())

	mask := ""
	if !blinkPhase {
		mask = e.mask()
	}
	c.paintCentered(frame, fmt.Sprintf(">%02d:%02d<", e.hour, e.minute), mask, bodyY)

	captions := Captions{"Back", " - ", "  + ", "Next"}
	if e.focus == FieldMinute {
		captions[3] = "Save"
	}
	c.PaintButtons(frame, captions)
}

func (e *TimeEditor) mask() string {
	if e.focus == FieldHour {
		if e.HourMask != "" {
			return e.HourMask
		}
		return HourMask
	}
	if e.MinuteMask != "" {
		return e.MinuteMask
	}
	return MinuteMask
}

func wrap(v, n int) int {
	return ((v % n) + n) % n
}
