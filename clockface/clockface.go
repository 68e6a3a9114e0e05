// Package clockface draws the normal clock screens shown outside setup.
package clockface

import (
	"fmt"
	"strings"
	"time"

	"dmdclock/config"
	"dmdclock/dmd"
	"dmdclock/font"

	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyfont/freesans"
)

// DateHold is how long the date screen stays up.
const DateHold = 3 * time.Second

// Fonts are the clock faces, indexed by config.Items.ClockFont.
var Fonts = []*font.Font{
	font.New("STANDARD", &freemono.Bold9pt7b),
	font.New("TREK", &freesans.Bold9pt7b),
}

// Names lists the clock face names in index order.
func Names() []string {
	names := make([]string, len(Fonts))
	for i, f := range Fonts {
		names[i] = f.Name()
	}
	return names
}

// FormatTime renders t in one of the config time formats.
func FormatTime(t time.Time, format int) string {
	h, m := t.Hour(), t.Minute()
	if format == config.Format24Hour {
		return fmt.Sprintf("%02d:%02d", h, m)
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	s := fmt.Sprintf("%d:%02d", h12, m)
	if format == config.Format12HourAMPM {
		if h < 12 {
			s += " AM"
		} else {
			s += " PM"
		}
	}
	return s
}

// FormatDate renders t as "SUN 18 OCT".
func FormatDate(t time.Time) string {
	return strings.ToUpper(t.Format("Mon 2 Jan"))
}

// Face alternates between the time, shown for the configured clock delay,
// and the date, shown for DateHold.
type Face struct {
	since    time.Time
	showDate bool
}

// Reset starts over with the time screen.
func (f *Face) Reset() {
	f.since = time.Time{}
	f.showDate = false
}

// ShowingDate reports whether the last Paint drew the date.
func (f *Face) ShowingDate() bool { return f.showDate }

// Paint draws the screen for now into frame.
func (f *Face) Paint(frame *dmd.Dotmap, now time.Time, it config.Items) {
	if f.since.IsZero() {
		f.since = now
	}
	hold := it.Delay()
	if f.showDate {
		hold = DateHold
	}
	if now.Sub(f.since) >= hold {
		f.showDate = !f.showDate
		f.since = now
	}

	text := FormatTime(now, it.TimeFormat)
	face := Fonts[min(max(it.ClockFont, 0), len(Fonts)-1)]
	if f.showDate {
		text = FormatDate(now)
		face = font.Menu
	}

	frame.Fill(0)
	m := face.Render(text)
	frame.Overlay(m, (frame.Width()-m.Width())/2, (frame.Height()-m.Height())/2)
}
