package setup

import (
	"fmt"
	"time"

	"dmdclock/dmd"
	"dmdclock/font"
)

// Screen layout in dots.
const (
	titleHeight  = 9
	bodyY        = 11
	buttonY      = 23
	buttonWidth  = 28
	buttonHeight = 9
	buttonPitch  = 32
	barLevel     = 1
)

// Chrome draws the parts shared by every setup screen: the title bar with the
// running clock and the button strip.
type Chrome struct {
	// Font is used for the title and captions; Body for the screen content.
	Font *font.Font
	Body *font.Font
	// Now returns the wall time shown in the title bar.
	Now func() time.Time
}

func (c Chrome) font() *font.Font {
	if c.Font == nil {
		return font.System
	}
	return c.Font
}

func (c Chrome) body() *font.Font {
	if c.Body == nil {
		return font.Menu
	}
	return c.Body
}

// PaintTitle draws the title bar: title on the left, HH:MM on the right.
func (c Chrome) PaintTitle(frame *dmd.Dotmap, title string) {
	f := c.font()
	frame.FillRect(0, 0, dmd.FrameWidth, titleHeight, barLevel)
	frame.Overlay(f.Render(title), 1, 1)

	if c.Now == nil {
		return
	}
	now := c.Now()
	hhmm := f.Render(fmt.Sprintf("%02d:%02d", now.Hour(), now.Minute()))
	frame.Overlay(hhmm, dmd.FrameWidth-hhmm.Width()-1, 1)
}

// PaintButtons draws four equal cells along the bottom edge, one caption each.
func (c Chrome) PaintButtons(frame *dmd.Dotmap, labels Captions) {
	f := c.font()
	for i, label := range labels {
		x := 2 + i*buttonPitch
		frame.FillRect(x, buttonY, buttonWidth, buttonHeight, barLevel)
		if label == "" {
			continue
		}
		frame.Overlay(f.Render(label), x+2, buttonY+1)
	}
}

// paintCentered draws text in the body font centred horizontally at y.
func (c Chrome) paintCentered(frame *dmd.Dotmap, text, mask string, y int) {
	m := c.body().RenderMasked(text, mask)
	frame.Overlay(m, (dmd.FrameWidth-m.Width())/2, y)
}
