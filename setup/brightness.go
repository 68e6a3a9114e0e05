package setup

import "dmdclock/dmd"

var brightnessCaptions = Captions{"Back", "Down", " Up ", "Save"}

// Brightness bar geometry: an outer frame, an inset background and the fill.
const (
	barX     = 30
	barY     = 12
	barWidth = 64
)

// BrightnessEditor adjusts the panel brightness with live preview. Every
// change is applied to the display at once; Back restores the level the
// editor was entered with.
type BrightnessEditor struct {
	value     int
	original  int
	committed bool
}

// Value returns the level being edited.
func (e *BrightnessEditor) Value() int { return e.value }

// Committed reports whether the last exit was a save.
func (e *BrightnessEditor) Committed() bool { return e.committed }

// Tick handles one frame and reports whether the editor is still active.
// Down and Up auto-repeat while held.
func (e *BrightnessEditor) Tick(frame *dmd.Dotmap, c Chrome, d Display, entering bool, value *int, in Input) bool {
	if entering {
		e.value = clampBrightness(*value)
		e.original = e.value
		e.committed = false
		d.SetBrightness(e.value)
	}

	active := true
	switch {
	case in.Back.Pressed():
		e.Rollback(d)
		active = false
	case in.Enter.Pressed():
		*value = e.value
		e.committed = true
		active = false
	default:
		v := e.value
		if in.Prev.Repeating() {
			v--
		}
		if in.Next.Repeating() {
			v++
		}
		if v = clampBrightness(v); v != e.value {
			e.value = v
			d.SetBrightness(v)
		}
	}

	e.paint(frame, c)
	return active
}

// Rollback restores the level held before the editor was entered.
func (e *BrightnessEditor) Rollback(d Display) {
	e.value = e.original
	d.SetBrightness(e.original)
}

// FillWidth is the width of the filled part of the bar for value.
func FillWidth(value int) int {
	return clampBrightness(value) * barWidth / dmd.MaxBrightness
}

func (e *BrightnessEditor) paint(frame *dmd.Dotmap, c Chrome) {
	c.PaintTitle(frame, Brightness.String())
	frame.FillRect(barX, barY, barWidth+4, 8, 5)
	frame.FillRect(barX+1, barY+1, barWidth+2, 6, 0)
	frame.FillRect(barX+2, barY+2, FillWidth(e.value), 4, dmd.MaxLevel)
	c.PaintButtons(frame, brightnessCaptions)
}

func clampBrightness(v int) int {
	return min(max(v, 0), dmd.MaxBrightness)
}
