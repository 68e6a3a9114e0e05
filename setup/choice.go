package setup

import "dmdclock/dmd"

// Result is what an editor reports at the end of a frame.
type Result uint8

const (
	// Continue keeps the editor active next frame.
	Continue Result = iota
	// Back leaves the editor without writing its value.
	Back
	// Saved leaves the editor after writing its value.
	Saved
)

func (r Result) String() string {
	switch r {
	case Continue:
		return "continue"
	case Back:
		return "back"
	case Saved:
		return "saved"
	default:
		return "INVALID"
	}
}

// ChoiceEditor picks one entry of a Menu. The cursor survives between
// frames and is reloaded from the value on the entering frame.
type ChoiceEditor struct {
	cursor int
}

// Cursor returns the highlighted item index.
func (e *ChoiceEditor) Cursor() int { return e.cursor }

// Tick handles one frame. Prev and Next move the cursor on a fresh press and
// stop at the ends. Enter writes the cursor to value.
func (e *ChoiceEditor) Tick(frame *dmd.Dotmap, c Chrome, m *Menu, entering bool, value *int, in Input) Result {
	if entering {
		e.cursor = m.clamp(*value)
	}

	res := Continue
	switch {
	case in.Back.Pressed():
		res = Back
	case in.Enter.Pressed():
		*value = e.cursor
		res = Saved
	default:
		if in.Prev.Pressed() && e.cursor > 0 {
			e.cursor--
		}
		if in.Next.Pressed() && e.cursor < m.last() {
			e.cursor++
		}
	}

	e.paint(frame, c, m)
	return res
}

func (e *ChoiceEditor) paint(frame *dmd.Dotmap, c Chrome, m *Menu) {
	c.PaintTitle(frame, m.Title())

	body := c.body()
	if e.cursor > 0 {
		frame.Overlay(body.Render("<"), 0, bodyY)
	}
	if e.cursor < m.last() {
		arrow := body.Render(">")
		frame.Overlay(arrow, dmd.FrameWidth-arrow.Width(), bodyY)
	}
	c.paintCentered(frame, m.Item(e.cursor), "", bodyY)

	c.PaintButtons(frame, m.Captions())
}
