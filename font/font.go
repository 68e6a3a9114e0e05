// Package font rasterizes text into dot bitmaps using tinyfont glyph sets.
package font

import (
	"dmdclock/dmd"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Blank marks a mask position whose character is drawn as empty space.
const Blank = '-'

// Built-in fonts. System is used for title bars and button captions, Menu for
// the body of a menu screen.
var (
	System = New("SYSTEM", &tinyfont.TomThumb)
	Menu   = New("MENU", &proggy.TinySZ8pt7b)
)

// Font wraps a tinyfont.Fonter with the line metrics needed to size bitmaps.
//
// Concurrent use is not safe; some Fonter implementations reuse glyph state.
type Font struct {
	name   string
	f      tinyfont.Fonter
	ascent int
	height int
}

// New measures the printable ASCII glyphs of f and returns a Font.
func New(name string, f tinyfont.Fonter) *Font {
	ascent, descent := 0, 0
	for r := rune(0x20); r < 0x7f; r++ {
		info := f.GetGlyph(r).Info()
		if info.Height == 0 {
			continue
		}
		if top := -int(info.YOffset); top > ascent {
			ascent = top
		}
		if bottom := int(info.YOffset) + int(info.Height); bottom > descent {
			descent = bottom
		}
	}
	if ascent+descent == 0 {
		ascent = int(f.GetYAdvance())
	}
	return &Font{name: name, f: f, ascent: ascent, height: ascent + descent}
}

func (f *Font) Name() string { return f.name }

// Height is the bitmap height of a rendered line.
func (f *Font) Height() int { return f.height }

// Width returns the advance width of s in dots.
func (f *Font) Width(s string) int {
	w := 0
	for _, r := range s {
		w += int(f.f.GetGlyph(r).Info().XAdvance)
	}
	return w
}

// Render draws s at full intensity into a freshly sized bitmap.
func (f *Font) Render(s string) *dmd.Dotmap {
	return f.RenderMasked(s, "")
}

// RenderMasked draws s, leaving blank every character whose position in mask
// holds Blank. The result has the same width as Render(s).
func (f *Font) RenderMasked(s, mask string) *dmd.Dotmap {
	m := dmd.New(f.Width(s), f.height)
	blank := []rune(mask)
	fg := dmd.Level(dmd.MaxLevel)

	x := 0
	for i, r := range []rune(s) {
		adv := int(f.f.GetGlyph(r).Info().XAdvance)
		if i >= len(blank) || blank[i] != Blank {
			tinyfont.DrawChar(m, f.f, int16(x), int16(f.ascent), r, fg)
		}
		x += adv
	}
	return m
}
