package dmd

import (
	"image"
	"image/color"
	"strings"
)

// MaxBrightness is the brightest panel setting.
const MaxBrightness = 63

// Colour selects the LED colour used for lit dots.
type Colour uint8

const (
	Red Colour = iota
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White

	NumColours = int(White) + 1
)

var colourNames = [NumColours]string{"RED", "GREEN", "YELLOW", "BLUE", "MAGENTA", "CYAN", "WHITE"}

func (c Colour) String() string {
	if !c.Valid() {
		return "INVALID"
	}
	return colourNames[c]
}

// Valid reports whether c is one of the panel colours.
func (c Colour) Valid() bool { return int(c) < NumColours }

// ColourNames lists the colours in enum order.
func ColourNames() []string {
	return append([]string(nil), colourNames[:]...)
}

// RGB returns the full-intensity LED colour.
func (c Colour) RGB() color.RGBA {
	switch c {
	case Red:
		return color.RGBA{R: 0xff, A: 0xff}
	case Green:
		return color.RGBA{G: 0xff, A: 0xff}
	case Yellow:
		return color.RGBA{R: 0xff, G: 0xff, A: 0xff}
	case Blue:
		return color.RGBA{B: 0xff, A: 0xff}
	case Magenta:
		return color.RGBA{R: 0xff, B: 0xff, A: 0xff}
	case Cyan:
		return color.RGBA{G: 0xff, B: 0xff, A: 0xff}
	default:
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
}

// Shade returns how a dot of the given level looks at the given panel
// brightness (0-63).
func Shade(c Colour, level uint8, brightness int) color.RGBA {
	if brightness < 0 {
		brightness = 0
	}
	if brightness > MaxBrightness {
		brightness = MaxBrightness
	}
	base := c.RGB()
	scale := func(v uint8) uint8 {
		return uint8(uint32(v) * uint32(level&0x0F) * uint32(brightness+1) / (MaxLevel * (MaxBrightness + 1)))
	}
	return color.RGBA{R: scale(base.R), G: scale(base.G), B: scale(base.B), A: 0xff}
}

// Paint renders m into dst as pitch x pitch squares with a one pixel gap,
// the way the LED matrix looks from a distance.
func (m *Dotmap) Paint(dst *image.RGBA, c Colour, brightness, pitch int) {
	if pitch < 1 {
		pitch = 1
	}
	gap := 0
	if pitch > 2 {
		gap = 1
	}
	off := color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xff}
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			col := off
			if l := m.DotAt(x, y); l > 0 {
				col = Shade(c, l, brightness)
			}
			x0, y0 := x*pitch, y*pitch
			for py := y0; py < y0+pitch-gap; py++ {
				for px := x0; px < x0+pitch-gap; px++ {
					dst.SetRGBA(px, py, col)
				}
			}
		}
	}
}

const asciiRamp = " .:-=+*#%@@@@@@@"

// Lines renders m as ASCII art, one string per row.
func (m *Dotmap) Lines() []string {
	out := make([]string, 0, m.Height())
	var b strings.Builder
	for y := 0; y < m.Height(); y++ {
		b.Reset()
		for x := 0; x < m.Width(); x++ {
			b.WriteByte(asciiRamp[m.DotAt(x, y)])
		}
		out = append(out, strings.TrimRight(b.String(), " "))
	}
	return out
}
