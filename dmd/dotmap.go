package dmd

import (
	"image"
	"image/color"

	"tinygo.org/x/drivers"
)

// A Dotmap is a tinyfont draw target.
var _ drivers.Displayer = (*Dotmap)(nil)

// Frame dimensions of the dot-matrix display.
const (
	FrameWidth  = 128
	FrameHeight = 32
)

// MaxLevel is the brightest dot intensity.
const MaxLevel = 15

// Dot is a 4-bit dot intensity. Only the lower 4 bits of Y are used.
type Dot struct {
	Y uint8
}

// RGBA scales the level to a 16-bit gray.
func (c Dot) RGBA() (r, g, b, a uint32) {
	y := uint32(c.Y&0x0F) * 0x1111
	return y, y, y, 0xFFFF
}

func toDot(c color.Color) color.Color {
	if d, ok := c.(Dot); ok {
		return d
	}
	r, g, b, _ := c.RGBA()
	y := (299*r + 587*g + 114*b + 500) / 1000
	return Dot{Y: uint8(y >> 12)}
}

// DotModel converts colors to Dot.
var DotModel = color.ModelFunc(toDot)

// Level returns the drawing color tinyfont needs to paint dots of level l.
func Level(l uint8) color.RGBA {
	v := (l & 0x0F) * 17
	return color.RGBA{R: v, G: v, B: v, A: 0xFF}
}

// Dotmap is a rectangle of 4-bit dots, two dots per byte.
type Dotmap struct {
	Pix    []byte
	Stride int
	Rect   image.Rectangle
}

// New returns a blank w x h Dotmap. Odd widths are allowed; the last nibble of
// each row is padding.
func New(w, h int) *Dotmap {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	stride := (w + 1) / 2
	return &Dotmap{
		Pix:    make([]byte, stride*h),
		Stride: stride,
		Rect:   image.Rect(0, 0, w, h),
	}
}

// NewFrame returns a blank display frame.
func NewFrame() *Dotmap {
	return New(FrameWidth, FrameHeight)
}

func (m *Dotmap) Width() int  { return m.Rect.Dx() }
func (m *Dotmap) Height() int { return m.Rect.Dy() }

// ColorModel implements image.Image.
func (m *Dotmap) ColorModel() color.Model { return DotModel }

// Bounds implements image.Image.
func (m *Dotmap) Bounds() image.Rectangle { return m.Rect }

// At implements image.Image.
func (m *Dotmap) At(x, y int) color.Color {
	return Dot{Y: m.DotAt(x, y)}
}

// DotAt returns the level at (x, y), or 0 outside the map.
func (m *Dotmap) DotAt(x, y int) uint8 {
	if !(image.Point{X: x, Y: y}.In(m.Rect)) {
		return 0
	}
	off, shift := m.pixOffset(x, y)
	return (m.Pix[off] >> shift) & 0x0F
}

// SetDot sets the level at (x, y). Writes outside the map are dropped.
func (m *Dotmap) SetDot(x, y int, level uint8) {
	if !(image.Point{X: x, Y: y}.In(m.Rect)) {
		return
	}
	off, shift := m.pixOffset(x, y)
	m.Pix[off] = (m.Pix[off] &^ (0x0F << shift)) | ((level & 0x0F) << shift)
}

// Set implements draw.Image.
func (m *Dotmap) Set(x, y int, c color.Color) {
	m.SetDot(x, y, DotModel.Convert(c).(Dot).Y)
}

// Fill sets every dot to level.
func (m *Dotmap) Fill(level uint8) {
	l := level & 0x0F
	b := l<<4 | l
	for i := range m.Pix {
		m.Pix[i] = b
	}
}

// DotBlt copies the w x h region of src at (sx, sy) to (dx, dy). The copy is
// clipped to both maps and overwrites every destination dot it covers.
func (m *Dotmap) DotBlt(src *Dotmap, sx, sy, w, h, dx, dy int) {
	if src == nil {
		return
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px, py := sx+x, sy+y
			if !(image.Point{X: px, Y: py}.In(src.Rect)) {
				continue
			}
			m.SetDot(dx+x, dy+y, src.DotAt(px, py))
		}
	}
}

// Overlay copies the lit dots of src to (dx, dy), leaving the destination
// unchanged where src is dark.
func (m *Dotmap) Overlay(src *Dotmap, dx, dy int) {
	if src == nil {
		return
	}
	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			if l := src.DotAt(src.Rect.Min.X+x, src.Rect.Min.Y+y); l != 0 {
				m.SetDot(dx+x, dy+y, l)
			}
		}
	}
}

// FillRect sets the w x h rectangle at (x, y) to level, clipped to m.
func (m *Dotmap) FillRect(x, y, w, h int, level uint8) {
	r := image.Rect(x, y, x+w, y+h).Intersect(m.Rect)
	for py := r.Min.Y; py < r.Max.Y; py++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			m.SetDot(px, py, level)
		}
	}
}

// Size implements drivers.Displayer.
func (m *Dotmap) Size() (x, y int16) {
	return int16(m.Rect.Dx()), int16(m.Rect.Dy())
}

// SetPixel implements drivers.Displayer.
func (m *Dotmap) SetPixel(x, y int16, c color.RGBA) {
	if c.A == 0 {
		return
	}
	m.SetDot(int(x), int(y), DotModel.Convert(c).(Dot).Y)
}

// Display implements drivers.Displayer. A Dotmap has nothing to flush.
func (m *Dotmap) Display() error { return nil }

// Clone returns a deep copy.
func (m *Dotmap) Clone() *Dotmap {
	c := &Dotmap{
		Pix:    make([]byte, len(m.Pix)),
		Stride: m.Stride,
		Rect:   m.Rect,
	}
	copy(c.Pix, m.Pix)
	return c
}

// pixOffset returns the byte offset and shift for (x, y). Even columns live in
// the high nibble.
func (m *Dotmap) pixOffset(x, y int) (offset int, shift uint) {
	offset = (y-m.Rect.Min.Y)*m.Stride + (x-m.Rect.Min.X)/2
	shift = uint(4 * (1 - ((x - m.Rect.Min.X) & 1)))
	return
}
