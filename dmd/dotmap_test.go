package dmd

import (
	"image"
	"image/color"
	"testing"
)

func TestNibblePacking(t *testing.T) {
	m := New(4, 1)
	m.SetDot(0, 0, 5)
	m.SetDot(1, 0, 10)
	m.SetDot(2, 0, 3)
	m.SetDot(3, 0, 12)

	if m.Pix[0] != 0x5A {
		t.Fatalf("Pix[0] = 0x%02X, want 0x5A", m.Pix[0])
	}
	if m.Pix[1] != 0x3C {
		t.Fatalf("Pix[1] = 0x%02X, want 0x3C", m.Pix[1])
	}
}

func TestOddWidth(t *testing.T) {
	m := New(5, 2)
	if m.Stride != 3 {
		t.Fatalf("Stride = %d, want 3", m.Stride)
	}
	m.SetDot(4, 1, 9)
	if got := m.DotAt(4, 1); got != 9 {
		t.Fatalf("DotAt(4, 1) = %d, want 9", got)
	}
	if got := m.DotAt(3, 1); got != 0 {
		t.Fatalf("DotAt(3, 1) = %d, want 0", got)
	}
}

func TestOutOfBounds(t *testing.T) {
	m := New(4, 4)
	m.SetDot(-1, 0, 15)
	m.SetDot(4, 0, 15)
	m.SetDot(0, 4, 15)
	for i, b := range m.Pix {
		if b != 0 {
			t.Fatalf("Pix[%d] = 0x%02X after out-of-bounds writes, want 0", i, b)
		}
	}
	if got := m.DotAt(-1, -1); got != 0 {
		t.Fatalf("DotAt(-1, -1) = %d, want 0", got)
	}
}

func TestFill(t *testing.T) {
	m := New(3, 3)
	m.Fill(7)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if got := m.DotAt(x, y); got != 7 {
				t.Fatalf("DotAt(%d, %d) = %d, want 7", x, y, got)
			}
		}
	}
}

func TestDotBltClips(t *testing.T) {
	src := New(4, 4)
	src.Fill(15)
	dst := New(6, 6)

	dst.DotBlt(src, 0, 0, 4, 4, 4, 4)

	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			want := uint8(0)
			if x >= 4 && y >= 4 {
				want = 15
			}
			if got := dst.DotAt(x, y); got != want {
				t.Fatalf("DotAt(%d, %d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestDotBltPartialWidth(t *testing.T) {
	src := New(64, 4)
	src.Fill(15)
	dst := NewFrame()

	dst.DotBlt(src, 0, 0, 10, src.Height(), 32, 14)

	if got := dst.DotAt(41, 14); got != 15 {
		t.Fatalf("DotAt(41, 14) = %d, want 15", got)
	}
	if got := dst.DotAt(42, 14); got != 0 {
		t.Fatalf("DotAt(42, 14) = %d, want 0", got)
	}
}

func TestDotBltOverwritesWithBlank(t *testing.T) {
	dst := New(4, 1)
	dst.Fill(1)
	dst.DotBlt(New(2, 1), 0, 0, 2, 1, 1, 0)

	want := []uint8{1, 0, 0, 1}
	for x, w := range want {
		if got := dst.DotAt(x, 0); got != w {
			t.Fatalf("DotAt(%d, 0) = %d, want %d", x, got, w)
		}
	}
}

func TestSetPixelUsesLevelColour(t *testing.T) {
	m := New(2, 1)
	for l := uint8(0); l <= MaxLevel; l++ {
		m.SetPixel(0, 0, Level(l))
		if got := m.DotAt(0, 0); got != l {
			t.Fatalf("SetPixel(Level(%d)) stored %d", l, got)
		}
	}
	m.SetPixel(1, 0, color.RGBA{R: 0xff, G: 0xff, B: 0xff})
	if got := m.DotAt(1, 0); got != 0 {
		t.Fatalf("transparent SetPixel stored %d, want 0", got)
	}
}

func TestImageInterfaces(t *testing.T) {
	m := NewFrame()
	if m.Bounds() != image.Rect(0, 0, FrameWidth, FrameHeight) {
		t.Fatalf("Bounds() = %v", m.Bounds())
	}
	m.Set(3, 3, color.White)
	if d, ok := m.At(3, 3).(Dot); !ok || d.Y != 15 {
		t.Fatalf("At(3, 3) = %v, want Dot{15}", m.At(3, 3))
	}
	w, h := m.Size()
	if w != FrameWidth || h != FrameHeight {
		t.Fatalf("Size() = %d,%d", w, h)
	}
}

func TestCloneIsDeep(t *testing.T) {
	m := New(2, 2)
	c := m.Clone()
	c.SetDot(0, 0, 9)
	if m.DotAt(0, 0) != 0 {
		t.Fatal("Clone shares pixel storage")
	}
}

func TestLines(t *testing.T) {
	m := New(3, 2)
	m.SetDot(0, 0, 15)
	m.SetDot(2, 1, 1)
	lines := m.Lines()
	if len(lines) != 2 {
		t.Fatalf("len(Lines()) = %d, want 2", len(lines))
	}
	if lines[0] != "@" || lines[1] != "  ." {
		t.Fatalf("Lines() = %q", lines)
	}
}

func TestShade(t *testing.T) {
	if got := Shade(Red, 15, MaxBrightness); got != (color.RGBA{R: 0xff, A: 0xff}) {
		t.Fatalf("Shade(Red, 15, max) = %v", got)
	}
	if got := Shade(White, 0, MaxBrightness); got.R != 0 || got.G != 0 || got.B != 0 {
		t.Fatalf("Shade(White, 0, max) = %v, want black", got)
	}
	lo := Shade(Green, 15, 0)
	hi := Shade(Green, 15, 40)
	if lo.G >= hi.G {
		t.Fatalf("brightness does not scale: %d >= %d", lo.G, hi.G)
	}
}

func TestColourNames(t *testing.T) {
	names := ColourNames()
	if len(names) != NumColours || names[0] != "RED" || names[NumColours-1] != "WHITE" {
		t.Fatalf("ColourNames() = %v", names)
	}
	if Colour(NumColours).Valid() {
		t.Fatal("out of range colour reported valid")
	}
}

func TestOverlayKeepsBackground(t *testing.T) {
	dst := New(4, 1)
	dst.Fill(1)
	src := New(2, 1)
	src.SetDot(1, 0, 15)

	dst.Overlay(src, 1, 0)
	want := []uint8{1, 1, 15, 1}
	for x, w := range want {
		if got := dst.DotAt(x, 0); got != w {
			t.Fatalf("DotAt(%d, 0) = %d, want %d", x, got, w)
		}
	}
}

func TestFillRectClips(t *testing.T) {
	m := New(4, 4)
	m.FillRect(2, 2, 5, 5, 7)
	if got := m.DotAt(3, 3); got != 7 {
		t.Fatalf("DotAt(3, 3) = %d, want 7", got)
	}
	if got := m.DotAt(1, 3); got != 0 {
		t.Fatalf("DotAt(1, 3) = %d, want 0", got)
	}
	m.FillRect(-3, -3, 4, 4, 2)
	if got := m.DotAt(0, 0); got != 2 {
		t.Fatalf("DotAt(0, 0) = %d, want 2", got)
	}
	if got := m.DotAt(1, 1); got != 0 {
		t.Fatalf("DotAt(1, 1) = %d, want 0", got)
	}
}
