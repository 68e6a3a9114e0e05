//go:build !tinygo && cgo

package hal

import (
	"image"

	"dmdclock/dmd"
	"dmdclock/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// windowPitch is the size of one dot on screen, in pixels.
const windowPitch = 6

// RunWindow starts a desktop window that shows the dot matrix and maps the
// keyboard onto the four buttons. It blocks until the window closes.
func RunWindow(cfg HostConfig, newApp func(HAL) func() error) error {
	h := newHost(cfg)
	step := newApp(h)

	g := &hostGame{h: h, kbd: newHostKeyboard(h.pins), step: step}
	ebiten.SetWindowTitle("dmdclock (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(dmd.FrameWidth*windowPitch, dmd.FrameHeight*windowPitch)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h     *hostHAL
	kbd   *hostKeyboard
	img   *image.RGBA
	dmImg *ebiten.Image
	step  func() error
}

func (g *hostGame) Update() error {
	g.kbd.poll()
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	w, h := dmd.FrameWidth*windowPitch, dmd.FrameHeight*windowPitch
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, w, h))
		g.dmImg = ebiten.NewImage(w, h)
	}
	g.h.display.paint(g.img, windowPitch)
	g.dmImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.dmImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return dmd.FrameWidth * windowPitch, dmd.FrameHeight * windowPitch
}
