//go:build !tinygo

package hal

import (
	"fmt"
	"sync"
	"time"

	"dmdclock/dmd"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// SSD1322 panel geometry. Each clock dot is drawn as a 2x2 block.
const (
	oledWidth        = 256
	oledHeight       = 64
	oledScale        = oledWidth / dmd.FrameWidth
	oledColumnOffset = (480 - oledWidth) / 2
	oledMaxTx        = 4096
)

// OLED drives an SSD1322 4-bit grayscale panel as the clock display.
// The panel is monochrome, so SetColour only records the choice.
type OLED struct {
	mu     sync.Mutex
	c      conn.Conn
	dc     gpio.PinOut
	rst    gpio.PinOut
	logger Logger
	buf    []byte
	colour dmd.Colour

	period time.Duration
	last   time.Time
	now    func() time.Time
	sleep  func(time.Duration)
}

// NewOLED connects to the panel on p and runs its init sequence. rst may be
// nil. hz paces WaitSync; zero disables pacing.
func NewOLED(p spi.Port, dc, rst gpio.PinOut, hz int, logger Logger) (*OLED, error) {
	c, err := p.Connect(10*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("oled: spi connect: %w", err)
	}
	d := &OLED{
		c:      c,
		dc:     dc,
		rst:    rst,
		logger: logger,
		buf:    make([]byte, oledWidth*oledHeight/2),
		now:    time.Now,
		sleep:  time.Sleep,
	}
	if hz > 0 {
		d.period = time.Second / time.Duration(hz)
	}
	if err := d.init(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *OLED) init() error {
	if d.rst != nil {
		if err := d.rst.Out(gpio.Low); err != nil {
			return fmt.Errorf("oled: reset low: %w", err)
		}
		time.Sleep(200 * time.Millisecond)
		if err := d.rst.Out(gpio.High); err != nil {
			return fmt.Errorf("oled: reset high: %w", err)
		}
		time.Sleep(200 * time.Millisecond)
	}

	cmds := []byte{
		0xFD, 0x12, // unlock
		0xAE,       // display off
		0xB3, 0xF2, // clock divider
		0xCA, oledHeight - 1, // mux ratio
		0xA2, 0x00, // display offset
		0xA1, 0x00, // start line
		0xA0, 0x14, 0x11, // remap, dual COM
		0xAB, 0x01, // internal VDD
		0xB4, 0xA0, 0xFD, // VSL
		0xC1, contrast(dmd.MaxBrightness),
		0xC7, 0x0F, // master contrast
		0xB9,       // default grayscale table
		0xB1, 0xE2, // phase length
		0xD1, 0x82, 0x20, // enhancement
		0xBB, 0x1F, // pre-charge voltage
		0xB6, 0x08, // second pre-charge
		0xBE, 0x07, // VCOMH
		0xA6, // normal display
		0xA9, // exit partial display
	}
	if err := d.sendCommands(cmds); err != nil {
		return err
	}
	if err := d.writeFrame(); err != nil {
		return err
	}
	return d.sendCommands([]byte{0xAF})
}

// contrast maps a 0-63 brightness onto the 0-255 contrast current.
func contrast(level int) byte {
	return byte(level*4 + 3)
}

func (d *OLED) sendCommands(cmds []byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return fmt.Errorf("oled: dc low: %w", err)
	}
	return d.c.Tx(cmds, nil)
}

func (d *OLED) sendData(data []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return fmt.Errorf("oled: dc high: %w", err)
	}
	for len(data) > 0 {
		n := min(len(data), oledMaxTx)
		if err := d.c.Tx(data[:n], nil); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

func (d *OLED) writeFrame() error {
	cmds := []byte{
		0x15, oledColumnOffset / 4, (oledColumnOffset+oledWidth)/4 - 1,
		0x75, 0, oledHeight - 1,
		0x5C,
	}
	if err := d.sendCommands(cmds); err != nil {
		return err
	}
	return d.sendData(d.buf)
}

// WaitSync sleeps until one frame period has passed since the last frame.
func (d *OLED) WaitSync() {
	if d.period == 0 || d.last.IsZero() {
		return
	}
	if wait := d.period - d.now().Sub(d.last); wait > 0 {
		d.sleep(wait)
	}
}

func (d *OLED) SetFrame(f *dmd.Dotmap) error {
	if f == nil {
		return fmt.Errorf("oled: nil frame")
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	const stride = oledWidth / 2
	for y := 0; y < oledHeight; y++ {
		row := d.buf[y*stride : (y+1)*stride]
		for x := 0; x < dmd.FrameWidth; x++ {
			var l uint8
			if x < f.Width() && y/oledScale < f.Height() {
				l = f.DotAt(x, y/oledScale)
			}
			// One dot covers both nibbles of a byte.
			row[x] = l<<4 | l
		}
	}
	d.last = d.now()
	return d.writeFrame()
}

func (d *OLED) SetBrightness(level int) {
	if level < 0 {
		level = 0
	}
	if level > dmd.MaxBrightness {
		level = dmd.MaxBrightness
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.sendCommands([]byte{0xC1, contrast(level)}); err != nil && d.logger != nil {
		d.logger.WriteLineString("oled: set contrast: " + err.Error())
	}
}

func (d *OLED) SetColour(c dmd.Colour) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if c != d.colour && d.logger != nil {
		d.logger.WriteLineString("oled: dot colour " + c.String() + " ignored on a grayscale panel")
	}
	d.colour = c
}
