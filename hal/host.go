//go:build !tinygo

package hal

import (
	"fmt"
	"image"
	"io"
	"os"
	"sync"
	"time"

	"dmdclock/dmd"
)

// HostConfig selects the resources of the desktop backends.
type HostConfig struct {
	// FlashPath is the flash image file; see FlashPath for the fallback.
	FlashPath string
	// Out receives log lines. Defaults to stdout.
	Out io.Writer
}

type hostHAL struct {
	logger  *hostLogger
	display *hostDisplay
	buttons *PinSet
	pins    [NumButtons]*VirtualPin
	flash   Flash
	rtc     *hostRTC
}

func newHost(cfg HostConfig) *hostHAL {
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	logger := &hostLogger{w: out}

	path := FlashPath(cfg.FlashPath)
	flash, err := OpenFileFlash(path)
	if err != nil {
		logger.WriteLineString("hal: " + err.Error() + "; settings will not persist")
		flash = NewMemFlash(hostFlashDefaultSizeBytes, hostFlashEraseBlockBytes)
	} else {
		logger.WriteLineString("hal: flash image " + path)
	}

	buttons, pins := NewVirtualButtons()
	return &hostHAL{
		logger:  logger,
		display: newHostDisplay(logger),
		buttons: buttons,
		pins:    pins,
		flash:   flash,
		rtc:     newHostRTC(time.Now),
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return h.display }
func (h *hostHAL) Buttons() Buttons { return h.buttons }
func (h *hostHAL) Flash() Flash     { return h.flash }
func (h *hostHAL) RTC() RTC         { return h.rtc }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

// hostDisplay keeps the last submitted frame for the window or a dump.
type hostDisplay struct {
	mu         sync.Mutex
	logger     Logger
	frame      *dmd.Dotmap
	brightness int
	colour     dmd.Colour
	frames     uint64
}

func newHostDisplay(logger Logger) *hostDisplay {
	return &hostDisplay{
		logger:     logger,
		frame:      dmd.NewFrame(),
		brightness: dmd.MaxBrightness,
	}
}

// WaitSync returns at once; the window and headless runners pace frames.
func (d *hostDisplay) WaitSync() {}

func (d *hostDisplay) SetFrame(f *dmd.Dotmap) error {
	if f == nil {
		return fmt.Errorf("display: nil frame")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frame.Fill(0)
	d.frame.DotBlt(f, 0, 0, f.Width(), f.Height(), 0, 0)
	d.frames++
	return nil
}

func (d *hostDisplay) SetBrightness(level int) {
	if level < 0 {
		level = 0
	}
	if level > dmd.MaxBrightness {
		level = dmd.MaxBrightness
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.brightness = level
}

func (d *hostDisplay) SetColour(c dmd.Colour) {
	if !c.Valid() {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if c != d.colour {
		d.logger.WriteLineString("display: colour " + c.String())
	}
	d.colour = c
}

func (d *hostDisplay) paint(dst *image.RGBA, pitch int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frame.Paint(dst, d.colour, d.brightness, pitch)
}

func (d *hostDisplay) snapshot() (frame *dmd.Dotmap, brightness int, colour dmd.Colour) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frame.Clone(), d.brightness, d.colour
}

// hostRTC keeps time as an offset from the host's wall clock.
type hostRTC struct {
	mu     sync.Mutex
	now    func() time.Time
	offset time.Duration
}

func newHostRTC(now func() time.Time) *hostRTC {
	return &hostRTC{now: now}
}

func (r *hostRTC) Now() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.now().Add(r.offset)
}

func (r *hostRTC) Set(t time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.offset = t.Sub(r.now())
	return nil
}
