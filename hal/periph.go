//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// GPIOButton reads an active-low push button with the internal pull-up on.
type GPIOButton struct {
	pin gpio.PinIn
}

// NewGPIOButton configures pin as a pulled-up input.
func NewGPIOButton(pin gpio.PinIn) (*GPIOButton, error) {
	if err := pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("button %s: %w", pin.Name(), err)
	}
	return &GPIOButton{pin: pin}, nil
}

func (b *GPIOButton) Name() string  { return b.pin.Name() }
func (b *GPIOButton) Pressed() bool { return b.pin.Read() == gpio.Low }

// PeriphConfig names the board resources of the OLED backend.
type PeriphConfig struct {
	// SPI is the spireg port name; empty selects the first port.
	SPI string
	DC  string
	// RST is optional.
	RST     string
	Buttons [NumButtons]string
	Hz      int
}

// DefaultPeriphConfig matches a Raspberry Pi with the panel on SPI0.0.
func DefaultPeriphConfig() PeriphConfig {
	return PeriphConfig{
		DC:      "GPIO24",
		RST:     "GPIO25",
		Buttons: [NumButtons]string{"GPIO5", "GPIO6", "GPIO13", "GPIO19"},
		Hz:      30,
	}
}

type periphHAL struct {
	logger  *hostLogger
	display *OLED
	buttons *PinSet
	flash   Flash
	rtc     *hostRTC
}

func (h *periphHAL) Logger() Logger   { return h.logger }
func (h *periphHAL) Display() Display { return h.display }
func (h *periphHAL) Buttons() Buttons { return h.buttons }
func (h *periphHAL) Flash() Flash     { return h.flash }
func (h *periphHAL) RTC() RTC         { return h.rtc }

func newPeriph(hostCfg HostConfig, cfg PeriphConfig) (*periphHAL, func() error, error) {
	out := hostCfg.Out
	if out == nil {
		out = os.Stdout
	}
	logger := &hostLogger{w: out}

	state, err := host.Init()
	if err != nil {
		return nil, nil, fmt.Errorf("periph host init: %w", err)
	}
	for _, d := range state.Loaded {
		logger.WriteLineString("hal: periph driver " + d.String())
	}

	port, err := spireg.Open(cfg.SPI)
	if err != nil {
		return nil, nil, fmt.Errorf("open spi %q: %w", cfg.SPI, err)
	}
	pin := func(name string) (gpio.PinIO, error) {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("gpio %q: not found", name)
		}
		return p, nil
	}

	dc, err := pin(cfg.DC)
	if err != nil {
		port.Close()
		return nil, nil, err
	}
	var rst gpio.PinOut
	if strings.TrimSpace(cfg.RST) != "" {
		p, err := pin(cfg.RST)
		if err != nil {
			port.Close()
			return nil, nil, err
		}
		rst = p
	}
	oled, err := NewOLED(port, dc, rst, cfg.Hz, logger)
	if err != nil {
		port.Close()
		return nil, nil, err
	}

	var buttons PinSet
	for id, name := range cfg.Buttons {
		p, err := pin(name)
		if err != nil {
			port.Close()
			return nil, nil, fmt.Errorf("%s button: %w", ButtonID(id), err)
		}
		b, err := NewGPIOButton(p)
		if err != nil {
			port.Close()
			return nil, nil, err
		}
		buttons[id] = b
	}

	flashPath := FlashPath(hostCfg.FlashPath)
	flash, err := OpenFileFlash(flashPath)
	if err != nil {
		port.Close()
		return nil, nil, err
	}
	logger.WriteLineString("hal: flash image " + flashPath)

	return &periphHAL{
		logger:  logger,
		display: oled,
		buttons: &buttons,
		flash:   flash,
		rtc:     newHostRTC(time.Now),
	}, port.Close, nil
}

// RunPeriph runs the clock on a Linux board with an SSD1322 panel and GPIO
// buttons. Frames are paced by the display's WaitSync.
func RunPeriph(ctx context.Context, hostCfg HostConfig, cfg PeriphConfig, newApp func(HAL) func() error) error {
	h, closePort, err := newPeriph(hostCfg, cfg)
	if err != nil {
		return err
	}
	defer closePort()

	step := newApp(h)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if step != nil {
			if err := step(); err != nil {
				return err
			}
		}
	}
}
