// Package app wires the HAL to the clock screens and the setup editor and
// returns the per-frame step the host loop drives.
package app

import (
	"fmt"
	"time"

	"dmdclock/button"
	"dmdclock/clock"
	"dmdclock/clockface"
	"dmdclock/config"
	"dmdclock/dmd"
	"dmdclock/hal"
	"dmdclock/setup"
)

// DefaultSetupTimeout ends an idle setup session.
const DefaultSetupTimeout = 2 * time.Minute

type Config struct {
	// SetupTimeout cancels setup after this long without a button press.
	// Zero selects DefaultSetupTimeout; negative disables the timeout.
	SetupTimeout time.Duration
	// Timing overrides button.DefaultTiming when non-zero.
	Timing button.Timing
	// Now is the monotonic clock for debouncing and timeouts.
	Now func() time.Time
}

type mode uint8

const (
	modeClock mode = iota
	modeSetup
)

type system struct {
	h       hal.HAL
	cfg     Config
	logger  hal.Logger
	display hal.Display
	store   *config.Store
	clock   *clock.Clock
	ctrl    *setup.Controller
	face    clockface.Face
	frame   *dmd.Dotmap

	menu    button.Reader
	others  []button.Reader
	items   config.Items
	mode    mode
	touched time.Time
}

// New starts the clock with default config.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, Config{})
}

// NewWithConfig starts the clock and returns its frame step. If wiring fails
// every call of the step returns the error.
func NewWithConfig(h hal.HAL, cfg Config) func() error {
	s, err := newSystem(h, cfg)
	if err != nil {
		if l := h.Logger(); l != nil {
			l.WriteLineString("app: " + err.Error())
		}
		return func() error { return err }
	}
	return s.step
}

func newSystem(h hal.HAL, cfg Config) (*system, error) {
	if cfg.SetupTimeout == 0 {
		cfg.SetupTimeout = DefaultSetupTimeout
	}
	if cfg.Timing == (button.Timing{}) {
		cfg.Timing = button.DefaultTiming
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	s := &system{
		h:       h,
		cfg:     cfg,
		logger:  h.Logger(),
		display: h.Display(),
		store:   config.NewStore(h.Flash(), 0),
		frame:   dmd.NewFrame(),
	}
	if s.display == nil {
		return nil, fmt.Errorf("no display")
	}

	items, err := s.store.LoadOrDefaults()
	if err != nil {
		s.logf("app: settings: %v; using defaults", err)
	}
	s.items = items
	s.clock = clock.New(h.RTC(), func() bool { return s.items.DSTOn() })

	var readers [hal.NumButtons]button.Reader
	for id := hal.ButtonID(0); id < hal.NumButtons; id++ {
		pin := h.Buttons().Pin(id)
		if pin == nil {
			return nil, fmt.Errorf("no %s button", id)
		}
		b := button.NewWithClock(pin.Name(), pin, cfg.Timing, cfg.Now)
		readers[id] = &activity{r: b, touched: &s.touched, now: cfg.Now}
	}
	s.menu = readers[hal.ButtonMenu]
	s.others = []button.Reader{readers[hal.ButtonMinus], readers[hal.ButtonPlus], readers[hal.ButtonEnter]}

	start := cfg.Now()
	ctrl, err := setup.NewController(setup.Config{
		Display: s.display,
		Store:   s.store,
		Clock:   s.clock,
		Buttons: setup.Buttons{
			Menu:  readers[hal.ButtonMenu],
			Minus: readers[hal.ButtonMinus],
			Plus:  readers[hal.ButtonPlus],
			Enter: readers[hal.ButtonEnter],
		},
		ClockFonts: clockface.Names(),
		Logger:     s.logger,
		Uptime:     func() time.Duration { return cfg.Now().Sub(start) },
		OnCommit:   s.commit,
	})
	if err != nil {
		return nil, err
	}
	s.ctrl = ctrl

	s.display.SetBrightness(s.items.Brightness)
	s.display.SetColour(dmd.Colour(s.items.DotColour))
	s.logf("app: started with %s", s.items)
	return s, nil
}

func (s *system) step() (err error) {
	defer recoverStep(s.h, &err)

	switch s.mode {
	case modeSetup:
		if s.cfg.SetupTimeout > 0 && s.cfg.Now().Sub(s.touched) >= s.cfg.SetupTimeout {
			s.ctrl.Cancel()
			s.logf("app: setup timed out")
			s.leaveSetup()
			return s.paintClock()
		}
		if !s.ctrl.Tick() {
			s.leaveSetup()
		}
		return nil
	default:
		pressed := s.menu.Read().Pressed()
		for _, r := range s.others {
			r.Read()
		}
		if pressed {
			s.mode = modeSetup
			s.touched = s.cfg.Now()
			s.ctrl.Start()
			s.ctrl.Tick()
			return nil
		}
		return s.paintClock()
	}
}

func (s *system) paintClock() error {
	s.face.Paint(s.frame, s.clock.NowDST(), s.items)
	s.display.WaitSync()
	if err := s.display.SetFrame(s.frame); err != nil {
		s.logf("app: submit frame: %v", err)
	}
	return nil
}

func (s *system) leaveSetup() {
	s.mode = modeClock
	s.face.Reset()
	s.display.SetBrightness(s.items.Brightness)
}

// commit keeps the running settings in step with what setup saved.
func (s *system) commit(_ setup.MenuID, it config.Items) {
	s.items = it
}

func (s *system) logf(format string, args ...any) {
	if s.logger == nil {
		return
	}
	s.logger.WriteLineString(fmt.Sprintf(format, args...))
}

// activity records the time of every frame a button is down.
type activity struct {
	r       button.Reader
	touched *time.Time
	now     func() time.Time
}

func (a *activity) Read() button.State {
	st := a.r.Read()
	if st != button.SteadyOff && a.now != nil {
		*a.touched = a.now()
	}
	return st
}
