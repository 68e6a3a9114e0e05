// Package setup is the on-device settings editor of the clock.
//
// A Controller is called once per display frame. It keeps which screen is
// active in a NavigationState, hands the frame to exactly one editor, then
// waits for display sync and submits the composed frame. No call blocks on
// user input: waiting for a button is a frame in which nothing changes.
//
// The screens are the main menu, a time editor, a brightness editor with live
// preview, and enumerated-choice editors for the remaining settings. An
// editor's value reaches the working config, and the store, only when that
// editor saves.
package setup

import (
	"fmt"
	"time"

	"dmdclock/config"
	"dmdclock/dmd"
)

// Display is the panel the controller draws on.
type Display interface {
	WaitSync()
	SetFrame(f *dmd.Dotmap) error
	SetBrightness(level int)
	SetColour(c dmd.Colour)
}

// Store loads and persists the device settings.
type Store interface {
	Load() (config.Items, error)
	Save(it config.Items) error
}

// Clock is the DST-adjusted real-time clock.
type Clock interface {
	NowDST() time.Time
	SetDST(t time.Time) error
}

// Logger receives one line per notable event.
type Logger interface {
	WriteLineString(s string)
}

// Config wires a Controller to its collaborators.
type Config struct {
	Display Display
	Store   Store
	Clock   Clock
	Buttons Buttons
	// ClockFonts names the clock faces offered by the CLOCK FONT screen.
	ClockFonts []string
	// Chrome overrides the fonts; its Now defaults to Clock.NowDST.
	Chrome Chrome
	Logger Logger
	// Uptime drives the blinking field of the time editor.
	Uptime func() time.Duration
	// OnCommit runs after a screen saves, with the updated settings.
	OnCommit func(id MenuID, it config.Items)
}

// NavigationState is the active screen and the main menu cursor.
type NavigationState struct {
	AtMainMenu bool
	Child      MenuID
	MainCursor int
	entering   bool
}

// Controller runs a setup session.
type Controller struct {
	cfg      Config
	catalog  *Catalog
	chrome   Chrome
	frame    *dmd.Dotmap
	main     ChoiceEditor
	children map[MenuID]child

	nav      NavigationState
	snapshot config.Items
	editTime time.Time
	active   bool
}

// NewController builds the menu catalog and the editors.
func NewController(cfg Config) (*Controller, error) {
	if cfg.Display == nil || cfg.Store == nil || cfg.Clock == nil {
		return nil, fmt.Errorf("setup: display, store and clock are required")
	}
	catalog, err := NewCatalog(cfg.ClockFonts)
	if err != nil {
		return nil, err
	}
	if cfg.Uptime == nil {
		start := time.Now()
		cfg.Uptime = func() time.Duration { return time.Since(start) }
	}

	c := &Controller{
		cfg:     cfg,
		catalog: catalog,
		chrome:  cfg.Chrome,
		frame:   dmd.NewFrame(),
	}
	if c.chrome.Now == nil {
		c.chrome.Now = cfg.Clock.NowDST
	}

	c.children = map[MenuID]child{
		SetTime:    &setTimeChild{},
		Brightness: &brightnessChild{},
	}
	for _, id := range []MenuID{DST, TimeFormat, ClockDelay, ClockFont, DotColour} {
		m, _ := catalog.Choice(id)
		c.children[id] = &choiceChild{id: id, menu: m}
	}
	return c, nil
}

// Catalog returns the menus the controller was built with.
func (c *Controller) Catalog() *Catalog { return c.catalog }

// Active reports whether a session is running.
func (c *Controller) Active() bool { return c.active }

// State returns the navigation state.
func (c *Controller) State() NavigationState { return c.nav }

// Snapshot returns the working copy of the settings.
func (c *Controller) Snapshot() config.Items { return c.snapshot }

// Frame returns the last composed frame.
func (c *Controller) Frame() *dmd.Dotmap { return c.frame }

// Start begins a session at the main menu with the cursor on SET TIME.
func (c *Controller) Start() {
	it, err := c.cfg.Store.Load()
	if err != nil {
		c.logf("setup: load settings: %v; using defaults", err)
		it = config.Defaults()
	}
	c.snapshot = it.Clamped()
	c.nav = NavigationState{AtMainMenu: true, Child: SetTime, MainCursor: int(SetTime), entering: true}
	c.active = true
	c.logf("setup: start")
}

// Cancel ends the session without saving the screen in progress. A live
// brightness preview is rolled back.
func (c *Controller) Cancel() {
	if !c.active {
		return
	}
	if !c.nav.AtMainMenu {
		if ch, ok := c.children[c.nav.Child]; ok {
			ch.cancel(c)
		}
	}
	c.active = false
	c.logf("setup: cancelled")
}

// Tick runs one frame. It reports false once the session has ended; the
// frame of that call is still submitted.
func (c *Controller) Tick() bool {
	if !c.active {
		return false
	}
	in := c.cfg.Buttons.Read()
	c.frame.Fill(0)

	if c.nav.AtMainMenu {
		c.tickMain(in)
	} else {
		c.tickChild(in)
	}

	c.cfg.Display.WaitSync()
	if err := c.cfg.Display.SetFrame(c.frame); err != nil {
		c.logf("setup: submit frame: %v", err)
	}
	if !c.active {
		c.logf("setup: exit")
	}
	return c.active
}

func (c *Controller) tickMain(in Input) {
	entering := c.nav.entering
	c.nav.entering = false

	switch c.main.Tick(c.frame, c.chrome, c.catalog.Main(), entering, &c.nav.MainCursor, in) {
	case Back:
		c.active = false
	case Saved:
		c.enterChild(MenuID(c.nav.MainCursor))
	}
}

// enterChild switches to a child screen and draws its first frame in place
// of the main menu. The press that selected it is not passed on.
func (c *Controller) enterChild(id MenuID) {
	c.nav.AtMainMenu = false
	c.nav.Child = id
	c.nav.entering = true
	if id == SetTime {
		c.editTime = c.cfg.Clock.NowDST()
	}
	c.frame.Fill(0)
	c.tickChild(Input{})
}

func (c *Controller) tickChild(in Input) {
	ch, ok := c.children[c.nav.Child]
	if !ok || !c.nav.Child.valid() {
		c.logf("setup: unknown screen %d", int(c.nav.Child))
		c.returnToMain()
		return
	}

	entering := c.nav.entering
	c.nav.entering = false
	done, saved := ch.tick(c, entering, in)
	if !done {
		return
	}
	if saved {
		c.commit(c.nav.Child)
	}
	c.returnToMain()
}

func (c *Controller) returnToMain() {
	c.nav.AtMainMenu = true
	c.nav.entering = true
	c.frame.Fill(0)
	c.tickMain(Input{})
}

// commit applies the side effects of a saved screen and persists the
// settings.
func (c *Controller) commit(id MenuID) {
	switch id {
	case SetTime:
		if err := c.cfg.Clock.SetDST(c.editTime); err != nil {
			c.logf("setup: set clock: %v", err)
		} else {
			c.logf("setup: clock set to %s", c.editTime.Format("15:04:05"))
		}
	case DotColour:
		c.cfg.Display.SetColour(dmd.Colour(c.snapshot.DotColour))
	}

	if err := c.cfg.Store.Save(c.snapshot); err != nil {
		c.logf("setup: save %s: %v", id, err)
	} else {
		c.logf("setup: saved %s", c.snapshot)
	}
	if c.cfg.OnCommit != nil {
		c.cfg.OnCommit(id, c.snapshot)
	}
}

func (c *Controller) blinkPhase() bool {
	return (c.cfg.Uptime().Milliseconds()/500)%2 == 0
}

func (c *Controller) logf(format string, args ...any) {
	if c.cfg.Logger == nil {
		return
	}
	c.cfg.Logger.WriteLineString(fmt.Sprintf(format, args...))
}

// child is one kind of screen reachable from the main menu.
type child interface {
	// tick runs one frame and reports whether the screen finished and, if so,
	// whether it saved.
	tick(c *Controller, entering bool, in Input) (done, saved bool)
	cancel(c *Controller)
}

type setTimeChild struct {
	ed TimeEditor
}

func (s *setTimeChild) tick(c *Controller, entering bool, in Input) (bool, bool) {
	res := s.ed.Tick(c.frame, c.chrome, c.blinkPhase(), entering, &c.editTime, in)
	return res != Continue, res == Saved
}

func (s *setTimeChild) cancel(*Controller) {}

type choiceChild struct {
	id   MenuID
	menu *Menu
	ed   ChoiceEditor
}

func (s *choiceChild) field(it *config.Items) *int {
	switch s.id {
	case DST:
		return &it.DST
	case TimeFormat:
		return &it.TimeFormat
	case ClockDelay:
		return &it.ClockDelay
	case ClockFont:
		return &it.ClockFont
	case DotColour:
		return &it.DotColour
	}
	return nil
}

func (s *choiceChild) tick(c *Controller, entering bool, in Input) (bool, bool) {
	v := s.field(&c.snapshot)
	if v == nil || s.menu == nil {
		return true, false
	}
	res := s.ed.Tick(c.frame, c.chrome, s.menu, entering, v, in)
	return res != Continue, res == Saved
}

func (s *choiceChild) cancel(*Controller) {}

type brightnessChild struct {
	ed BrightnessEditor
}

func (s *brightnessChild) tick(c *Controller, entering bool, in Input) (bool, bool) {
	active := s.ed.Tick(c.frame, c.chrome, c.cfg.Display, entering, &c.snapshot.Brightness, in)
	return !active, !active && s.ed.Committed()
}

func (s *brightnessChild) cancel(c *Controller) {
	s.ed.Rollback(c.cfg.Display)
}
