package setup

import (
	"errors"
	"strings"
	"time"

	"dmdclock/button"
	"dmdclock/config"
	"dmdclock/dmd"
)

// oneShot reads as the queued state once, then SteadyOff.
type oneShot struct {
	next button.State
}

func (r *oneShot) Read() button.State {
	s := r.next
	r.next = button.SteadyOff
	return s
}

type fakeDisplay struct {
	brightness int
	history    []int
	colour     dmd.Colour
	colours    int
	syncs      int
	frames     int
	lastFrame  *dmd.Dotmap
	outOfOrder bool
	frameErr   error
}

func (d *fakeDisplay) WaitSync() { d.syncs++ }

func (d *fakeDisplay) SetFrame(f *dmd.Dotmap) error {
	d.frames++
	if d.frames != d.syncs {
		d.outOfOrder = true
	}
	d.lastFrame = f.Clone()
	return d.frameErr
}

func (d *fakeDisplay) SetBrightness(level int) {
	d.brightness = level
	d.history = append(d.history, level)
}

func (d *fakeDisplay) SetColour(c dmd.Colour) {
	d.colour = c
	d.colours++
}

type fakeStore struct {
	items   config.Items
	loadErr error
	saveErr error
	saves   []config.Items
}

func (s *fakeStore) Load() (config.Items, error) {
	if s.loadErr != nil {
		return config.Items{}, s.loadErr
	}
	return s.items, nil
}

func (s *fakeStore) Save(it config.Items) error {
	s.saves = append(s.saves, it)
	if s.saveErr != nil {
		return s.saveErr
	}
	s.items = it
	return nil
}

type fakeClock struct {
	now time.Time
	set []time.Time
	err error
}

func (c *fakeClock) NowDST() time.Time { return c.now }

func (c *fakeClock) SetDST(t time.Time) error {
	c.set = append(c.set, t)
	return c.err
}

type fakeLog struct {
	lines []string
}

func (l *fakeLog) WriteLineString(s string) { l.lines = append(l.lines, s) }

func (l *fakeLog) contains(sub string) bool {
	for _, line := range l.lines {
		if strings.Contains(line, sub) {
			return true
		}
	}
	return false
}

var errFlash = errors.New("flash failed")

// rig is a controller wired to fakes.
type rig struct {
	c       *Controller
	disp    *fakeDisplay
	store   *fakeStore
	clk     *fakeClock
	log     *fakeLog
	menu    *oneShot
	minus   *oneShot
	plus    *oneShot
	enter   *oneShot
	commits []MenuID
}

func newRig(items config.Items) *rig {
	r := &rig{
		disp:  &fakeDisplay{brightness: items.Brightness},
		store: &fakeStore{items: items},
		clk:   &fakeClock{now: time.Date(2026, 10, 18, 14, 37, 52, 0, time.UTC)},
		log:   &fakeLog{},
		menu:  &oneShot{},
		minus: &oneShot{},
		plus:  &oneShot{},
		enter: &oneShot{},
	}
	c, err := NewController(Config{
		Display:    r.disp,
		Store:      r.store,
		Clock:      r.clk,
		Buttons:    Buttons{Menu: r.menu, Minus: r.minus, Plus: r.plus, Enter: r.enter},
		ClockFonts: []string{"STANDARD", "TREK"},
		Logger:     r.log,
		Uptime:     func() time.Duration { return 0 },
		OnCommit:   func(id MenuID, _ config.Items) { r.commits = append(r.commits, id) },
	})
	if err != nil {
		panic(err)
	}
	r.c = c
	return r
}

func (r *rig) tick() bool { return r.c.Tick() }

func (r *rig) press(b *oneShot) bool {
	b.next = button.Rising
	return r.c.Tick()
}

func (r *rig) hold(b *oneShot) bool {
	b.next = button.OnHold
	return r.c.Tick()
}

// open moves the main cursor to id and enters it.
func (r *rig) open(id MenuID) {
	for r.c.main.Cursor() < int(id) {
		r.press(r.plus)
	}
	for r.c.main.Cursor() > int(id) {
		r.press(r.minus)
	}
	r.press(r.enter)
}

// litIn counts lit dots in the rectangle.
func litIn(f *dmd.Dotmap, x0, y0, x1, y1 int) int {
	n := 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if f.DotAt(x, y) != 0 {
				n++
			}
		}
	}
	return n
}

func lit(f *dmd.Dotmap) int { return litIn(f, 0, 0, f.Width(), f.Height()) }

// textIn counts dots brighter than the chrome bars in the rectangle.
func textIn(f *dmd.Dotmap, x0, y0, x1, y1 int) int {
	n := 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if f.DotAt(x, y) > barLevel {
				n++
			}
		}
	}
	return n
}
