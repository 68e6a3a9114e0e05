package setup

import (
	"errors"
	"fmt"
	"strings"

	"dmdclock/dmd"
)

var (
	ErrNoItems = errors.New("setup: menu has no items")
	ErrNoTitle = errors.New("setup: menu has no title")
)

// Captions are the labels of the four button cells, left to right:
// Back, Prev/Down, Next/Up, Save/Next. An empty caption draws an empty cell.
type Captions [4]string

var (
	mainCaptions   = Captions{"Back", "Prev", "Next", "Edit"}
	choiceCaptions = Captions{"Back", "Prev", "Next", "Save"}
)

// Menu describes one enumerated-choice screen. It is immutable.
type Menu struct {
	title    string
	items    []string
	captions Captions
}

// NewMenu validates and copies a menu description.
func NewMenu(title string, items []string, captions Captions) (*Menu, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrNoTitle
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%s: %w", title, ErrNoItems)
	}
	return &Menu{
		title:    title,
		items:    append([]string(nil), items...),
		captions: captions,
	}, nil
}

func (m *Menu) Title() string       { return m.title }
func (m *Menu) Len() int            { return len(m.items) }
func (m *Menu) Item(i int) string   { return m.items[i] }
func (m *Menu) Captions() Captions  { return m.captions }
func (m *Menu) Items() []string     { return append([]string(nil), m.items...) }
func (m *Menu) last() int           { return len(m.items) - 1 }
func (m *Menu) clamp(i int) int     { return min(max(i, 0), m.last()) }

// MenuID names a main-menu entry and the screen it opens. The order is the
// main menu order.
type MenuID int

const (
	SetTime MenuID = iota
	DST
	TimeFormat
	Brightness
	ClockDelay
	ClockFont
	DotColour
	numMenus
)

func (id MenuID) String() string {
	switch id {
	case SetTime:
		return "SET TIME"
	case DST:
		return "DST"
	case TimeFormat:
		return "TIME FORMAT"
	case Brightness:
		return "BRIGHTNESS"
	case ClockDelay:
		return "CLOCK DELAY"
	case ClockFont:
		return "CLOCK FONT"
	case DotColour:
		return "DOT COLOUR"
	default:
		return fmt.Sprintf("MENU(%d)", int(id))
	}
}

func (id MenuID) valid() bool { return id >= 0 && id < numMenus }

// Choice labels, in the order of the values stored in config.Items.
var (
	dstLabels        = []string{"OFF", "ON"}
	timeFormatLabels = []string{"24 HOUR", "12 HOUR", "12H WITH AM/PM"}
	clockDelayLabels = []string{
		"5 SECONDS", "10 SECONDS", "15 SECONDS", "30 SECONDS",
		"1 MINUTE", "2 MINUTES", "5 MINUTES",
	}
)

// Catalog holds the main menu and the descriptor of every choice screen.
type Catalog struct {
	main    *Menu
	choices map[MenuID]*Menu
}

// NewCatalog builds the menus. clockFonts lists the clock face names.
func NewCatalog(clockFonts []string) (*Catalog, error) {
	mainItems := make([]string, 0, numMenus)
	for id := SetTime; id < numMenus; id++ {
		mainItems = append(mainItems, id.String())
	}
	main, err := NewMenu("MAIN MENU", mainItems, mainCaptions)
	if err != nil {
		return nil, err
	}

	c := &Catalog{main: main, choices: make(map[MenuID]*Menu)}
	for id, items := range map[MenuID][]string{
		DST:        dstLabels,
		TimeFormat: timeFormatLabels,
		ClockDelay: clockDelayLabels,
		ClockFont:  clockFonts,
		DotColour:  dmd.ColourNames(),
	} {
		m, err := NewMenu(id.String(), items, choiceCaptions)
		if err != nil {
			return nil, err
		}
		c.choices[id] = m
	}
	return c, nil
}

// Main returns the main menu.
func (c *Catalog) Main() *Menu { return c.main }

// Choice returns the descriptor of an enumerated-choice screen.
func (c *Catalog) Choice(id MenuID) (*Menu, bool) {
	m, ok := c.choices[id]
	return m, ok
}
