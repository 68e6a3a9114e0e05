package hal

import "sync"

// VirtualPin is a button pin whose level is driven by software: the host
// keyboard, a headless press script, or a test.
type VirtualPin struct {
	mu    sync.Mutex
	name  string
	level bool
}

func NewVirtualPin(name string) *VirtualPin {
	return &VirtualPin{name: name}
}

func (p *VirtualPin) Name() string { return p.name }

func (p *VirtualPin) Pressed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

// Set drives the pin level; true means the button is held down.
func (p *VirtualPin) Set(level bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
}

// PinSet is a fixed set of button pins indexed by ButtonID.
type PinSet [NumButtons]ButtonPin

func (s *PinSet) Pin(id ButtonID) ButtonPin {
	if s == nil || id >= NumButtons {
		return nil
	}
	return s[id]
}

// NewVirtualButtons returns a PinSet of VirtualPins named after the buttons.
func NewVirtualButtons() (*PinSet, [NumButtons]*VirtualPin) {
	var set PinSet
	var pins [NumButtons]*VirtualPin
	for i := range pins {
		pins[i] = NewVirtualPin(ButtonID(i).String())
		set[i] = pins[i]
	}
	return &set, pins
}
