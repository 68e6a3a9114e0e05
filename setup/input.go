package setup

import "dmdclock/button"

// Input is the state of the four buttons for one frame.
type Input struct {
	Back  button.State
	Prev  button.State
	Next  button.State
	Enter button.State
}

// Buttons are the readers behind an Input. A nil reader reads SteadyOff.
type Buttons struct {
	Menu  button.Reader
	Minus button.Reader
	Plus  button.Reader
	Enter button.Reader
}

// Read samples every button once.
func (b Buttons) Read() Input {
	return Input{
		Back:  read(b.Menu),
		Prev:  read(b.Minus),
		Next:  read(b.Plus),
		Enter: read(b.Enter),
	}
}

// Active reports whether any button is down.
func (in Input) Active() bool {
	return in.Back != button.SteadyOff || in.Prev != button.SteadyOff ||
		in.Next != button.SteadyOff || in.Enter != button.SteadyOff
}

func read(r button.Reader) button.State {
	if r == nil {
		return button.SteadyOff
	}
	return r.Read()
}
