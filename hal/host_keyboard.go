//go:build !tinygo && cgo

package hal

import "github.com/hajimehoshi/ebiten/v2"

// hostKeys maps keyboard keys onto the front-panel buttons.
var hostKeys = [NumButtons][]ebiten.Key{
	ButtonMenu:  {ebiten.KeyEscape, ebiten.KeyBackspace, ebiten.KeyM},
	ButtonMinus: {ebiten.KeyArrowLeft, ebiten.KeyArrowDown, ebiten.KeyMinus},
	ButtonPlus:  {ebiten.KeyArrowRight, ebiten.KeyArrowUp, ebiten.KeyEqual},
	ButtonEnter: {ebiten.KeyEnter, ebiten.KeySpace},
}

type hostKeyboard struct {
	pins [NumButtons]*VirtualPin
}

func newHostKeyboard(pins [NumButtons]*VirtualPin) *hostKeyboard {
	return &hostKeyboard{pins: pins}
}

// poll copies the current key levels to the button pins. Debouncing and
// repeat are left to the button readers, as with real switches.
func (k *hostKeyboard) poll() {
	for id, keys := range hostKeys {
		down := false
		for _, key := range keys {
			if ebiten.IsKeyPressed(key) {
				down = true
				break
			}
		}
		k.pins[id].Set(down)
	}
}
