//go:build !tinygo && cgo

package hal

import "github.com/hajimehoshi/ebiten/v2"

// Key bindings for the three device buttons.
var hostButtonKeys = [hostButtonCount][]ebiten.Key{
	hostButtonMinus: {ebiten.KeyArrowLeft, ebiten.KeyMinus, ebiten.KeyNumpadSubtract},
	hostButtonPlus:  {ebiten.KeyArrowRight, ebiten.KeyEqual, ebiten.KeyNumpadAdd},
	hostButtonMain:  {ebiten.KeyEnter, ebiten.KeySpace, ebiten.KeyNumpadEnter},
}

// poll samples the window keyboard. It must run on the ebiten update goroutine.
func (k *hostKeyboard) poll() {
	for b := hostButton(0); b < hostButtonCount; b++ {
		down := false
		for _, key := range hostButtonKeys[b] {
			if ebiten.IsKeyPressed(key) {
				down = true
				break
			}
		}
		k.set(b, down)
	}
}
