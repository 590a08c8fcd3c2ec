//go:build !tinygo

package hal

import "sync/atomic"

type hostButton uint8

const (
	hostButtonMinus hostButton = iota
	hostButtonPlus
	hostButtonMain
	hostButtonCount
)

// hostKeyboard tracks which device buttons the host keyboard is holding down.
type hostKeyboard struct {
	down [hostButtonCount]atomic.Bool
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{}
}

func (k *hostKeyboard) held(b hostButton) bool {
	if b >= hostButtonCount {
		return false
	}
	return k.down[b].Load()
}

func (k *hostKeyboard) set(b hostButton, down bool) {
	if b >= hostButtonCount {
		return
	}
	k.down[b].Store(down)
}
