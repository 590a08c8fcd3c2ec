//go:build !tinygo && !cgo

package hal

// Without cgo there is no window to read keys from, so every button stays released.
func (k *hostKeyboard) poll() {}
