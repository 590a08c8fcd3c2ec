//go:build tinygo && baremetal && (rp2040 || rp2350)

package hal

import (
	"fmt"
	"machine"
)

// eepromSize matches the 512-byte EEPROM emulation the record layout was designed for.
const eepromSize = 512

// rp2EEPROM shadows the first erase block of the data flash region in RAM.
type rp2EEPROM struct {
	cache  [eepromSize]byte
	loaded bool
	dirty  bool
}

func newBoardEEPROM() EEPROM {
	return &rp2EEPROM{}
}

func (e *rp2EEPROM) load() {
	if e.loaded {
		return
	}
	e.loaded = true
	for i := range e.cache {
		e.cache[i] = 0xFF
	}
	if machine.Flash.Size() < eepromSize {
		return
	}
	_, _ = machine.Flash.ReadAt(e.cache[:], 0)
}

func (e *rp2EEPROM) SizeBytes() uint32 { return eepromSize }

func (e *rp2EEPROM) ReadAt(p []byte, off uint32) (int, error) {
	e.load()
	if off >= eepromSize {
		return 0, fmt.Errorf("eeprom read at %d: out of range", off)
	}
	return copy(p, e.cache[off:]), nil
}

func (e *rp2EEPROM) WriteAt(p []byte, off uint32) (int, error) {
	e.load()
	if int(off)+len(p) > eepromSize {
		return 0, fmt.Errorf("eeprom write at %d len %d: out of range", off, len(p))
	}
	n := copy(e.cache[off:], p)
	e.dirty = true
	return n, nil
}

func (e *rp2EEPROM) Commit() error {
	if !e.dirty {
		return nil
	}
	bs := machine.Flash.EraseBlockSize()
	if bs <= 0 || machine.Flash.Size() < bs {
		return ErrNotImplemented
	}
	if err := machine.Flash.EraseBlocks(0, 1); err != nil {
		return fmt.Errorf("flash erase: %w", err)
	}
	if _, err := machine.Flash.WriteAt(e.cache[:], 0); err != nil {
		return fmt.Errorf("flash write: %w", err)
	}
	e.dirty = false
	return nil
}
