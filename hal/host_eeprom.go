//go:build !tinygo

package hal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

const (
	hostEEPROMDefaultPath      = "points.eeprom"
	hostEEPROMDefaultSizeBytes = 512
)

type hostEEPROM struct {
	mu    sync.Mutex
	f     *os.File
	cache []byte
	dirty bool
}

func newHostEEPROM(path string) *hostEEPROM {
	if path == "" {
		path = os.Getenv("POINTS_EEPROM_PATH")
	}
	if path == "" {
		path = hostEEPROMDefaultPath
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return &hostEEPROM{f: nil}
	}

	cache := make([]byte, hostEEPROMDefaultSizeBytes)
	for i := range cache {
		cache[i] = 0xFF
	}
	if _, err := f.ReadAt(cache, 0); err != nil && !errors.Is(err, io.EOF) {
		_ = f.Close()
		return &hostEEPROM{f: nil}
	}
	return &hostEEPROM{f: f, cache: cache}
}

func (e *hostEEPROM) SizeBytes() uint32 { return uint32(len(e.cache)) }

func (e *hostEEPROM) ReadAt(p []byte, off uint32) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.f == nil {
		return 0, ErrNotImplemented
	}
	if off >= uint32(len(e.cache)) {
		return 0, fmt.Errorf("eeprom read at %d: %w", off, os.ErrInvalid)
	}
	return copy(p, e.cache[off:]), nil
}

func (e *hostEEPROM) WriteAt(p []byte, off uint32) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.f == nil {
		return 0, ErrNotImplemented
	}
	if off >= uint32(len(e.cache)) || int(off)+len(p) > len(e.cache) {
		return 0, fmt.Errorf("eeprom write at %d len=%d: %w", off, len(p), os.ErrInvalid)
	}
	n := copy(e.cache[off:], p)
	e.dirty = true
	return n, nil
}

func (e *hostEEPROM) Commit() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.f == nil {
		return ErrNotImplemented
	}
	if !e.dirty {
		return nil
	}
	if _, err := e.f.WriteAt(e.cache, 0); err != nil {
		return fmt.Errorf("eeprom commit: %w", err)
	}
	if err := e.f.Sync(); err != nil {
		return fmt.Errorf("eeprom sync: %w", err)
	}
	e.dirty = false
	return nil
}

func (e *hostEEPROM) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.f == nil {
		return nil
	}
	err := e.f.Close()
	e.f = nil
	return err
}
