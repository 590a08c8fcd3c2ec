//go:build !tinygo

package main

import (
	"errors"
	"fmt"
	"os"
)

const defaultImageSize = 512

// imageFile is an EEPROM image held in memory and written out on Commit.
type imageFile struct {
	path  string
	cache []byte
}

func newImageFile(path string, size uint32) (*imageFile, error) {
	if size == 0 || size%64 != 0 {
		return nil, fmt.Errorf("eeprom: invalid image size %d", size)
	}
	img := &imageFile{path: path, cache: make([]byte, size)}
	for i := range img.cache {
		img.cache[i] = 0xFF
	}
	return img, nil
}

// openImageFile reads an existing image.
func openImageFile(path string) (*imageFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read eeprom image %q: %w", path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("eeprom image %q is empty", path)
	}
	return &imageFile{path: path, cache: data}, nil
}

func (f *imageFile) SizeBytes() uint32 { return uint32(len(f.cache)) }

func (f *imageFile) ReadAt(p []byte, off uint32) (int, error) {
	if off >= f.SizeBytes() {
		return 0, fmt.Errorf("eeprom read at %d: %w", off, os.ErrInvalid)
	}
	return copy(p, f.cache[off:]), nil
}

func (f *imageFile) WriteAt(p []byte, off uint32) (int, error) {
	if off >= f.SizeBytes() {
		return 0, fmt.Errorf("eeprom write at %d: %w", off, os.ErrInvalid)
	}
	n := copy(f.cache[off:], p)
	if n < len(p) {
		return n, errors.New("eeprom write past end of image")
	}
	return n, nil
}

func (f *imageFile) Commit() error {
	if err := os.WriteFile(f.path, f.cache, 0o644); err != nil {
		return fmt.Errorf("write eeprom image %q: %w", f.path, err)
	}
	return nil
}
