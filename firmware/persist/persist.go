// Package persist stores the roster and totals in the EEPROM.
//
// Layout at the game offset: one count byte, then per slot a 6-byte name and a 1-byte
// total. The region from WiFiOffset on belongs to the network credentials.
package persist

import (
	"errors"
	"fmt"

	"points/firmware/score"
	"points/hal"
)

const (
	slotSize = score.NameLen + 1
	// BlobSize is the encoded size of a saved game.
	BlobSize = 1 + score.MaxPlayers*slotSize
	// GameOffset is where the saved game starts.
	GameOffset = 0
	// WiFiOffset is the start of the region reserved for network credentials.
	WiFiOffset = 256
	// MaxStoredPoints is the largest total the one-byte slot can hold.
	MaxStoredPoints = 0xFF
)

// ErrNoSavedGame reports an erased or corrupt game region.
var ErrNoSavedGame = errors.New("no saved game")

// Blob is an encoded saved game.
type Blob [BlobSize]byte

// Encode serializes the roster and totals. Totals above MaxStoredPoints saturate.
func Encode(m *score.Model) Blob {
	var b Blob
	b[0] = byte(m.Count())
	for i := 0; i < score.MaxPlayers; i++ {
		off := 1 + i*slotSize
		name := m.Name(i)
		copy(b[off:off+score.NameLen], name[:])
		v := m.Points(i, 0)
		if v > MaxStoredPoints {
			v = MaxStoredPoints
		}
		b[off+score.NameLen] = byte(v)
	}
	return b
}

// Decode restores the roster and totals into m. Damage columns are zeroed. m is left
// untouched on error.
func Decode(b Blob, m *score.Model) error {
	count := int(b[0])
	if count < 1 || count > score.MaxPlayers {
		return fmt.Errorf("%w: count byte %#02x", ErrNoSavedGame, b[0])
	}
	var next score.Model
	next.SetCount(count)
	for i := 0; i < score.MaxPlayers; i++ {
		off := 1 + i*slotSize
		var name score.Name
		copy(name[:], b[off:off+score.NameLen])
		for j, c := range name {
			if c == 0xFF || c == 0 {
				name[j] = ' '
			}
		}
		next.SetName(i, name)
		next.SetPoints(i, 0, uint16(b[off+score.NameLen]))
	}
	*m = next
	return nil
}

// Store reads and writes saved games through an EEPROM.
type Store struct {
	ee  hal.EEPROM
	off uint32
}

// NewStore returns a store for the game region at off.
func NewStore(ee hal.EEPROM, off uint32) *Store {
	return &Store{ee: ee, off: off}
}

// Save writes the game and commits it.
func (s *Store) Save(m *score.Model) error {
	if s == nil || s.ee == nil {
		return hal.ErrNotImplemented
	}
	if s.off+BlobSize > WiFiOffset {
		return fmt.Errorf("save at %d: overlaps credentials region", s.off)
	}
	b := Encode(m)
	if _, err := s.ee.WriteAt(b[:], s.off); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	if err := s.ee.Commit(); err != nil {
		return fmt.Errorf("save commit: %w", err)
	}
	return nil
}

// Load reads the game into m. m keeps its contents on error.
func (s *Store) Load(m *score.Model) error {
	if s == nil || s.ee == nil {
		return hal.ErrNotImplemented
	}
	var b Blob
	n, err := s.ee.ReadAt(b[:], s.off)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	if n < BlobSize {
		return fmt.Errorf("load: short read %d: %w", n, ErrNoSavedGame)
	}
	if err := Decode(b, m); err != nil {
		return fmt.Errorf("load: %w", err)
	}
	return nil
}
