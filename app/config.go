package app

import (
	"time"

	"points/firmware/input"
	"points/firmware/nav"
	"points/firmware/persist"
)

// Config tunes the device. DefaultConfig mirrors the shipped firmware.
type Config struct {
	LongPress       time.Duration
	Debounce        time.Duration
	LoopInterval    time.Duration
	RefreshInterval time.Duration
	BootBanner      time.Duration
	RandomizeStep   time.Duration

	// Names and StartingPoints form the roster used when no saved game loads.
	Names          []string
	StartingPoints uint16

	// GameOffset is where the saved game lives in the EEPROM.
	GameOffset uint32

	// SerialConsole runs the command console on hal.Serial from the device loop.
	SerialConsole bool

	// Rand replaces the entropy-seeded source for the die and the randomize animation.
	Rand nav.Intn
}

func DefaultConfig() Config {
	return Config{
		LongPress:       input.DefaultLongPress * time.Millisecond,
		Debounce:        input.DefaultDebounce * time.Millisecond,
		LoopInterval:    15 * time.Millisecond,
		RefreshInterval: 200 * time.Millisecond,
		BootBanner:      time.Second,
		RandomizeStep:   nav.DefaultRandomizeStep * time.Millisecond,
		Names:           []string{"P1", "P2"},
		StartingPoints:  20,
		GameOffset:      persist.GameOffset,
		SerialConsole:   true,
	}
}

func ms(d time.Duration) uint64 {
	if d <= 0 {
		return 0
	}
	return uint64(d / time.Millisecond)
}
