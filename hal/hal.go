package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

var ErrNotImplemented = errors.New("not implemented")

// Button pin names, in the order the input classifier scans them.
const (
	PinMinus = "MINUS"
	PinPlus  = "PLUS"
	PinMain  = "MAIN"
)

// CharLCD is an HD44780-style character display.
//
// Writes are fire-and-forget: the core assumes they always succeed.
type CharLCD interface {
	Size() (cols, rows uint8)
	CreateChar(slot uint8, bitmap [8]byte)
	SetCursor(col, row uint8)
	Print(b []byte)
	Backlight(on bool)
}

// EEPROM is a small byte-addressable non-volatile store.
//
// Writes land in a RAM cache and reach the medium on Commit, like the ESP8266 EEPROM
// emulation the device layout was designed for.
type EEPROM interface {
	SizeBytes() uint32
	ReadAt(p []byte, off uint32) (int, error)
	WriteAt(p []byte, off uint32) (int, error)
	Commit() error
}

// Time provides the millisecond timebase since boot.
type Time interface {
	Millis() uint64
}

// Serial is a byte stream console (UART on hardware, stdio on host).
type Serial interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
}

// HAL provides the only contact point between the firmware and the outside world.
type HAL interface {
	Logger() Logger
	LED() LED
	GPIO() GPIO
	LCD() CharLCD
	EEPROM() EEPROM
	Time() Time
	Serial() Serial
	Entropy() uint32
}

// FindPin returns the first pin with the given name.
func FindPin(g GPIO, name string) GPIOPin {
	if g == nil {
		return nil
	}
	for i := 0; i < g.PinCount(); i++ {
		p := g.Pin(i)
		if p != nil && p.Name() == name {
			return p
		}
	}
	return nil
}
