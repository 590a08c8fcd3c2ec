//go:build !tinygo

package hal

import (
	"io"
	"os"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// HostOptions tunes the host HAL. Zero values select defaults.
type HostOptions struct {
	// EEPROMPath is the backing file for the EEPROM; empty uses POINTS_EEPROM_PATH or points.eeprom.
	EEPROMPath string
	// Clock drives Millis; nil uses the real clock.
	Clock clockwork.Clock
	// LogOutput receives log lines; nil uses stderr.
	LogOutput io.Writer
	// Serial replaces the stdio console.
	Serial Serial
}

type hostHAL struct {
	logger *hostLogger
	led    *hostLED
	gpio   GPIO
	kbd    *hostKeyboard
	lcd    *lcdGrid
	fb     *hostFramebuffer
	paint  *lcdPainter
	eeprom *hostEEPROM
	t      *hostTime
	serial Serial
}

// New returns a host HAL implementation with default options.
func New() HAL {
	return NewHost(HostOptions{})
}

// NewHost returns a host HAL implementation.
func NewHost(opts HostOptions) HAL {
	return newHostHAL(opts)
}

func newHostHAL(opts HostOptions) *hostHAL {
	out := opts.LogOutput
	if out == nil {
		out = os.Stderr
	}
	logger := newHostLogger(out)
	led := &hostLED{logger: logger}
	kbd := newHostKeyboard()

	pins := []GPIOPin{newLEDPin("LED", led)}
	for _, b := range []struct {
		name string
		key  hostButton
	}{
		{PinMinus, hostButtonMinus},
		{PinPlus, hostButtonPlus},
		{PinMain, hostButtonMain},
	} {
		key := b.key
		// Buttons are active-low: a held key reads low.
		pins = append(pins, newLevelPin(b.name, func() bool { return !kbd.held(key) }))
	}

	lcd := newLCDGrid(20, 4)
	w, h := lcdPixelSize(20, 4)
	fb := newHostFramebuffer(w, h)

	serial := opts.Serial
	if serial == nil {
		serial = newHostSerial(os.Stdin, os.Stdout)
	}

	return &hostHAL{
		logger: logger,
		led:    led,
		gpio:   NewGPIO(pins...),
		kbd:    kbd,
		lcd:    lcd,
		fb:     fb,
		paint:  newLCDPainter(lcd, fb),
		eeprom: newHostEEPROM(opts.EEPROMPath),
		t:      newHostTime(opts.Clock),
		serial: serial,
	}
}

func (h *hostHAL) Logger() Logger  { return h.logger }
func (h *hostHAL) LED() LED        { return h.led }
func (h *hostHAL) GPIO() GPIO      { return h.gpio }
func (h *hostHAL) LCD() CharLCD    { return h.lcd }
func (h *hostHAL) EEPROM() EEPROM  { return h.eeprom }
func (h *hostHAL) Time() Time      { return h.t }
func (h *hostHAL) Serial() Serial  { return h.serial }
func (h *hostHAL) Entropy() uint32 { return h.t.entropy() }

type hostLogger struct {
	log zerolog.Logger
}

func newHostLogger(w io.Writer) *hostLogger {
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05.000"}
	return &hostLogger{log: zerolog.New(cw).With().Timestamp().Logger()}
}

func (l *hostLogger) WriteLineString(s string) {
	l.log.Info().Msg(s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.log.Info().Msg(string(b))
}

type hostLED struct {
	mu     sync.Mutex
	on     bool
	logger *hostLogger
}

func (l *hostLED) High() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.on {
		return
	}
	l.on = true
	l.logger.log.Debug().Bool("on", true).Msg("led")
}

func (l *hostLED) Low() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.on {
		return
	}
	l.on = false
	l.logger.log.Debug().Bool("on", false).Msg("led")
}
