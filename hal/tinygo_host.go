//go:build tinygo && !baremetal

package hal

import (
	"fmt"
	"runtime"
	"time"
)

type tinyGoHostHAL struct {
	logger *tinyGoHostLogger
	led    *tinyGoHostLED
	gpio   GPIO
	lcd    *lcdGrid
	t      *tinyGoHostTime
}

// New returns a TinyGo-on-host HAL implementation.
//
// This is used by `tinygo run` targets like linux/wasm where there is no MCU pin mapping.
// Buttons are virtual pins that read released.
func New() HAL {
	l := &tinyGoHostLogger{}
	led := &tinyGoHostLED{logger: l}
	pins := []GPIOPin{newLEDPin("LED", led)}
	for _, name := range []string{PinMinus, PinPlus, PinMain} {
		pins = append(pins, newButtonPin(name))
	}
	return &tinyGoHostHAL{
		logger: l,
		led:    led,
		gpio:   NewGPIO(pins...),
		lcd:    newLCDGrid(20, 4),
		t:      &tinyGoHostTime{boot: time.Now()},
	}
}

func (h *tinyGoHostHAL) Logger() Logger  { return h.logger }
func (h *tinyGoHostHAL) LED() LED        { return h.led }
func (h *tinyGoHostHAL) GPIO() GPIO      { return h.gpio }
func (h *tinyGoHostHAL) LCD() CharLCD    { return h.lcd }
func (h *tinyGoHostHAL) EEPROM() EEPROM  { return stubEEPROM{} }
func (h *tinyGoHostHAL) Time() Time      { return h.t }
func (h *tinyGoHostHAL) Serial() Serial  { return tinyGoHostSerial{} }
func (h *tinyGoHostHAL) Entropy() uint32 { return uint32(time.Now().UnixNano()) }

type tinyGoHostTime struct {
	boot time.Time
}

func (t *tinyGoHostTime) Millis() uint64 {
	return uint64(time.Since(t.boot) / time.Millisecond)
}

type tinyGoHostLogger struct{}

func (l *tinyGoHostLogger) WriteLineString(s string) {
	println(s)
}

func (l *tinyGoHostLogger) WriteLineBytes(b []byte) {
	println(string(b))
}

type tinyGoHostLED struct {
	on     bool
	logger *tinyGoHostLogger
}

func (l *tinyGoHostLED) High() {
	l.on = true
	l.logger.WriteLineString(fmt.Sprintf("led: HIGH (tinygo/%s)", runtime.GOOS))
}

func (l *tinyGoHostLED) Low() {
	l.on = false
	l.logger.WriteLineString(fmt.Sprintf("led: LOW (tinygo/%s)", runtime.GOOS))
}

type tinyGoHostSerial struct{}

func (tinyGoHostSerial) Read(p []byte) (int, error)  { return 0, ErrNotImplemented }
func (tinyGoHostSerial) Write(p []byte) (int, error) { return len(p), nil }
