//go:build tinygo && baremetal && (rp2040 || rp2350)

package hal

import (
	"machine"
	"time"
)

type tinyGoTime struct {
	boot time.Time
}

func newTinyGoTime() *tinyGoTime {
	return &tinyGoTime{boot: time.Now()}
}

func (t *tinyGoTime) Millis() uint64 {
	return uint64(time.Since(t.boot) / time.Millisecond)
}

func boardEntropy(t *tinyGoTime) uint32 {
	if v, err := machine.GetRNG(); err == nil {
		return v
	}
	return uint32(t.Millis())
}

var crlf = []byte{'\r', '\n'}

// uartLogger writes CRLF-terminated log lines to the UART it shares with the console.
type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.Write(crlf)
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	l.uart.Write(b)
	l.uart.Write(crlf)
}

type pinLED struct {
	pin machine.Pin
}

func (l *pinLED) High() { l.pin.High() }
func (l *pinLED) Low()  { l.pin.Low() }

// uartSerial is the console port. UART.Read returns only what the RX ring buffer holds,
// so polling it from the device loop never blocks.
type uartSerial struct {
	uart *machine.UART
}

func (s *uartSerial) Read(p []byte) (int, error) {
	if s.uart == nil {
		return 0, ErrNotImplemented
	}
	return s.uart.Read(p)
}

func (s *uartSerial) Write(p []byte) (int, error) {
	if s.uart == nil {
		return 0, ErrNotImplemented
	}
	return s.uart.Write(p)
}
