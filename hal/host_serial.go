//go:build !tinygo

package hal

import (
	"io"
	"sync"
)

const hostSerialBuffer = 256

// hostSerial adapts stdio to the polled UART the device loop expects: Read never blocks
// and returns whatever bytes have arrived since the last call. The stdin reader starts on
// the first Read, so a host that never polls the serial port leaves stdin alone.
type hostSerial struct {
	r io.Reader

	wmu sync.Mutex
	w   io.Writer

	once sync.Once
	rx   chan byte
}

func newHostSerial(r io.Reader, w io.Writer) *hostSerial {
	return &hostSerial{r: r, w: w, rx: make(chan byte, hostSerialBuffer)}
}

func (s *hostSerial) pump() {
	var buf [64]byte
	for {
		n, err := s.r.Read(buf[:])
		for _, b := range buf[:n] {
			select {
			case s.rx <- b:
			default:
				// Overrun: drop like a UART FIFO.
			}
		}
		if err != nil {
			return
		}
	}
}

func (s *hostSerial) Read(p []byte) (int, error) {
	if s.r == nil {
		return 0, ErrNotImplemented
	}
	s.once.Do(func() { go s.pump() })
	n := 0
	for n < len(p) {
		select {
		case b := <-s.rx:
			p[n] = b
			n++
		default:
			return n, nil
		}
	}
	return n, nil
}

func (s *hostSerial) Write(p []byte) (int, error) {
	if s.w == nil {
		return 0, ErrNotImplemented
	}
	s.wmu.Lock()
	defer s.wmu.Unlock()
	return s.w.Write(p)
}
