//go:build !tinygo

package hal

import (
	"time"

	"github.com/jonboulle/clockwork"
)

type hostTime struct {
	clock clockwork.Clock
	boot  time.Time
}

func newHostTime(clock clockwork.Clock) *hostTime {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &hostTime{clock: clock, boot: clock.Now()}
}

func (t *hostTime) Millis() uint64 {
	d := t.clock.Since(t.boot)
	if d < 0 {
		return 0
	}
	return uint64(d / time.Millisecond)
}

func (t *hostTime) entropy() uint32 {
	n := t.clock.Now().UnixNano()
	return uint32(n) ^ uint32(n>>32)
}
