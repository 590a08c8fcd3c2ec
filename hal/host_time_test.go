//go:build !tinygo

package hal

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestHostTimeMillisFollowsClock(t *testing.T) {
	clock := clockwork.NewFakeClock()
	ht := newHostTime(clock)

	if got := ht.Millis(); got != 0 {
		t.Fatalf("Millis() = %d, want 0", got)
	}
	clock.Advance(1500 * time.Millisecond)
	if got := ht.Millis(); got != 1500 {
		t.Fatalf("Millis() = %d, want 1500", got)
	}
	clock.Advance(999 * time.Microsecond)
	if got := ht.Millis(); got != 1500 {
		t.Fatalf("Millis() = %d, want 1500 (sub-millisecond truncated)", got)
	}
}
