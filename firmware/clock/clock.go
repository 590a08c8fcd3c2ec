// Package clock is the two-player game clock.
package clock

// Players that can hold the clock. None means no clock runs.
const (
	None    = 0
	Player1 = 1
	Player2 = 2
)

// Engine accumulates elapsed milliseconds for two players.
//
// Only the selected player accumulates, and only while not paused. Every Tick rebases the
// start timestamp to now, so repeated ticks never count the same interval twice.
type Engine struct {
	acc     [2]uint64
	since   uint64
	running uint8
	paused  bool
}

// Tick banks the time since the last tick for the running player.
func (e *Engine) Tick(now uint64) {
	if e.running == None {
		return
	}
	if !e.paused && now > e.since {
		e.acc[e.running-1] += now - e.since
	}
	e.since = now
}

// SelectRunning hands the clock to p (None stops it). Selecting the running player is a no-op.
func (e *Engine) SelectRunning(p int, now uint64) {
	if p < None || p > Player2 || uint8(p) == e.running {
		return
	}
	e.Tick(now)
	e.running = uint8(p)
	if p == None {
		e.since = 0
		return
	}
	e.since = now
}

// TogglePause flips the paused flag. Accumulators are untouched, so callers Tick(now)
// first: a paused Tick rebases and drops whatever was not yet banked.
func (e *Engine) TogglePause() {
	e.paused = !e.paused
}

// Reset zeroes both accumulators and stops the clock.
func (e *Engine) Reset() {
	*e = Engine{}
}

// Elapsed returns player p's accumulated milliseconds.
func (e *Engine) Elapsed(p int) uint64 {
	if p != Player1 && p != Player2 {
		return 0
	}
	return e.acc[p-1]
}

// Total is the sum of both players' time.
func (e *Engine) Total() uint64 { return e.acc[0] + e.acc[1] }

// Running returns the selected player, or None.
func (e *Engine) Running() int { return int(e.running) }

// Since returns the start timestamp held for p, zero when p is not running.
func (e *Engine) Since(p int) uint64 {
	if p == None || uint8(p) != e.running {
		return 0
	}
	return e.since
}

func (e *Engine) Paused() bool { return e.paused }

// Active reports whether a clock is counting right now.
func (e *Engine) Active() bool { return e.running != None && !e.paused }
