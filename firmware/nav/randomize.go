package nav

// Intn is the random source used by the animation and the die.
type Intn interface {
	Intn(n int) int
}

// Verdict is the outcome of one Randomizer.Advance call.
type Verdict uint8

const (
	// Wait means the animation is active but not due yet.
	Wait Verdict = iota
	// Continue means the pointer moved one player forward.
	Continue
	// Stop means the animation ended; the pointer stays where it is.
	Stop
	// Inactive means no animation is running.
	Inactive
)

// DefaultRandomizeStep is the minimum time between pointer moves, in milliseconds.
const DefaultRandomizeStep = 250

// Randomizer spins the main cursor over the roster to pick a starting player.
// Each due step draws n in [0, 10] and moves on while n <= 9, so the run length is random.
type Randomizer struct {
	rng    Intn
	period uint64
	active bool
	due    uint64
}

// NewRandomizer returns a stopped animation paced at period milliseconds.
func NewRandomizer(rng Intn, period uint64) *Randomizer {
	if period == 0 {
		period = DefaultRandomizeStep
	}
	return &Randomizer{rng: rng, period: period}
}

// Start arms the animation. The first step is due immediately.
func (r *Randomizer) Start(now uint64) {
	r.active = true
	r.due = now
}

func (r *Randomizer) Active() bool { return r.active }

// Cancel stops the animation without a final step.
func (r *Randomizer) Cancel() { r.active = false }

// Advance runs one step if due and returns the new cursor.
func (r *Randomizer) Advance(now uint64, cursor, count int) (int, Verdict) {
	if !r.active {
		return cursor, Inactive
	}
	if now < r.due {
		return cursor, Wait
	}
	if count < 1 {
		count = 1
	}
	if r.rng == nil || r.rng.Intn(11) > 9 {
		r.active = false
		return cursor, Stop
	}
	r.due = now + r.period
	return (cursor + 1) % count, Continue
}
