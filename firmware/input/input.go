// Package input turns raw button levels into short and long presses.
package input

// Button identifies one of the three device buttons.
type Button uint8

const (
	Minus Button = iota
	Plus
	Main
	Buttons
)

func (b Button) String() string {
	switch b {
	case Minus:
		return "MINUS"
	case Plus:
		return "PLUS"
	case Main:
		return "MAIN"
	default:
		return "?"
	}
}

// Event is the classification of one button for one poll.
type Event uint8

const (
	Idle Event = iota
	Short
	Long
)

func (e Event) String() string {
	switch e {
	case Idle:
		return "idle"
	case Short:
		return "short"
	case Long:
		return "long"
	default:
		return "?"
	}
}

// Default thresholds, in milliseconds.
const (
	DefaultLongPress = 350
	DefaultDebounce  = 250
)

type buttonState struct {
	pressed    bool
	pressStart uint64
	longFired  bool
	chatter    bool
	hasEvent   bool
	lastEvent  uint64
}

// Classifier debounces the buttons and classifies presses.
//
// A long press fires once, when the hold crosses the threshold. A short press fires on
// release, provided no long press fired during the hold and the debounce window since the
// previous event of that button has elapsed. A press that starts inside the window is
// chatter from the press that produced the event and yields nothing until released.
type Classifier struct {
	longPress uint64
	debounce  uint64
	btn       [Buttons]buttonState
}

// NewClassifier returns a classifier with the given thresholds in milliseconds. Zero
// selects the default.
func NewClassifier(longPress, debounce uint64) *Classifier {
	if longPress == 0 {
		longPress = DefaultLongPress
	}
	if debounce == 0 {
		debounce = DefaultDebounce
	}
	return &Classifier{longPress: longPress, debounce: debounce}
}

// Poll classifies one sample. levels holds the electrical level per button; buttons are
// active-low, so false means held.
func (c *Classifier) Poll(levels [Buttons]bool, now uint64) [Buttons]Event {
	var out [Buttons]Event
	for i := range c.btn {
		out[i] = c.poll(&c.btn[i], !levels[i], now)
	}
	return out
}

func (c *Classifier) poll(st *buttonState, pressed bool, now uint64) Event {
	switch {
	case pressed && !st.pressed:
		st.pressed = true
		st.pressStart = now
		st.longFired = false
		st.chatter = st.hasEvent && now-st.lastEvent < c.debounce
	case pressed && st.pressed:
		if !st.chatter && !st.longFired && now-st.pressStart >= c.longPress {
			st.longFired = true
			st.hasEvent = true
			st.lastEvent = now
			return Long
		}
	case !pressed && st.pressed:
		st.pressed = false
		if st.longFired {
			// Release chatter after a long hold falls in the window too.
			st.lastEvent = now
			return Idle
		}
		if st.chatter {
			return Idle
		}
		if st.hasEvent && now-st.lastEvent < c.debounce {
			return Idle
		}
		st.hasEvent = true
		st.lastEvent = now
		return Short
	}
	return Idle
}
