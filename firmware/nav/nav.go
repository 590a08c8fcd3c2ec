// Package nav is the device's navigation state machine.
//
// Step is a pure transition: it takes the current State and one button event and returns
// the next State plus the Effects to apply to the score model and the clock.
package nav

import (
	"points/firmware/clock"
	"points/firmware/input"
	"points/firmware/score"
)

// Mode is the active screen.
type Mode uint8

const (
	ModeNone Mode = iota
	ModeMain
	ModeDetail
	ModeUtils
	ModeClock
	modeCount
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeMain:
		return "main"
	case ModeDetail:
		return "detail"
	case ModeUtils:
		return "utils"
	case ModeClock:
		return "clock"
	default:
		return "?"
	}
}

// Utils menu tiles, in cursor order.
const (
	UtilDieRoll = iota
	UtilReset20
	UtilReset40
	UtilSave
	UtilLoad
	UtilClock
	UtilBack
	UtilCount
)

// Detail cursor range.
const (
	detailFirst = 1
	detailLast  = score.Columns - 1
)

// Event is one classified button press.
type Event struct {
	Button input.Button
	Press  input.Event
}

// State is the tagged navigation state. The main cursor doubles as the player shown in
// Detail mode.
type State struct {
	Mode        Mode
	Cursor      [modeCount]uint8
	Randomizing bool
}

// Start is the boot state.
func Start() State { return State{Mode: ModeNone} }

// CursorOf returns the cursor of mode m.
func (s State) CursorOf(m Mode) int {
	if m >= modeCount {
		return 0
	}
	return int(s.Cursor[m])
}

// Main returns the main cursor: a player index, or count for the Utils tile.
func (s State) Main() int { return int(s.Cursor[ModeMain]) }

// Enter switches to m and resets that mode's cursor to its first position.
func (s State) Enter(m Mode) State {
	if m >= modeCount {
		return s
	}
	s.Mode = m
	switch m {
	case ModeDetail:
		s.Cursor[m] = detailFirst
	case ModeMain:
	default:
		s.Cursor[m] = 0
	}
	return s
}

// Clamp brings the main cursor back into [0, count] after the roster changed.
func (s State) Clamp(count int) State {
	if count < 1 {
		count = 1
	}
	if int(s.Cursor[ModeMain]) > count {
		s.Cursor[ModeMain] = uint8(count)
	}
	return s
}

// Step applies one event. count is the number of active players.
func Step(s State, ev Event, count int) (State, Effects) {
	var fx Effects
	if ev.Press == input.Idle {
		return s, fx
	}
	if count < 1 {
		count = 1
	}
	if count > score.MaxPlayers {
		count = score.MaxPlayers
	}
	switch s.Mode {
	case ModeMain:
		if s.Randomizing {
			return s, fx
		}
		return stepMain(s, ev, count, &fx), fx
	case ModeDetail:
		return stepDetail(s, ev, &fx), fx
	case ModeUtils:
		return stepUtils(s, ev, &fx), fx
	case ModeClock:
		return stepClock(s, ev, &fx), fx
	}
	return s, fx
}

func stepMain(s State, ev Event, count int, fx *Effects) State {
	cur := int(s.Cursor[ModeMain])
	if cur > count {
		cur = count
	}
	switch ev.Button {
	case input.Plus, input.Minus:
		if ev.Press == input.Short {
			s.Cursor[ModeMain] = uint8(wrap(cur, step(ev.Button), count+1))
			return s
		}
		if ev.Button == input.Minus && cur < count {
			fx.push(Effect{Kind: EffectAdjust, Player: uint8(cur), Column: 0, Delta: -1})
		}
		return s
	case input.Main:
		if cur == count {
			return s.Enter(ModeUtils)
		}
		if ev.Press == input.Short {
			fx.push(Effect{Kind: EffectAdjust, Player: uint8(cur), Column: 0, Delta: 1})
			return s
		}
		s.Cursor[ModeMain] = uint8(cur)
		return s.Enter(ModeDetail)
	}
	return s
}

func stepDetail(s State, ev Event, fx *Effects) State {
	cur := int(s.Cursor[ModeDetail])
	if cur < detailFirst || cur > detailLast {
		cur = detailFirst
	}
	main := s.Cursor[ModeMain]
	switch ev.Button {
	case input.Plus, input.Minus:
		if ev.Press == input.Short {
			span := detailLast - detailFirst + 1
			s.Cursor[ModeDetail] = uint8(detailFirst + wrap(cur-detailFirst, step(ev.Button), span))
			return s
		}
		if ev.Button == input.Minus {
			fx.push(Effect{Kind: EffectAdjust, Player: main, Column: uint8(cur), Delta: -1})
		}
		return s
	case input.Main:
		if ev.Press == input.Long {
			return s.Enter(ModeMain)
		}
		fx.push(Effect{Kind: EffectAdjust, Player: main, Column: uint8(cur), Delta: 1})
	}
	return s
}

func stepUtils(s State, ev Event, fx *Effects) State {
	cur := int(s.Cursor[ModeUtils])
	if cur >= UtilCount {
		cur = 0
	}
	switch ev.Button {
	case input.Plus, input.Minus:
		if ev.Press == input.Short {
			s.Cursor[ModeUtils] = uint8(wrap(cur, step(ev.Button), UtilCount))
		}
		return s
	case input.Main:
		return runUtil(s, cur, fx)
	}
	return s
}

func runUtil(s State, tile int, fx *Effects) State {
	switch tile {
	case UtilDieRoll:
		fx.push(Effect{Kind: EffectRollDie})
		return s
	case UtilReset20, UtilReset40:
		v := uint16(20)
		if tile == UtilReset40 {
			v = 40
		}
		fx.push(Effect{Kind: EffectReset, Value: v})
		return s.randomize(fx)
	case UtilSave:
		fx.push(Effect{Kind: EffectSave})
		return s
	case UtilLoad:
		fx.push(Effect{Kind: EffectLoad})
		return s.Enter(ModeMain)
	case UtilClock:
		fx.push(Effect{Kind: EffectClockSelect, Player: clock.None})
		return s.Enter(ModeClock)
	case UtilBack:
		return s.Enter(ModeMain)
	}
	return s
}

func stepClock(s State, ev Event, fx *Effects) State {
	switch ev.Button {
	case input.Plus, input.Minus:
		if ev.Press == input.Long {
			fx.push(Effect{Kind: EffectClockReset})
			s.Cursor[ModeClock] = clock.None
			return s
		}
		p := uint8(clock.Player1)
		if ev.Button == input.Minus {
			p = clock.Player2
		}
		fx.push(Effect{Kind: EffectClockSelect, Player: p})
		s.Cursor[ModeClock] = p
	case input.Main:
		if ev.Press == input.Long {
			return s.Enter(ModeMain)
		}
		fx.push(Effect{Kind: EffectClockPause})
	}
	return s
}

// Randomize returns to Main and arms the starting player animation.
func (s State) Randomize(fx *Effects) State { return s.randomize(fx) }

func (s State) randomize(fx *Effects) State {
	s = s.Enter(ModeMain)
	s.Randomizing = true
	fx.push(Effect{Kind: EffectRandomize})
	return s
}

func step(b input.Button) int {
	if b == input.Minus {
		return -1
	}
	return 1
}

func wrap(v, d, n int) int {
	if n <= 0 {
		return 0
	}
	v = (v + d) % n
	if v < 0 {
		v += n
	}
	return v
}
