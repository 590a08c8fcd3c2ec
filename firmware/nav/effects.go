package nav

// EffectKind tags an Effect.
type EffectKind uint8

const (
	EffectNone EffectKind = iota
	// EffectAdjust adds Delta to points[Player][Column].
	EffectAdjust
	// EffectReset sets every total to Value.
	EffectReset
	EffectRollDie
	EffectSave
	// EffectLoad restores the saved game; on failure the caller goes back to Utils.
	EffectLoad
	// EffectClockSelect hands the clock to Player (clock.None stops it).
	EffectClockSelect
	EffectClockPause
	EffectClockReset
	// EffectRandomize starts the starting player animation.
	EffectRandomize
)

func (k EffectKind) String() string {
	switch k {
	case EffectNone:
		return "none"
	case EffectAdjust:
		return "adjust"
	case EffectReset:
		return "reset"
	case EffectRollDie:
		return "roll"
	case EffectSave:
		return "save"
	case EffectLoad:
		return "load"
	case EffectClockSelect:
		return "clock-select"
	case EffectClockPause:
		return "clock-pause"
	case EffectClockReset:
		return "clock-reset"
	case EffectRandomize:
		return "randomize"
	default:
		return "?"
	}
}

// Effect is one mutation requested by a transition.
type Effect struct {
	Kind   EffectKind
	Player uint8
	Column uint8
	Delta  int16
	Value  uint16
}

const maxEffects = 4

// Effects is a fixed-capacity effect list.
type Effects struct {
	n    uint8
	list [maxEffects]Effect
}

func (fx *Effects) push(e Effect) {
	if int(fx.n) >= maxEffects {
		return
	}
	fx.list[fx.n] = e
	fx.n++
}

func (fx *Effects) Len() int { return int(fx.n) }

func (fx *Effects) At(i int) Effect {
	if i < 0 || i >= int(fx.n) {
		return Effect{}
	}
	return fx.list[i]
}
