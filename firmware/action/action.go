// Package action defines the externally injected actions and the inlet that carries them
// to the device loop.
package action

import (
	"errors"
	"fmt"
	"strings"

	"points/firmware/score"
)

// Kind tags an Action.
type Kind uint8

const (
	KindInvalid Kind = iota
	// KindAdjust adds Delta to points[Player][Column].
	KindAdjust
	// KindReset sets every total to Value and clears damage.
	KindReset
	// KindCreateRoster replaces the roster with Names[:Count].
	KindCreateRoster
)

func (k Kind) String() string {
	switch k {
	case KindAdjust:
		return "adjust"
	case KindReset:
		return "reset"
	case KindCreateRoster:
		return "createRoster"
	default:
		return "invalid"
	}
}

// ParseKind maps a wire name to a Kind.
func ParseKind(s string) Kind {
	switch strings.ToLower(s) {
	case "adjust":
		return KindAdjust
	case "reset":
		return KindReset
	case "createroster", "create":
		return KindCreateRoster
	default:
		return KindInvalid
	}
}

// Limits on injected values.
const (
	MaxDelta   = 999
	MaxNameLen = 12
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid action")

// Action is a validated request from the web or console inlet.
type Action struct {
	Kind   Kind
	Player uint8
	Column uint8
	Delta  int16
	Value  uint16
	Count  uint8
	Names  [score.MaxPlayers]string
}

// Adjust returns an adjust action.
func Adjust(player, column, delta int) Action {
	return Action{Kind: KindAdjust, Player: uint8(player), Column: uint8(column), Delta: int16(delta)}
}

// Reset returns a reset action.
func Reset(value int) Action {
	return Action{Kind: KindReset, Value: uint16(value)}
}

// CreateRoster returns a roster action for up to score.MaxPlayers names.
func CreateRoster(names ...string) Action {
	a := Action{Kind: KindCreateRoster}
	for i := 0; i < len(names) && i < score.MaxPlayers; i++ {
		a.Names[i] = names[i]
	}
	a.Count = uint8(min(len(names), score.MaxPlayers))
	return a
}

// Validate checks a against a roster of count players. count <= 0 skips the roster check.
func (a Action) Validate(count int) error {
	switch a.Kind {
	case KindAdjust:
		limit := score.MaxPlayers
		if count > 0 && count < limit {
			limit = count
		}
		if int(a.Player) >= limit {
			return fmt.Errorf("%w: player %d out of range", ErrInvalid, a.Player)
		}
		if int(a.Column) >= score.Columns {
			return fmt.Errorf("%w: column %d out of range", ErrInvalid, a.Column)
		}
		if a.Delta == 0 || a.Delta > MaxDelta || a.Delta < -MaxDelta {
			return fmt.Errorf("%w: delta %d", ErrInvalid, a.Delta)
		}
	case KindReset:
	case KindCreateRoster:
		if a.Count < 1 || int(a.Count) > score.MaxPlayers {
			return fmt.Errorf("%w: roster of %d players", ErrInvalid, a.Count)
		}
		for i := 0; i < int(a.Count); i++ {
			n := strings.TrimSpace(a.Names[i])
			if n == "" {
				return fmt.Errorf("%w: empty name for player %d", ErrInvalid, i+1)
			}
			if len(n) > MaxNameLen {
				return fmt.Errorf("%w: name %q too long", ErrInvalid, n)
			}
		}
	default:
		return fmt.Errorf("%w: kind %d", ErrInvalid, a.Kind)
	}
	return nil
}

// Apply performs a on m. Roster and reset actions report true so the caller can restart
// the starting player animation.
func (a Action) Apply(m *score.Model) (restart bool) {
	switch a.Kind {
	case KindAdjust:
		m.Adjust(int(a.Player), int(a.Column), int(a.Delta))
	case KindReset:
		m.Reset(a.Value)
		return true
	case KindCreateRoster:
		names := make([]string, 0, score.MaxPlayers)
		for i := 0; i < int(a.Count); i++ {
			names = append(names, strings.TrimSpace(a.Names[i]))
		}
		m.SetRoster(names, int(a.Count))
		return true
	}
	return false
}

func (a Action) String() string {
	switch a.Kind {
	case KindAdjust:
		return fmt.Sprintf("adjust p%d c%d %+d", a.Player+1, a.Column, a.Delta)
	case KindReset:
		return fmt.Sprintf("reset %d", a.Value)
	case KindCreateRoster:
		return fmt.Sprintf("createRoster %s", strings.Join(a.Names[:min(int(a.Count), score.MaxPlayers)], ","))
	default:
		return "invalid"
	}
}
