package action

import (
	"fmt"

	"points/firmware/score"

	"github.com/tidwall/gjson"
)

// ParseJSON decodes an action object such as
//
//	{"kind":"adjust","player":0,"column":0,"delta":1}
//	{"kind":"reset","value":20}
//	{"kind":"createRoster","names":["Alice","Bob"]}
//
// The result is not validated.
func ParseJSON(b []byte) (Action, error) {
	var a Action
	if !gjson.ValidBytes(b) {
		return a, fmt.Errorf("%w: malformed json", ErrInvalid)
	}
	doc := gjson.ParseBytes(b)
	if !doc.IsObject() {
		return a, fmt.Errorf("%w: expected an object", ErrInvalid)
	}

	kind := doc.Get("kind")
	if kind.Type != gjson.String {
		return a, fmt.Errorf("%w: missing kind", ErrInvalid)
	}
	a.Kind = ParseKind(kind.String())

	var err error
	switch a.Kind {
	case KindAdjust:
		var p, c, d int64
		if p, err = intField(doc, "player", 0, score.MaxPlayers-1, true); err != nil {
			return a, err
		}
		if c, err = intField(doc, "column", 0, score.Columns-1, false); err != nil {
			return a, err
		}
		if d, err = intField(doc, "delta", -MaxDelta, MaxDelta, true); err != nil {
			return a, err
		}
		a.Player, a.Column, a.Delta = uint8(p), uint8(c), int16(d)
	case KindReset:
		var v int64
		if v, err = intField(doc, "value", 0, score.MaxPoints, true); err != nil {
			return a, err
		}
		a.Value = uint16(v)
	case KindCreateRoster:
		names := doc.Get("names")
		if !names.IsArray() {
			return a, fmt.Errorf("%w: names must be an array", ErrInvalid)
		}
		list := names.Array()
		if len(list) > score.MaxPlayers {
			return a, fmt.Errorf("%w: %d names", ErrInvalid, len(list))
		}
		for i, n := range list {
			if n.Type != gjson.String {
				return a, fmt.Errorf("%w: name %d is not a string", ErrInvalid, i+1)
			}
			a.Names[i] = n.String()
		}
		a.Count = uint8(len(list))
	default:
		return a, fmt.Errorf("%w: unknown kind %q", ErrInvalid, kind.String())
	}
	return a, nil
}

func intField(doc gjson.Result, name string, lo, hi int64, required bool) (int64, error) {
	v := doc.Get(name)
	if !v.Exists() {
		if required {
			return 0, fmt.Errorf("%w: missing %s", ErrInvalid, name)
		}
		return 0, nil
	}
	if v.Type != gjson.Number || float64(v.Int()) != v.Num {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalid, name)
	}
	n := v.Int()
	if n < lo || n > hi {
		return 0, fmt.Errorf("%w: %s %d out of range", ErrInvalid, name, n)
	}
	return n, nil
}
