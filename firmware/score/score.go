// Package score holds the player roster and the points matrix.
package score

import (
	"fmt"

	"points/firmware/glyph"
)

const (
	// MaxPlayers is the number of roster slots.
	MaxPlayers = 4
	// Columns is the number of points columns per player: the total plus one per opponent.
	Columns = 4
	// MaxPoints is the largest value a cell can hold.
	MaxPoints = 0xFFFF
	// NameLen is the stored name length.
	NameLen = glyph.NameLen
)

// Name is a player name as LCD cells.
type Name [glyph.NameLen]byte

// String returns the name with trailing padding removed.
func (n Name) String() string {
	end := len(n)
	for end > 0 && n[end-1] == ' ' {
		end--
	}
	return glyph.Printable(n[:end])
}

// BlankName is shown for slots outside the active roster.
var BlankName = Name{' ', ' ', ' ', ' ', ' ', ' '}

// Model is the roster and points matrix.
//
// Column 0 of a row is the player's total. Columns 1..3 are points the player attributed
// to the opponent at that offset. The two are edited independently.
type Model struct {
	names  [MaxPlayers]Name
	count  uint8
	points [MaxPlayers][Columns]uint16
}

// New returns a model with the given roster and every total set to start.
func New(names []string, start uint16) *Model {
	m := &Model{}
	m.SetRoster(names, len(names))
	m.Reset(start)
	return m
}

// Reset sets every total to start and zeroes the damage columns.
func (m *Model) Reset(start uint16) {
	for p := range m.points {
		m.points[p][0] = start
		for c := 1; c < Columns; c++ {
			m.points[p][c] = 0
		}
	}
}

// Adjust adds delta to a cell, clamped to [0, MaxPoints]. Out-of-range cells are ignored.
func (m *Model) Adjust(p, c int, delta int) {
	if p < 0 || p >= MaxPlayers || c < 0 || c >= Columns {
		return
	}
	v := int(m.points[p][c]) + delta
	if v < 0 {
		v = 0
	}
	if v > MaxPoints {
		v = MaxPoints
	}
	m.points[p][c] = uint16(v)
}

// SetRoster replaces the names and player count. count is clamped to [1, MaxPlayers];
// slots without a supplied name get a default one.
func (m *Model) SetRoster(names []string, count int) {
	if count < 1 {
		count = 1
	}
	if count > MaxPlayers {
		count = MaxPlayers
	}
	m.count = uint8(count)
	for i := range m.names {
		switch {
		case i < len(names) && names[i] != "":
			m.names[i] = glyph.FoldName(names[i])
		default:
			m.names[i] = glyph.FoldName(fmt.Sprintf("P%d", i+1))
		}
	}
}

// SetName overwrites one slot without touching the count.
func (m *Model) SetName(i int, n Name) {
	if i < 0 || i >= MaxPlayers {
		return
	}
	m.names[i] = n
}

// SetCount clamps and stores the number of active players.
func (m *Model) SetCount(count int) {
	if count < 1 {
		count = 1
	}
	if count > MaxPlayers {
		count = MaxPlayers
	}
	m.count = uint8(count)
}

// SetPoints overwrites one cell.
func (m *Model) SetPoints(p, c int, v uint16) {
	if p < 0 || p >= MaxPlayers || c < 0 || c >= Columns {
		return
	}
	m.points[p][c] = v
}

// Count is the number of active players.
func (m *Model) Count() int {
	if m.count == 0 {
		return 1
	}
	return int(m.count)
}

// Name returns slot i, or BlankName if i is not a slot.
func (m *Model) Name(i int) Name {
	if i < 0 || i >= MaxPlayers {
		return BlankName
	}
	return m.names[i]
}

// Points returns one cell, or 0 for an out-of-range cell.
func (m *Model) Points(p, c int) uint16 {
	if p < 0 || p >= MaxPlayers || c < 0 || c >= Columns {
		return 0
	}
	return m.points[p][c]
}
