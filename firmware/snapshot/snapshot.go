// Package snapshot is the device state published once per tick for readers outside the
// device loop.
package snapshot

import (
	"encoding/binary"
	"errors"

	"points/firmware/clock"
	"points/firmware/nav"
	"points/firmware/render"
	"points/firmware/score"
	"points/kernel"
)

// Snapshot is a copy of everything the web page and console show.
type Snapshot struct {
	Mode        nav.Mode
	Cursor      uint8
	Randomizing bool
	Count       uint8
	Names       [score.MaxPlayers]score.Name
	Points      [score.MaxPlayers][score.Columns]uint16
	Clock       [2]uint64
	Running     uint8
	Paused      bool
	Frame       render.Frame
}

// Size is the encoded size of a Snapshot.
const Size = 4 + score.MaxPlayers*score.NameLen + score.MaxPlayers*score.Columns*2 + 2*8 + 2 + render.Rows*render.Cols

var errShort = errors.New("snapshot: short buffer")

// Capture copies the live state.
func Capture(s nav.State, m *score.Model, c *clock.Engine, f *render.Frame) Snapshot {
	out := Snapshot{
		Mode:        s.Mode,
		Cursor:      uint8(s.CursorOf(s.Mode)),
		Randomizing: s.Randomizing,
		Count:       uint8(m.Count()),
		Clock:       [2]uint64{c.Elapsed(clock.Player1), c.Elapsed(clock.Player2)},
		Running:     uint8(c.Running()),
		Paused:      c.Paused(),
	}
	if s.Mode == nav.ModeDetail {
		out.Cursor = uint8(s.Main())
	}
	for p := 0; p < score.MaxPlayers; p++ {
		out.Names[p] = m.Name(p)
		for col := 0; col < score.Columns; col++ {
			out.Points[p][col] = m.Points(p, col)
		}
	}
	if f != nil {
		out.Frame = *f
	}
	return out
}

// MarshalTo encodes s into dst and returns the bytes written.
func (s *Snapshot) MarshalTo(dst []byte) (int, error) {
	if len(dst) < Size {
		return 0, errShort
	}
	dst[0] = byte(s.Mode)
	dst[1] = s.Cursor
	dst[2] = boolByte(s.Randomizing)
	dst[3] = s.Count
	off := 4
	for _, n := range s.Names {
		off += copy(dst[off:], n[:])
	}
	for _, row := range s.Points {
		for _, v := range row {
			binary.LittleEndian.PutUint16(dst[off:], v)
			off += 2
		}
	}
	for _, ms := range s.Clock {
		binary.LittleEndian.PutUint64(dst[off:], ms)
		off += 8
	}
	dst[off] = s.Running
	dst[off+1] = boolByte(s.Paused)
	off += 2
	for r := range s.Frame {
		off += copy(dst[off:], s.Frame[r][:])
	}
	return off, nil
}

// Unmarshal decodes a snapshot written by MarshalTo.
func (s *Snapshot) Unmarshal(b []byte) error {
	if len(b) < Size {
		return errShort
	}
	s.Mode = nav.Mode(b[0])
	s.Cursor = b[1]
	s.Randomizing = b[2] != 0
	s.Count = b[3]
	off := 4
	for i := range s.Names {
		off += copy(s.Names[i][:], b[off:])
	}
	for p := range s.Points {
		for c := range s.Points[p] {
			s.Points[p][c] = binary.LittleEndian.Uint16(b[off:])
			off += 2
		}
	}
	for i := range s.Clock {
		s.Clock[i] = binary.LittleEndian.Uint64(b[off:])
		off += 8
	}
	s.Running = b[off]
	s.Paused = b[off+1] != 0
	off += 2
	for r := range s.Frame {
		off += copy(s.Frame[r][:], b[off:])
	}
	return nil
}

// Publish encodes s into buf. It reports false when s equals the last published snapshot.
func Publish(buf *kernel.SharedBuffer, s *Snapshot, last *[Size]byte) bool {
	var enc [Size]byte
	if _, err := s.MarshalTo(enc[:]); err != nil {
		return false
	}
	if buf.Seq() != 0 && enc == *last {
		return false
	}
	*last = enc
	buf.Write(enc[:])
	return true
}

// Read returns the latest published snapshot and its sequence number. ok is false until
// the first publish.
func Read(buf *kernel.SharedBuffer) (s Snapshot, seq uint32, ok bool) {
	var raw [Size]byte
	seq, n := buf.Read(raw[:])
	if seq == 0 || n < Size {
		return s, seq, false
	}
	if err := s.Unmarshal(raw[:n]); err != nil {
		return s, seq, false
	}
	return s, seq, true
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
