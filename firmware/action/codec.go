package action

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"points/firmware/score"
)

// Binary layout carried in a kernel message:
//
//	kind, player, column, count, delta (int16 LE), value (uint16 LE),
//	then per name a length byte and up to MaxNameLen bytes.
const (
	headerSize = 8
	nameSlot   = 1 + MaxNameLen
	// EncodedSize is the size of an encoded action.
	EncodedSize = headerSize + score.MaxPlayers*nameSlot
)

// MarshalTo encodes a into dst and returns the bytes written.
func (a Action) MarshalTo(dst []byte) (int, error) {
	if len(dst) < EncodedSize {
		return 0, fmt.Errorf("action encode: buffer of %d bytes, need %d", len(dst), EncodedSize)
	}
	dst[0] = byte(a.Kind)
	dst[1] = a.Player
	dst[2] = a.Column
	dst[3] = a.Count
	binary.LittleEndian.PutUint16(dst[4:6], uint16(a.Delta))
	binary.LittleEndian.PutUint16(dst[6:8], a.Value)
	for i, name := range a.Names {
		off := headerSize + i*nameSlot
		name = truncateRunes(name, MaxNameLen)
		dst[off] = byte(len(name))
		n := copy(dst[off+1:off+nameSlot], name)
		for j := off + 1 + n; j < off+nameSlot; j++ {
			dst[j] = 0
		}
	}
	return EncodedSize, nil
}

// Unmarshal decodes an action written by MarshalTo.
func Unmarshal(b []byte) (Action, error) {
	var a Action
	if len(b) < EncodedSize {
		return a, fmt.Errorf("%w: %d byte message", ErrInvalid, len(b))
	}
	a.Kind = Kind(b[0])
	a.Player = b[1]
	a.Column = b[2]
	a.Count = b[3]
	a.Delta = int16(binary.LittleEndian.Uint16(b[4:6]))
	a.Value = binary.LittleEndian.Uint16(b[6:8])
	for i := range a.Names {
		off := headerSize + i*nameSlot
		n := int(b[off])
		if n > MaxNameLen {
			return a, fmt.Errorf("%w: name length %d", ErrInvalid, n)
		}
		a.Names[i] = string(b[off+1 : off+1+n])
	}
	return a, nil
}

// truncateRunes cuts s to at most n bytes without splitting a rune.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
