// Package glyph holds the LCD custom character set and folds player names onto the
// characters the panel can show.
package glyph

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CGRAM slots.
const (
	Degree     byte = 0
	ArrowLeft  byte = 1
	ArrowRight byte = 2
	Hourglass  byte = 3
	AGrave     byte = 4
	EGrave     byte = 5
)

// Count is the number of custom characters uploaded at init.
const Count = 6

// NameLen is the number of LCD cells reserved for a player name.
const NameLen = 6

// Bitmaps are 5x8 rows, bit4 is the leftmost pixel.
var Bitmaps = [Count][8]byte{
	Degree:     {0b11100, 0b10100, 0b11100, 0b00000, 0b00000, 0b00000, 0b00000, 0b00000},
	ArrowLeft:  {0b00000, 0b00100, 0b01000, 0b11111, 0b11111, 0b01000, 0b00100, 0b00000},
	ArrowRight: {0b00000, 0b00100, 0b00010, 0b11111, 0b11111, 0b00010, 0b00100, 0b00000},
	Hourglass:  {0b00000, 0b11111, 0b01110, 0b00100, 0b01110, 0b11111, 0b00000, 0b00000},
	AGrave:     {0b00010, 0b00001, 0b01110, 0b00001, 0b01111, 0b10001, 0b01111, 0b00000},
	EGrave:     {0b00010, 0b00001, 0b01110, 0b10001, 0b11111, 0b10000, 0b01110, 0b00000},
}

// Uploader is the slice of the LCD driver needed to install the glyphs.
type Uploader interface {
	CreateChar(slot uint8, bitmap [8]byte)
}

// Install uploads every custom character.
func Install(u Uploader) {
	for i := 0; i < Count; i++ {
		u.CreateChar(uint8(i), Bitmaps[i])
	}
}

// stripMarks removes combining marks left behind by NFD decomposition.
var stripMarks = runes.Remove(runes.In(unicode.Mn))

// FoldName maps s onto LCD cells: à and è use their custom characters, other accents
// are dropped, anything still outside printable ASCII becomes '?'. The result is
// truncated or space-padded to NameLen.
func FoldName(s string) [NameLen]byte {
	var out [NameLen]byte
	n := 0
	for len(s) > 0 && n < NameLen {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		out[n] = foldRune(r)
		n++
	}
	for ; n < NameLen; n++ {
		out[n] = ' '
	}
	return out
}

func foldRune(r rune) byte {
	switch r {
	case 'à':
		return AGrave
	case 'è':
		return EGrave
	}
	if r >= 0x20 && r < 0x7F {
		return byte(r)
	}
	if r < 0x80 {
		return '?'
	}
	base, _, err := transform.String(transform.Chain(norm.NFD, stripMarks, norm.NFC), string(r))
	if err != nil || len(base) != 1 || base[0] < 0x20 || base[0] >= 0x7F {
		return '?'
	}
	return base[0]
}

// Printable renders LCD cells back to text, mapping custom characters to the runes they
// stand for.
func Printable(cells []byte) string {
	buf := make([]rune, 0, len(cells))
	for _, c := range cells {
		switch c {
		case Degree:
			buf = append(buf, '°')
		case ArrowLeft:
			buf = append(buf, '<')
		case ArrowRight:
			buf = append(buf, '>')
		case Hourglass:
			buf = append(buf, '⌛')
		case AGrave:
			buf = append(buf, 'à')
		case EGrave:
			buf = append(buf, 'è')
		default:
			if c < 0x20 || c >= 0x7F {
				buf = append(buf, '?')
				continue
			}
			buf = append(buf, rune(c))
		}
	}
	return string(buf)
}
