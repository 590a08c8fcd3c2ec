// Package render formats the device screens into fixed 20x4 frames.
package render

import "points/firmware/glyph"

const (
	Cols = 20
	Rows = 4
)

// Frame is one screen of LCD cells.
type Frame [Rows][Cols]byte

// Blank returns a frame of spaces.
func Blank() Frame {
	var f Frame
	f.clear()
	return f
}

func (f *Frame) clear() {
	for r := range f {
		for c := range f[r] {
			f[r][c] = ' '
		}
	}
}

// Row returns row r's cells, or nil when r is out of range.
func (f *Frame) Row(r int) []byte {
	if r < 0 || r >= Rows {
		return nil
	}
	return f[r][:]
}

// Line returns row r as text with custom characters mapped to printable runes.
func (f *Frame) Line(r int) string {
	return glyph.Printable(f.Row(r))
}

// put writes s at (row, col), dropping whatever falls outside the frame.
func (f *Frame) put(row, col int, s string) {
	if row < 0 || row >= Rows {
		return
	}
	for i := 0; i < len(s); i++ {
		c := col + i
		if c < 0 {
			continue
		}
		if c >= Cols {
			return
		}
		f[row][c] = s[i]
	}
}

func (f *Frame) putBytes(row, col int, b []byte) {
	if row < 0 || row >= Rows {
		return
	}
	for i, ch := range b {
		c := col + i
		if c < 0 {
			continue
		}
		if c >= Cols {
			return
		}
		f[row][c] = ch
	}
}

// putUint writes v right-aligned in width cells, zero-padded when zero is set.
// Values wider than width extend to the right.
func (f *Frame) putUint(row, col, width int, v uint64, zero bool) {
	var digits [20]byte
	n := 0
	for {
		digits[len(digits)-1-n] = byte('0' + v%10)
		n++
		v /= 10
		if v == 0 {
			break
		}
	}
	pad := byte(' ')
	if zero {
		pad = '0'
	}
	for i := n; i < width; i++ {
		f.set(row, col, pad)
		col++
	}
	f.putBytes(row, col, digits[len(digits)-n:])
}

func (f *Frame) set(row, col int, b byte) {
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return
	}
	f[row][col] = b
}

// mark is one selection glyph placed at a fixed cell.
type mark struct {
	row, col uint8
	glyph    byte
}

// overlay draws m if it lies inside the frame.
func (f *Frame) overlay(m mark) {
	if int(m.row) >= Rows || int(m.col) >= Cols {
		return
	}
	f[m.row][m.col] = m.glyph
}
