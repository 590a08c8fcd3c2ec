package hal

import "sync"

const (
	lcdMaxCols  = 40
	lcdMaxRows  = 4
	lcdCGRAMLen = 8
)

// lcdGrid emulates HD44780 DDRAM/CGRAM for targets without a physical panel.
type lcdGrid struct {
	mu        sync.Mutex
	cols      uint8
	rows      uint8
	cells     [lcdMaxRows][lcdMaxCols]byte
	cgram     [lcdCGRAMLen][8]byte
	col       uint8
	row       uint8
	backlight bool
	seq       uint32
}

func newLCDGrid(cols, rows uint8) *lcdGrid {
	if cols == 0 || cols > lcdMaxCols {
		cols = lcdMaxCols
	}
	if rows == 0 || rows > lcdMaxRows {
		rows = lcdMaxRows
	}
	g := &lcdGrid{cols: cols, rows: rows}
	for r := range g.cells {
		for c := range g.cells[r] {
			g.cells[r][c] = ' '
		}
	}
	return g
}

func (g *lcdGrid) Size() (cols, rows uint8) { return g.cols, g.rows }

func (g *lcdGrid) CreateChar(slot uint8, bitmap [8]byte) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cgram[slot%lcdCGRAMLen] = bitmap
	g.seq++
}

func (g *lcdGrid) SetCursor(col, row uint8) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.col = col
	g.row = row
}

// Print writes at the cursor and advances it. Characters past the visible row are dropped.
func (g *lcdGrid) Print(b []byte) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.row >= g.rows {
		return
	}
	changed := false
	for _, c := range b {
		if g.col >= g.cols {
			break
		}
		if g.cells[g.row][g.col] != c {
			g.cells[g.row][g.col] = c
			changed = true
		}
		g.col++
	}
	if changed {
		g.seq++
	}
}

func (g *lcdGrid) Backlight(on bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.backlight != on {
		g.backlight = on
		g.seq++
	}
}

// Seq changes whenever visible content changes.
func (g *lcdGrid) Seq() uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seq
}

func (g *lcdGrid) snapshot(cells *[lcdMaxRows][lcdMaxCols]byte, cgram *[lcdCGRAMLen][8]byte) (seq uint32, backlight bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if cells != nil {
		*cells = g.cells
	}
	if cgram != nil {
		*cgram = g.cgram
	}
	return g.seq, g.backlight
}

// Line returns row r as text, with CGRAM slots shown as printable stand-ins.
func (g *lcdGrid) Line(r int) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if r < 0 || r >= int(g.rows) {
		return ""
	}
	var buf [lcdMaxCols]byte
	n := copy(buf[:], g.cells[r][:g.cols])
	for i := 0; i < n; i++ {
		if buf[i] < lcdCGRAMLen {
			buf[i] = cgramStandIn[buf[i]]
		}
	}
	return string(buf[:n])
}

// Printable stand-ins for the custom character slots, in slot order.
var cgramStandIn = [lcdCGRAMLen]byte{'o', '<', '>', '@', 'a', 'e', '?', '?'}
