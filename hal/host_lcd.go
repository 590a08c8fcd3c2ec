//go:build !tinygo

package hal

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// HD44780 cell geometry, in panel pixels.
const (
	lcdCellW   = 5
	lcdCellH   = 8
	lcdCellGap = 1
	lcdScale   = 3
	lcdBorder  = 4
)

var (
	lcdBacklitBG = color.RGBA{R: 0x4A, G: 0x7D, B: 0xE0, A: 0xFF}
	lcdDarkBG    = color.RGBA{R: 0x10, G: 0x18, B: 0x30, A: 0xFF}
	lcdCellBG    = color.RGBA{R: 0x55, G: 0x88, B: 0xEA, A: 0xFF}
	lcdInk       = color.RGBA{R: 0xF0, G: 0xF4, B: 0xFF, A: 0xFF}
)

// lcdPixelSize returns the framebuffer size needed for a cols x rows panel.
func lcdPixelSize(cols, rows uint8) (w, h int) {
	w = (int(cols)*(lcdCellW+lcdCellGap) + 2*lcdBorder) * lcdScale
	h = (int(rows)*(lcdCellH+lcdCellGap) + 2*lcdBorder) * lcdScale
	return w, h
}

// fbDisplay exposes the host framebuffer as a drivers.Displayer in panel pixels.
type fbDisplay struct {
	fb    *hostFramebuffer
	scale int16
}

var _ drivers.Displayer = fbDisplay{}

func (d fbDisplay) Size() (x, y int16) {
	if d.fb == nil || d.scale <= 0 {
		return 0, 0
	}
	return int16(d.fb.width) / d.scale, int16(d.fb.height) / d.scale
}

func (d fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil || d.scale <= 0 {
		return
	}
	x0 := int(x) * int(d.scale)
	y0 := int(y) * int(d.scale)
	d.fb.fillRect(x0, y0, int(d.scale), int(d.scale), c)
}

func (d fbDisplay) Display() error { return nil }

// cgramGlyph draws one 5x8 custom character bitmap.
type cgramGlyph struct {
	r   rune
	bmp [8]byte
}

func (g *cgramGlyph) Draw(display drivers.Displayer, x, y int16, c color.RGBA) {
	for row := 0; row < lcdCellH; row++ {
		b := g.bmp[row]
		// Bits are stored as 0b000xxxxx (bit4 = leftmost pixel).
		for col := 0; col < lcdCellW; col++ {
			if b&(0x10>>col) == 0 {
				continue
			}
			display.SetPixel(x+int16(col), y-int16(7-row), c)
		}
	}
}

func (g *cgramGlyph) Info() tinyfont.GlyphInfo {
	return tinyfont.GlyphInfo{
		Rune:     g.r,
		Width:    lcdCellW,
		Height:   lcdCellH,
		XAdvance: lcdCellW + lcdCellGap,
		XOffset:  0,
		YOffset:  -7,
	}
}

// lcdFont resolves CGRAM slots to their uploaded bitmaps and everything else to a
// small bitmap font standing in for the controller's character ROM.
//
// Concurrent access is not safe due to internal glyph reuse.
type lcdFont struct {
	cgram *[lcdCGRAMLen][8]byte
	rom   tinyfont.Fonter
	g     cgramGlyph
}

func newLCDFont(cgram *[lcdCGRAMLen][8]byte) *lcdFont {
	return &lcdFont{cgram: cgram, rom: &proggy.TinySZ8pt7b}
}

func (f *lcdFont) GetYAdvance() uint8 { return lcdCellH + lcdCellGap }

func (f *lcdFont) GetGlyph(r rune) tinyfont.Glypher {
	if r >= 0 && r < lcdCGRAMLen && f.cgram != nil {
		f.g = cgramGlyph{r: r, bmp: f.cgram[r]}
		return &f.g
	}
	return f.rom.GetGlyph(r)
}

// lcdPainter renders an lcdGrid into a host framebuffer.
type lcdPainter struct {
	grid  *lcdGrid
	fb    *hostFramebuffer
	cells [lcdMaxRows][lcdMaxCols]byte
	cgram [lcdCGRAMLen][8]byte
	font  *lcdFont
	seq   uint32
	drawn bool
}

func newLCDPainter(grid *lcdGrid, fb *hostFramebuffer) *lcdPainter {
	p := &lcdPainter{grid: grid, fb: fb}
	p.font = newLCDFont(&p.cgram)
	return p
}

// paint redraws the panel if the grid changed since the last call.
func (p *lcdPainter) paint() bool {
	if p.grid == nil || p.fb == nil {
		return false
	}
	seq, backlight := p.grid.snapshot(&p.cells, &p.cgram)
	if p.drawn && seq == p.seq {
		return false
	}
	p.seq = seq
	p.drawn = true

	bg := lcdDarkBG
	if backlight {
		bg = lcdBacklitBG
	}
	p.fb.clear(bg)

	d := fbDisplay{fb: p.fb, scale: lcdScale}
	cols, rows := p.grid.Size()
	for r := 0; r < int(rows); r++ {
		for c := 0; c < int(cols); c++ {
			x := int16(lcdBorder + c*(lcdCellW+lcdCellGap))
			y := int16(lcdBorder + r*(lcdCellH+lcdCellGap))
			if backlight {
				p.fillCell(d, x, y)
			}
			ch := p.cells[r][c]
			if ch == ' ' {
				continue
			}
			tinyfont.DrawChar(d, p.font, x, y+7, rune(ch), lcdInk)
		}
	}
	return true
}

func (p *lcdPainter) fillCell(d fbDisplay, x, y int16) {
	for yy := int16(0); yy < lcdCellH; yy++ {
		for xx := int16(0); xx < lcdCellW; xx++ {
			d.SetPixel(x+xx, y+yy, lcdCellBG)
		}
	}
}
