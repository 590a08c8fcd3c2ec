//go:build !tinygo

package hal

import (
	"image/color"
	"sync"
)

// pixel565 is one RGB565 pixel, the format of the LCD emulator's backing store.
type pixel565 uint16

func pack565(c color.RGBA) pixel565 {
	return pixel565(uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3))
}

func (p pixel565) rgba() color.RGBA {
	r := (uint16(p) >> 11) & 0x1F
	g := (uint16(p) >> 5) & 0x3F
	b := uint16(p) & 0x1F
	return color.RGBA{R: uint8(r * 255 / 31), G: uint8(g * 255 / 63), B: uint8(b * 255 / 31), A: 0xFF}
}

// hostFramebuffer holds the rendered LCD panel for the window.
type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	pix    []pixel565
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	return &hostFramebuffer{
		width:  width,
		height: height,
		pix:    make([]pixel565, width*height),
	}
}

func (f *hostFramebuffer) clear(c color.RGBA) {
	p := pack565(c)
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.pix {
		f.pix[i] = p
	}
}

func (f *hostFramebuffer) fillRect(x, y, w, h int, c color.RGBA) {
	p := pack565(c)
	f.mu.Lock()
	defer f.mu.Unlock()

	x0, y0 := clampInt(x, 0, f.width), clampInt(y, 0, f.height)
	x1, y1 := clampInt(x+w, 0, f.width), clampInt(y+h, 0, f.height)
	for py := y0; py < y1; py++ {
		row := f.pix[py*f.width : (py+1)*f.width]
		for px := x0; px < x1; px++ {
			row[px] = p
		}
	}
}

// copyRGBA expands the panel into dst as 8-bit RGBA, as ebiten's WritePixels expects.
func (f *hostFramebuffer) copyRGBA(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.pix {
		j := i * 4
		if j+3 >= len(dst) {
			return
		}
		c := p.rgba()
		dst[j], dst[j+1], dst[j+2], dst[j+3] = c.R, c.G, c.B, c.A
	}
}

// at returns the pixel at (x, y) for tests.
func (f *hostFramebuffer) at(x, y int) color.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return color.RGBA{}
	}
	return f.pix[y*f.width+x].rgba()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
