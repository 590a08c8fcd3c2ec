//go:build !tinygo && cgo

package hal

import (
	"time"

	"points/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow starts a desktop window that shows the emulated LCD and maps keys to buttons.
// It blocks until the window closes.
func RunWindow(newApp func(HAL) func() error, opts HostOptions, interval time.Duration) error {
	h := newHostHAL(opts)
	step := newApp(h)

	if interval <= 0 {
		interval = 15 * time.Millisecond
	}
	tps := int(time.Second / interval)
	if tps <= 0 {
		tps = 60
	}

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle("Points Counter (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*2, h.fb.height*2)
	ebiten.SetTPS(tps)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h     *hostHAL
	pix   []byte
	fbImg *ebiten.Image
	step  func() error
}

func (g *hostGame) Update() error {
	g.h.kbd.poll()
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	g.h.paint.paint()
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.fbImg == nil {
		g.pix = make([]byte, fb.width*fb.height*4)
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}
	fb.copyRGBA(g.pix)
	g.fbImg.WritePixels(g.pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
