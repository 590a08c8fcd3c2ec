//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	// Interval between device steps; zero uses 15ms.
	Interval time.Duration
	// Ticks stops the runner after that many steps; zero runs until ctx is done.
	Ticks uint64
	// EchoLCD logs the panel contents whenever they change.
	EchoLCD bool
}

// RunHeadless drives the device loop without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, opts HostOptions, cfg HeadlessConfig) error {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if cfg.Interval == 0 {
		cfg.Interval = 15 * time.Millisecond
	}
	if cfg.Interval < 0 {
		return fmt.Errorf("invalid headless interval: %s", cfg.Interval)
	}

	h := newHostHAL(opts)
	step := newApp(h)

	t := opts.Clock.NewTicker(cfg.Interval)
	defer t.Stop()

	var tick uint64
	var seq uint32
	echoed := false
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.Chan():
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			if cfg.EchoLCD {
				if s := h.lcd.Seq(); !echoed || s != seq {
					seq, echoed = s, true
					h.echoLCD()
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}

func (h *hostHAL) echoLCD() {
	_, rows := h.lcd.Size()
	for r := 0; r < int(rows); r++ {
		h.logger.log.Info().Int("row", r).Msg("|" + h.lcd.Line(r) + "|")
	}
}
