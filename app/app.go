package app

import (
	"time"

	"points/hal"
	"points/kernel"
)

// New wires a device with the default config and returns its step function.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, DefaultConfig(), nil)
}

// NewWithConfig wires a device posting and publishing through sys (nil creates one) and
// returns a step function for host runners.
func NewWithConfig(h hal.HAL, cfg Config, sys *kernel.System) func() error {
	d := NewDevice(h, cfg, sys)
	t := h.Time()
	return func() error { return d.Step(t.Millis()) }
}

// Run starts the device and polls forever (TinyGo/native entrypoint).
func Run(h hal.HAL) {
	RunWithConfig(h, DefaultConfig())
}

func RunWithConfig(h hal.HAL, cfg Config) {
	d := NewDevice(h, cfg, nil)
	t := h.Time()
	for {
		start := t.Millis()
		_ = d.Step(start)
		spent := time.Duration(t.Millis()-start) * time.Millisecond
		if spent < d.cfg.LoopInterval {
			time.Sleep(d.cfg.LoopInterval - spent)
		}
	}
}
