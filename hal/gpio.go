package hal

import (
	"fmt"
	"strings"
	"sync"
)

// GPIOMode selects whether a pin is an input or output.
type GPIOMode uint8

const (
	GPIOModeInput GPIOMode = iota
	GPIOModeOutput
)

// GPIOPull selects the pull resistor configuration.
type GPIOPull uint8

const (
	GPIOPullNone GPIOPull = iota
	GPIOPullUp
	GPIOPullDown
)

// GPIOCaps declares what a pin supports.
type GPIOCaps uint8

const (
	GPIOCapInput GPIOCaps = 1 << iota
	GPIOCapOutput
	GPIOCapPullUp
	GPIOCapPullDown
)

// GPIO is the set of pins a board exposes. The buttons are found by name (PinMinus,
// PinPlus, PinMain).
type GPIO interface {
	PinCount() int
	Pin(id int) GPIOPin
}

// GPIOPin is a single digital IO pin.
type GPIOPin interface {
	Name() string
	Caps() GPIOCaps
	Configure(mode GPIOMode, pull GPIOPull) error
	Read() (level bool, err error)
	Write(level bool) error
}

// NewGPIO returns a GPIO exposing pins in order. Nil pins are skipped.
func NewGPIO(pins ...GPIOPin) GPIO {
	return newPinSet(pins)
}

// NewInputPin returns an input-only pin whose level is sampled from level on every Read.
func NewInputPin(name string, level func() bool) GPIOPin {
	return newLevelPin(name, level)
}

type pinSet []GPIOPin

func newPinSet(pins []GPIOPin) pinSet {
	out := make(pinSet, 0, len(pins))
	for _, p := range pins {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

func (s pinSet) PinCount() int { return len(s) }

func (s pinSet) Pin(id int) GPIOPin {
	if id < 0 || id >= len(s) {
		return nil
	}
	return s[id]
}

// checkConfig validates mode and pull against caps.
func checkConfig(name string, caps GPIOCaps, mode GPIOMode, pull GPIOPull) error {
	switch mode {
	case GPIOModeInput:
		if caps&GPIOCapInput == 0 {
			return fmt.Errorf("gpio: pin %s: input unsupported", name)
		}
	case GPIOModeOutput:
		if caps&GPIOCapOutput == 0 {
			return fmt.Errorf("gpio: pin %s: output unsupported", name)
		}
	default:
		return fmt.Errorf("gpio: pin %s: invalid mode", name)
	}
	switch pull {
	case GPIOPullNone:
	case GPIOPullUp:
		if caps&GPIOCapPullUp == 0 {
			return fmt.Errorf("gpio: pin %s: pull-up unsupported", name)
		}
	case GPIOPullDown:
		if caps&GPIOCapPullDown == 0 {
			return fmt.Errorf("gpio: pin %s: pull-down unsupported", name)
		}
	default:
		return fmt.Errorf("gpio: pin %s: invalid pull", name)
	}
	return nil
}

// buttonPin is a push button wired to ground: with the pull-up enabled it reads high
// until Press pulls it low.
type buttonPin struct {
	mu      sync.Mutex
	name    string
	pull    GPIOPull
	pressed bool
}

func newButtonPin(name string) *buttonPin {
	return &buttonPin{name: name}
}

func (p *buttonPin) Name() string   { return p.name }
func (p *buttonPin) Caps() GPIOCaps { return GPIOCapInput | GPIOCapPullUp }

func (p *buttonPin) Configure(mode GPIOMode, pull GPIOPull) error {
	if err := checkConfig(p.name, p.Caps(), mode, pull); err != nil {
		return err
	}
	p.mu.Lock()
	p.pull = pull
	p.mu.Unlock()
	return nil
}

// Press holds the button down until Release.
func (p *buttonPin) Press() {
	p.mu.Lock()
	p.pressed = true
	p.mu.Unlock()
}

func (p *buttonPin) Release() {
	p.mu.Lock()
	p.pressed = false
	p.mu.Unlock()
}

// Read returns false while pressed. A floating pin (no pull-up) reads low.
func (p *buttonPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pull == GPIOPullUp && !p.pressed, nil
}

func (p *buttonPin) Write(bool) error {
	return fmt.Errorf("gpio: pin %s: output unsupported", p.name)
}

// levelPin is an input pin whose level comes from an external source, such as a host key
// standing in for a push button.
type levelPin struct {
	name  string
	level func() bool
}

func newLevelPin(name string, level func() bool) GPIOPin {
	if strings.TrimSpace(name) == "" || level == nil {
		return nil
	}
	return &levelPin{name: name, level: level}
}

func (p *levelPin) Name() string   { return p.name }
func (p *levelPin) Caps() GPIOCaps { return GPIOCapInput | GPIOCapPullUp }

func (p *levelPin) Configure(mode GPIOMode, pull GPIOPull) error {
	return checkConfig(p.name, p.Caps(), mode, pull)
}

func (p *levelPin) Read() (bool, error) { return p.level(), nil }

func (p *levelPin) Write(bool) error {
	return fmt.Errorf("gpio: pin %s: output unsupported", p.name)
}

// ledPin drives the clock-running LED.
type ledPin struct {
	mu    sync.Mutex
	led   LED
	name  string
	level bool
}

func newLEDPin(name string, led LED) GPIOPin {
	if led == nil {
		return nil
	}
	return &ledPin{led: led, name: name}
}

func (p *ledPin) Name() string   { return p.name }
func (p *ledPin) Caps() GPIOCaps { return GPIOCapOutput }

func (p *ledPin) Configure(mode GPIOMode, pull GPIOPull) error {
	return checkConfig(p.name, p.Caps(), mode, pull)
}

func (p *ledPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level, nil
}

func (p *ledPin) Write(level bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
	if level {
		p.led.High()
	} else {
		p.led.Low()
	}
	return nil
}
