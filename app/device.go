package app

import (
	"fmt"
	"math/rand"

	"points/firmware/action"
	"points/firmware/clock"
	"points/firmware/console"
	"points/firmware/glyph"
	"points/firmware/input"
	"points/firmware/nav"
	"points/firmware/persist"
	"points/firmware/render"
	"points/firmware/score"
	"points/firmware/snapshot"
	"points/hal"
	"points/internal/buildinfo"
	"points/kernel"
)

var buttonPins = [input.Buttons]string{
	input.Minus: hal.PinMinus,
	input.Plus:  hal.PinPlus,
	input.Main:  hal.PinMain,
}

// Device owns the score model, the clock and the navigation state. Only Step mutates
// them; other goroutines reach the device through its mailbox and read the published
// snapshot.
type Device struct {
	cfg  Config
	log  hal.Logger
	sys  *kernel.System
	lcd  hal.CharLCD
	led  hal.LED
	pins [input.Buttons]hal.GPIOPin

	in    *input.Classifier
	state nav.State
	model score.Model
	clock clock.Engine
	rnd   *nav.Randomizer
	rng   nav.Intn
	store *persist.Store

	console *console.Console
	serial  hal.Serial
	rx      [64]byte

	banner  [render.Rows]string
	started bool
	bootAt  uint64
	now     uint64
	note    string

	frame     render.Frame
	shown     render.Frame
	shownOK   bool
	lastWrite uint64
	ledOn     bool
	published [snapshot.Size]byte
	panics    int
}

// NewDevice wires a device to h. sys may be nil.
func NewDevice(h hal.HAL, cfg Config, sys *kernel.System) *Device {
	if sys == nil {
		sys = kernel.NewSystem()
	}
	d := &Device{
		cfg:   cfg,
		log:   h.Logger(),
		sys:   sys,
		lcd:   h.LCD(),
		led:   h.LED(),
		in:    input.NewClassifier(ms(cfg.LongPress), ms(cfg.Debounce)),
		state: nav.Start(),
		rng:   cfg.Rand,
		store: persist.NewStore(h.EEPROM(), cfg.GameOffset),
		banner: [render.Rows]string{
			"Points Counter",
			buildinfo.BootLine(render.Cols),
			"Booting up...",
		},
	}
	if d.rng == nil {
		d.rng = rand.New(rand.NewSource(int64(h.Entropy())))
	}
	d.rnd = nav.NewRandomizer(d.rng, ms(cfg.RandomizeStep))
	d.model = *score.New(cfg.Names, cfg.StartingPoints)

	g := h.GPIO()
	for b, name := range buttonPins {
		p := hal.FindPin(g, name)
		if p == nil {
			d.logf("input: no %s pin", name)
			continue
		}
		if err := p.Configure(hal.GPIOModeInput, hal.GPIOPullUp); err != nil {
			d.logf("input: %s: %v", name, err)
			continue
		}
		d.pins[b] = p
	}

	if d.lcd != nil {
		glyph.Install(d.lcd)
		d.lcd.Backlight(true)
	}

	if cfg.SerialConsole {
		if s := h.Serial(); s != nil {
			d.serial = s
			d.console = console.New(d.Inlet(kernel.EPConsole), d.Snapshot, s)
		}
	}
	return d
}

// Inlet returns an action inlet into this device's mailbox.
func (d *Device) Inlet(from kernel.Endpoint) action.Inlet {
	return action.NewInlet(d.sys, from)
}

// System returns the mailbox and snapshot plumbing.
func (d *Device) System() *kernel.System { return d.sys }

// Snapshot returns the last published state.
func (d *Device) Snapshot() (snapshot.Snapshot, bool) {
	s, _, ok := snapshot.Read(d.sys.Shared())
	return s, ok
}

// Step runs one poll: boot sequencing, queued actions, buttons, the randomize animation,
// the clock, and the LCD refresh. A panic inside a step is logged and swallowed.
func (d *Device) Step(now uint64) (err error) {
	d.now = now
	defer d.recoverStep()

	if !d.started {
		d.started = true
		d.bootAt = now
	}
	if d.state.Mode == nav.ModeNone {
		if now-d.bootAt < ms(d.cfg.BootBanner) {
			d.refresh(now, false)
			return nil
		}
		d.finishBoot(now)
	}

	dirty := false
	if d.sys.Drain(func(msg kernel.Message) { d.applyMessage(msg, now) }) > 0 {
		dirty = true
	}
	d.pollSerial()

	events := d.in.Poll(d.readButtons(), now)
	for b, ev := range events {
		if ev == input.Idle {
			continue
		}
		dirty = true
		d.handle(nav.Event{Button: input.Button(b), Press: ev}, now)
	}

	if d.animate(now) {
		dirty = true
	}

	d.clock.Tick(now)
	d.updateLED()
	d.refresh(now, dirty)
	return nil
}

func (d *Device) finishBoot(now uint64) {
	if err := d.store.Load(&d.model); err != nil {
		d.logf("persist: load failed: %v, using defaults", err)
	} else {
		d.logf("persist: loaded %d players", d.model.Count())
	}
	d.state = d.state.Clamp(d.model.Count())
	d.randomize(now)
}

func (d *Device) handle(ev nav.Event, now uint64) {
	next, fx := nav.Step(d.state, ev, d.model.Count())
	d.state = next
	d.applyEffects(&fx, now)
	if d.state.Mode != nav.ModeUtils {
		d.note = ""
	}
}

func (d *Device) applyEffects(fx *nav.Effects, now uint64) {
	for i := 0; i < fx.Len(); i++ {
		d.apply(fx.At(i), now)
	}
}

func (d *Device) apply(e nav.Effect, now uint64) {
	switch e.Kind {
	case nav.EffectAdjust:
		d.model.Adjust(int(e.Player), int(e.Column), int(e.Delta))
	case nav.EffectReset:
		d.model.Reset(e.Value)
		d.logf("score: reset to %d", e.Value)
	case nav.EffectRollDie:
		d.note = fmt.Sprintf("D20 %2d", d.rng.Intn(20)+1)
	case nav.EffectSave:
		if err := d.store.Save(&d.model); err != nil {
			d.logf("persist: save failed: %v", err)
			d.note = "ERR"
			return
		}
		d.note = "SAVED"
	case nav.EffectLoad:
		if err := d.store.Load(&d.model); err != nil {
			d.logf("persist: load failed: %v", err)
			d.state.Mode = nav.ModeUtils
			d.note = "ERR"
			return
		}
		d.state = d.state.Clamp(d.model.Count())
	case nav.EffectClockSelect:
		d.clock.SelectRunning(int(e.Player), now)
	case nav.EffectClockPause:
		d.clock.Tick(now)
		d.clock.TogglePause()
	case nav.EffectClockReset:
		d.clock.Reset()
	case nav.EffectRandomize:
		d.rnd.Start(now)
	}
}

func (d *Device) applyMessage(msg kernel.Message, now uint64) {
	a, err := action.FromMessage(msg)
	if err != nil {
		d.logf("action: dropped from %s: %v", msg.From, err)
		return
	}
	d.logf("action: %s from %s", a, msg.From)
	if a.Apply(&d.model) {
		d.randomize(now)
	}
	d.state = d.state.Clamp(d.model.Count())
}

func (d *Device) randomize(now uint64) {
	var fx nav.Effects
	d.state = d.state.Randomize(&fx)
	d.applyEffects(&fx, now)
	d.note = ""
}

// animate advances the starting player animation and reports whether it moved.
func (d *Device) animate(now uint64) bool {
	if !d.state.Randomizing {
		return false
	}
	cur, v := d.rnd.Advance(now, d.state.Main(), d.model.Count())
	switch v {
	case nav.Continue:
		d.state.Cursor[nav.ModeMain] = uint8(cur)
		return true
	case nav.Stop, nav.Inactive:
		d.state.Cursor[nav.ModeMain] = uint8(cur)
		d.state.Randomizing = false
		return true
	}
	return false
}

func (d *Device) readButtons() [input.Buttons]bool {
	levels := [input.Buttons]bool{true, true, true}
	for i, p := range d.pins {
		if p == nil {
			continue
		}
		if v, err := p.Read(); err == nil {
			levels[i] = v
		}
	}
	return levels
}

func (d *Device) pollSerial() {
	if d.console == nil || d.serial == nil {
		return
	}
	n, err := d.serial.Read(d.rx[:])
	if n > 0 {
		d.console.Feed(d.rx[:n])
	}
	if err != nil && err != hal.ErrNotImplemented {
		d.logf("console: %v", err)
	}
}

func (d *Device) updateLED() {
	on := d.clock.Active()
	if on == d.ledOn || d.led == nil {
		return
	}
	d.ledOn = on
	if on {
		d.led.High()
	} else {
		d.led.Low()
	}
}

// refresh renders the frame and writes it when it changed and the write is due: at once
// after input, otherwise every RefreshInterval.
func (d *Device) refresh(now uint64, dirty bool) {
	d.frame = render.Render(render.View{
		State:  d.state,
		Model:  &d.model,
		Clock:  &d.clock,
		Note:   d.note,
		Banner: d.banner,
	})
	changed := !d.shownOK || d.frame != d.shown
	due := dirty || !d.shownOK || now-d.lastWrite >= ms(d.cfg.RefreshInterval)
	if changed && due {
		d.writeFrame(&d.frame)
		d.shown = d.frame
		d.shownOK = true
		d.lastWrite = now
	}
	snap := snapshot.Capture(d.state, &d.model, &d.clock, &d.shown)
	snapshot.Publish(d.sys.Shared(), &snap, &d.published)
}

func (d *Device) writeFrame(f *render.Frame) {
	if d.lcd == nil {
		return
	}
	for r := 0; r < render.Rows; r++ {
		d.lcd.SetCursor(0, uint8(r))
		d.lcd.Print(f.Row(r))
	}
}

func (d *Device) logf(format string, args ...any) {
	if d.log == nil {
		return
	}
	d.log.WriteLineString(fmt.Sprintf(format, args...))
}
