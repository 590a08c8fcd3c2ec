package app

import (
	"strings"
	"sync"
	"testing"

	"points/firmware/action"
	"points/firmware/clock"
	"points/firmware/glyph"
	"points/firmware/nav"
	"points/firmware/score"
	"points/hal"
	"points/kernel"
)

type fakeLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *fakeLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, s)
}
func (l *fakeLogger) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

func (l *fakeLogger) contains(sub string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range l.lines {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

type fakeLED struct{ on bool }

func (l *fakeLED) High() { l.on = true }
func (l *fakeLED) Low()  { l.on = false }

type fakeLCD struct {
	cells  [4][20]byte
	cgram  map[uint8][8]byte
	col    uint8
	row    uint8
	prints int
	light  bool
}

func (l *fakeLCD) Size() (uint8, uint8) { return 20, 4 }
func (l *fakeLCD) CreateChar(slot uint8, bitmap [8]byte) {
	if l.cgram == nil {
		l.cgram = map[uint8][8]byte{}
	}
	l.cgram[slot] = bitmap
}
func (l *fakeLCD) SetCursor(col, row uint8) { l.col, l.row = col, row }
func (l *fakeLCD) Print(b []byte) {
	l.prints++
	for _, c := range b {
		if l.row < 4 && l.col < 20 {
			l.cells[l.row][l.col] = c
		}
		l.col++
	}
}
func (l *fakeLCD) Backlight(on bool) { l.light = on }
func (l *fakeLCD) line(r int) string { return string(l.cells[r][:]) }

type fakeEEPROM struct {
	buf     [512]byte
	readErr error
}

func newFakeEEPROM() *fakeEEPROM {
	e := &fakeEEPROM{}
	for i := range e.buf {
		e.buf[i] = 0xFF
	}
	return e
}

func (e *fakeEEPROM) SizeBytes() uint32 { return 512 }
func (e *fakeEEPROM) ReadAt(p []byte, off uint32) (int, error) {
	if e.readErr != nil {
		return 0, e.readErr
	}
	return copy(p, e.buf[off:]), nil
}
func (e *fakeEEPROM) WriteAt(p []byte, off uint32) (int, error) { return copy(e.buf[off:], p), nil }
func (e *fakeEEPROM) Commit() error                             { return nil }

type fakeTime struct{ ms uint64 }

func (t *fakeTime) Millis() uint64 { return t.ms }

type fakeHAL struct {
	log  *fakeLogger
	led  *fakeLED
	lcd  *fakeLCD
	ee   *fakeEEPROM
	t    *fakeTime
	held [3]bool
	gpio hal.GPIO
}

func newFakeHAL() *fakeHAL {
	h := &fakeHAL{log: &fakeLogger{}, led: &fakeLED{}, lcd: &fakeLCD{}, ee: newFakeEEPROM(), t: &fakeTime{}}
	h.gpio = hal.NewGPIO(
		hal.NewInputPin(hal.PinMinus, func() bool { return !h.held[0] }),
		hal.NewInputPin(hal.PinPlus, func() bool { return !h.held[1] }),
		hal.NewInputPin(hal.PinMain, func() bool { return !h.held[2] }),
	)
	return h
}

func (h *fakeHAL) Logger() hal.Logger { return h.log }
func (h *fakeHAL) LED() hal.LED       { return h.led }
func (h *fakeHAL) GPIO() hal.GPIO     { return h.gpio }
func (h *fakeHAL) LCD() hal.CharLCD   { return h.lcd }
func (h *fakeHAL) EEPROM() hal.EEPROM { return h.ee }
func (h *fakeHAL) Time() hal.Time     { return h.t }
func (h *fakeHAL) Serial() hal.Serial { return nil }
func (h *fakeHAL) Entropy() uint32    { return 1 }

// fixedRand always draws v, capped below n.
type fixedRand struct{ v int }

func (r fixedRand) Intn(n int) int {
	if r.v >= n {
		return n - 1
	}
	return r.v
}

type rig struct {
	t *testing.T
	h *fakeHAL
	d *Device
}

func newRig(t *testing.T) *rig {
	cfg := DefaultConfig()
	cfg.Names = []string{"Alice", "Bob"}
	cfg.SerialConsole = false
	cfg.Rand = fixedRand{v: 10}
	h := newFakeHAL()
	return &rig{t: t, h: h, d: NewDevice(h, cfg, nil)}
}

// step runs the device for ms milliseconds of fake time at a 15 ms poll.
func (r *rig) step(ms uint64) {
	r.t.Helper()
	end := r.h.t.ms + ms
	for {
		if err := r.d.Step(r.h.t.ms); err != nil {
			r.t.Fatalf("Step() error = %v", err)
		}
		if r.h.t.ms >= end {
			return
		}
		r.h.t.ms += 15
	}
}

func (r *rig) boot() {
	r.step(1100)
	r.step(30)
}

func (r *rig) press(b int, hold uint64) {
	r.h.held[b] = true
	r.step(hold)
	r.h.held[b] = false
	r.step(300)
}

const (
	btnMinus = 0
	btnPlus  = 1
	btnMain  = 2
)

func TestBootShowsBannerThenMain(t *testing.T) {
	r := newRig(t)
	r.step(0)
	if got := r.h.lcd.line(0); !strings.HasPrefix(got, "Points Counter") {
		t.Fatalf("boot line 0 = %q", got)
	}
	if r.h.lcd.cgram[glyph.Hourglass] != glyph.Bitmaps[glyph.Hourglass] || !r.h.lcd.light {
		t.Fatalf("glyphs not installed or backlight off")
	}

	r.boot()
	if r.d.state.Mode != nav.ModeMain {
		t.Fatalf("Mode = %v, want main", r.d.state.Mode)
	}
	if !r.h.log.contains("persist: load failed") {
		t.Fatalf("missing load failure log: %v", r.h.log.lines)
	}
	if got := r.h.lcd.line(1); got != " Bob   : 20         " {
		t.Fatalf("line 1 = %q", got)
	}
}

func TestDetailAttributesDamageThroughButtons(t *testing.T) {
	r := newRig(t)
	r.boot()

	r.press(btnMain, 100)
	if got := r.d.model.Points(0, 0); got != 21 {
		t.Fatalf("Alice = %d, want 21", got)
	}

	r.press(btnMain, 500)
	if r.d.state.Mode != nav.ModeDetail {
		t.Fatalf("Mode = %v, want detail", r.d.state.Mode)
	}
	r.press(btnPlus, 100)
	r.press(btnMain, 100)
	if got := r.d.model.Points(0, 2); got != 1 {
		t.Fatalf("points[0][2] = %d, want 1", got)
	}
	if got := r.h.lcd.line(0); got != "Comm.Dmg Alice  P:21" {
		t.Fatalf("detail line 0 = %q", got)
	}
}

func TestUtilsReset40AndSaveLoad(t *testing.T) {
	r := newRig(t)
	r.boot()

	r.press(btnMinus, 100) // onto the Utils tile
	r.press(btnMain, 100)
	if r.d.state.Mode != nav.ModeUtils {
		t.Fatalf("Mode = %v, want utils", r.d.state.Mode)
	}

	for i := 0; i < nav.UtilSave; i++ {
		r.press(btnPlus, 100)
	}
	r.press(btnMain, 100)
	if r.d.note != "SAVED" || !strings.Contains(r.h.lcd.line(3), "SAVED") {
		t.Fatalf("note = %q, line 3 = %q", r.d.note, r.h.lcd.line(3))
	}

	r.d.model.Adjust(0, 0, 7)
	r.press(btnPlus, 100) // Load
	r.press(btnMain, 100)
	if r.d.state.Mode != nav.ModeMain || r.d.model.Points(0, 0) != 20 {
		t.Fatalf("after load: mode %v, Alice %d", r.d.state.Mode, r.d.model.Points(0, 0))
	}

	r.press(btnMain, 100) // cursor is still on the Utils tile
	r.press(btnPlus, 100)
	r.press(btnPlus, 100)
	r.d.model.Adjust(1, 2, 4)
	r.press(btnMain, 100)
	for p := 0; p < 2; p++ {
		if r.d.model.Points(p, 0) != 40 || r.d.model.Points(p, 2) != 0 {
			t.Fatalf("player %d after reset 40: %d / %d", p, r.d.model.Points(p, 0), r.d.model.Points(p, 2))
		}
	}
	if r.d.state.Mode != nav.ModeMain {
		t.Fatalf("Mode = %v, want main", r.d.state.Mode)
	}
}

func TestLoadFailureStaysInUtils(t *testing.T) {
	r := newRig(t)
	r.boot()
	r.h.ee.readErr = hal.ErrNotImplemented

	r.press(btnMinus, 100)
	r.press(btnMain, 100)
	for i := 0; i < nav.UtilLoad; i++ {
		r.press(btnPlus, 100)
	}
	r.press(btnMain, 100)
	if r.d.state.Mode != nav.ModeUtils || r.d.note != "ERR" {
		t.Fatalf("mode %v note %q, want utils ERR", r.d.state.Mode, r.d.note)
	}
	if r.d.model.Name(0).String() != "Alice" {
		t.Fatalf("model changed on failed load")
	}
}

func TestClockRunsAndDrivesLED(t *testing.T) {
	r := newRig(t)
	r.boot()
	r.press(btnMinus, 100)
	r.press(btnMain, 100)
	for i := 0; i < nav.UtilClock; i++ {
		r.press(btnPlus, 100)
	}
	r.press(btnMain, 100)
	if r.d.state.Mode != nav.ModeClock {
		t.Fatalf("Mode = %v, want clock", r.d.state.Mode)
	}

	r.press(btnPlus, 100)
	if !r.h.led.on {
		t.Fatalf("LED off while player 1 clock runs")
	}
	r.step(5000)
	if got := r.d.clock.Elapsed(clock.Player1); got < 5000 || got > 5600 {
		t.Fatalf("Elapsed(1) = %d, want about 5400", got)
	}
	r.press(btnMain, 100)
	if r.h.led.on {
		t.Fatalf("LED on while paused")
	}
	before := r.d.clock.Elapsed(clock.Player1)
	r.step(3000)
	if got := r.d.clock.Elapsed(clock.Player1); got != before {
		t.Fatalf("Elapsed(1) moved while paused: %d -> %d", before, got)
	}
	if !strings.Contains(r.h.lcd.line(1), "P1 00:0") {
		t.Fatalf("clock line = %q", r.h.lcd.line(1))
	}
}

func TestInjectedActionsApplyOnTick(t *testing.T) {
	r := newRig(t)
	r.boot()
	in := r.d.Inlet(kernel.EPWeb)

	if err := in.Post(action.Adjust(1, 0, 5), 2); err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if r.d.model.Points(1, 0) != 20 {
		t.Fatalf("action applied before the tick")
	}
	r.step(0)
	if got := r.d.model.Points(1, 0); got != 25 {
		t.Fatalf("Bob = %d, want 25", got)
	}
	if got := r.h.lcd.line(1); got != " Bob   : 25         " {
		t.Fatalf("line 1 = %q, want immediate refresh", got)
	}

	if err := in.Post(action.CreateRoster("Ann", "Ben", "Cy"), 2); err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	r.step(300)
	if r.d.model.Count() != 3 || !strings.Contains(r.h.lcd.line(2), "Cy") {
		t.Fatalf("roster = %d, line 2 = %q", r.d.model.Count(), r.h.lcd.line(2))
	}

	snap, ok := r.d.Snapshot()
	if !ok || snap.Count != 3 || snap.Names[0].String() != "Ann" {
		t.Fatalf("Snapshot() = %+v, %v", snap, ok)
	}
	if !r.h.log.contains("action: adjust p2 c0 +5 from web") {
		t.Fatalf("missing action log: %v", r.h.log.lines)
	}
}

type spinRand struct{ draws []int }

func (s *spinRand) Intn(n int) int {
	if len(s.draws) == 0 {
		return n - 1
	}
	v := s.draws[0]
	s.draws = s.draws[1:]
	return v
}

func TestRandomizeIgnoresButtonsUntilDone(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Names = []string{"A", "B", "C"}
	cfg.SerialConsole = false
	cfg.Rand = &spinRand{draws: []int{0, 0, 0, 0, 10}}
	h := newFakeHAL()
	r := &rig{t: t, h: h, d: NewDevice(h, cfg, nil)}

	r.step(1000)
	r.step(15)
	if !r.d.state.Randomizing {
		t.Fatalf("randomize not running after boot")
	}
	if r.h.lcd.cells[0][19] != glyph.Hourglass {
		t.Fatalf("hourglass missing while randomizing")
	}
	r.h.held[btnMain] = true
	r.step(100)
	r.h.held[btnMain] = false
	r.step(15)
	if r.d.model.Points(0, 0) != 20 || r.d.model.Points(1, 0) != 20 || r.d.model.Points(2, 0) != 20 {
		t.Fatalf("button press counted while randomizing")
	}

	r.step(1500)
	if r.d.state.Randomizing {
		t.Fatalf("randomize still running")
	}
	if got := r.d.state.Main(); got != 1 {
		t.Fatalf("starting player = %d, want 1", got)
	}
}

func TestStepRecoversPanic(t *testing.T) {
	r := newRig(t)
	r.boot()
	r.d.model = score.Model{}
	r.d.rng = nil // the die roll dereferences it

	r.press(btnMinus, 100)
	r.press(btnMain, 100)
	r.press(btnMain, 100)
	if r.d.Panics() == 0 {
		t.Fatalf("Panics() = 0, want a recovered panic")
	}
	if !r.h.log.contains("Points Panic") {
		t.Fatalf("panic not logged")
	}
	r.step(500)
	if r.d.state.Mode != nav.ModeUtils {
		t.Fatalf("device stopped responding after panic: mode %v", r.d.state.Mode)
	}
}
