package snapshot

import (
	"testing"

	"points/firmware/clock"
	"points/firmware/nav"
	"points/firmware/render"
	"points/firmware/score"
	"points/kernel"
)

func TestSizeFitsSharedBuffer(t *testing.T) {
	if Size > kernel.MaxSharedBytes {
		t.Fatalf("Size = %d, exceeds shared buffer of %d", Size, kernel.MaxSharedBytes)
	}
}

func TestPublishRead(t *testing.T) {
	m := score.New([]string{"Alice", "Bob"}, 20)
	m.Adjust(0, 3, 2)
	var c clock.Engine
	c.SelectRunning(clock.Player2, 0)
	c.Tick(4200)
	s := nav.Start().Enter(nav.ModeMain)
	s.Cursor[nav.ModeMain] = 1
	f := render.Render(render.View{State: s, Model: m, Clock: &c})

	var buf kernel.SharedBuffer
	var last [Size]byte
	snap := Capture(s, m, &c, &f)
	if !Publish(&buf, &snap, &last) {
		t.Fatalf("Publish() = false on first publish")
	}
	if Publish(&buf, &snap, &last) {
		t.Fatalf("Publish() = true for an unchanged snapshot")
	}

	got, seq, ok := Read(&buf)
	if !ok || seq != 1 {
		t.Fatalf("Read() ok=%v seq=%d, want true 1", ok, seq)
	}
	if got != snap {
		t.Fatalf("Read() = %+v, want %+v", got, snap)
	}
	if got.Points[0][3] != 2 || got.Clock[1] != 4200 || got.Running != clock.Player2 || got.Cursor != 1 {
		t.Fatalf("Read() lost fields: %+v", got)
	}
}

func TestReadBeforePublish(t *testing.T) {
	var buf kernel.SharedBuffer
	if _, _, ok := Read(&buf); ok {
		t.Fatalf("Read() ok = true before any publish")
	}
}
