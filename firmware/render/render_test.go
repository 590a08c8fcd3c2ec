package render

import (
	"testing"

	"points/firmware/clock"
	"points/firmware/glyph"
	"points/firmware/nav"
	"points/firmware/score"
)

func lines(f Frame) [Rows]string {
	var out [Rows]string
	for r := range out {
		out[r] = string(f[r][:])
	}
	return out
}

func TestRenderMain(t *testing.T) {
	m := score.New([]string{"Alice", "Bob"}, 20)
	m.Adjust(0, 0, 1)
	s := nav.Start().Enter(nav.ModeMain)

	f := Render(View{State: s, Model: m})
	got := lines(f)
	want := [Rows]string{
		"\x02Alice : 21         ",
		" Bob   : 20         ",
		"                    ",
		"              Utils ",
	}
	if got != want {
		t.Fatalf("Render(main) =\n%q\nwant\n%q", got, want)
	}

	s.Cursor[nav.ModeMain] = 2
	s.Randomizing = true
	f = Render(View{State: s, Model: m})
	if f[3][19] != glyph.ArrowLeft {
		t.Fatalf("utils tile mark = %q, want left arrow", f[3][19])
	}
	if f[0][19] != glyph.Hourglass {
		t.Fatalf("randomize mark = %q, want hourglass", f[0][19])
	}
	if f[0][0] != ' ' {
		t.Fatalf("player mark drawn on utils tile cursor")
	}
}

func TestRenderDetail(t *testing.T) {
	m := score.New([]string{"Alice", "Bob", "Carla"}, 20)
	m.Adjust(1, 2, 3)
	s := nav.Start().Enter(nav.ModeMain)
	s.Cursor[nav.ModeMain] = 1
	s = s.Enter(nav.ModeDetail)

	got := lines(Render(View{State: s, Model: m}))
	want := [Rows]string{
		"Comm.Dmg Bob    P:20",
		"Carla :  0 \x01        ",
		"      :  3          ",
		"Alice :  0          ",
	}
	if got != want {
		t.Fatalf("Render(detail) =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderUtils(t *testing.T) {
	s := nav.Start().Enter(nav.ModeUtils)
	s.Cursor[nav.ModeUtils] = nav.UtilBack
	f := Render(View{State: s, Note: "D20 17"})
	got := lines(f)
	want := [Rows]string{
		" Die Roll      SAVE ",
		" Reset 20      LOAD ",
		" Reset 40     CLOCK ",
		" D20 17 BACK\x01       ",
	}
	if got != want {
		t.Fatalf("Render(utils) =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderClock(t *testing.T) {
	var e clock.Engine
	e.SelectRunning(clock.Player1, 0)
	e.Tick(65_000)
	e.SelectRunning(clock.Player2, 65_000)
	e.Tick(75_500)
	e.TogglePause()

	s := nav.Start().Enter(nav.ModeClock)
	s.Cursor[nav.ModeClock] = clock.Player2
	got := lines(Render(View{State: s, Clock: &e}))
	want := [Rows]string{
		"       CLOCK       \x03",
		"P1 01:05   \x02P2 00:10",
		"                    ",
		"    Total  01:15    ",
	}
	if got != want {
		t.Fatalf("Render(clock) =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderClockCapsMinutes(t *testing.T) {
	var e clock.Engine
	e.SelectRunning(clock.Player1, 0)
	e.Tick(200 * 60_000)
	f := Render(View{State: nav.Start().Enter(nav.ModeClock), Clock: &e})
	if got := string(f[1][3:8]); got != "99:59" {
		t.Fatalf("P1 readout = %q, want 99:59", got)
	}
}

func TestRenderBanner(t *testing.T) {
	f := Render(View{State: nav.Start(), Banner: [Rows]string{"Points Counter", "v1.2.3-and-a-very-long-suffix"}})
	if got := f.Line(0); got != "Points Counter      " {
		t.Fatalf("Line(0) = %q", got)
	}
	if got := f.Line(1); got != "v1.2.3-and-a-very-lo" {
		t.Fatalf("Line(1) = %q", got)
	}
}

func TestRenderOutOfRangeCursorsStayInFrame(t *testing.T) {
	m := score.New([]string{"A", "B", "C", "D"}, 65535)
	for mode := nav.ModeNone; mode <= nav.ModeClock; mode++ {
		for cur := 0; cur < 256; cur += 17 {
			s := nav.Start().Enter(mode)
			for i := range s.Cursor {
				s.Cursor[i] = uint8(cur)
			}
			f := Render(View{State: s, Model: m, Clock: &clock.Engine{}})
			for r := 0; r < Rows; r++ {
				if len(f.Row(r)) != Cols {
					t.Fatalf("mode %v cursor %d: row %d has %d cells", mode, cur, r, len(f.Row(r)))
				}
			}
		}
	}
}
