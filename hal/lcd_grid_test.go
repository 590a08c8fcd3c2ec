package hal

import "testing"

func TestLCDGridPrintClipsAtRowEnd(t *testing.T) {
	g := newLCDGrid(20, 4)
	g.SetCursor(15, 1)
	g.Print([]byte("0123456789"))

	if got, want := g.Line(1), "               01234"; got != want {
		t.Fatalf("Line(1) = %q, want %q", got, want)
	}
	if got := g.Line(2); got != "                    " {
		t.Fatalf("Line(2) = %q, want blank", got)
	}
}

func TestLCDGridSeqTracksChanges(t *testing.T) {
	g := newLCDGrid(20, 4)
	s0 := g.Seq()

	g.SetCursor(0, 0)
	g.Print([]byte("    "))
	if g.Seq() != s0 {
		t.Fatalf("Seq() changed on identical write")
	}

	g.SetCursor(0, 0)
	g.Print([]byte("Hi"))
	if g.Seq() == s0 {
		t.Fatalf("Seq() unchanged after visible write")
	}
}

func TestLCDGridCGRAMStandIns(t *testing.T) {
	g := newLCDGrid(20, 4)
	g.SetCursor(0, 3)
	g.Print([]byte{2, 'A', 1})
	if got := g.Line(3)[:3]; got != ">A<" {
		t.Fatalf("Line(3) = %q, want %q", got, ">A<")
	}
	if got := g.Line(7); got != "" {
		t.Fatalf("Line(7) = %q, want empty", got)
	}
}
