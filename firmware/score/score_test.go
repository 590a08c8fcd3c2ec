package score

import "testing"

func TestResetSetsTotalsAndClearsDamage(t *testing.T) {
	m := New([]string{"Alice", "Bob"}, 20)
	m.Adjust(0, 2, 3)
	m.Adjust(1, 0, 5)

	m.Reset(40)
	for p := 0; p < MaxPlayers; p++ {
		if got := m.Points(p, 0); got != 40 {
			t.Fatalf("Points(%d, 0) = %d, want 40", p, got)
		}
		for c := 1; c < Columns; c++ {
			if got := m.Points(p, c); got != 0 {
				t.Fatalf("Points(%d, %d) = %d, want 0", p, c, got)
			}
		}
	}
}

func TestAdjustNeverGoesNegative(t *testing.T) {
	for _, start := range []uint16{0, 1, 20, MaxPoints} {
		for _, delta := range []int{-1, -2, -20, -100000, 0, 1, 100000} {
			m := New([]string{"A"}, start)
			m.Adjust(0, 0, delta)
			got := int(m.Points(0, 0))
			want := int(start) + delta
			if want < 0 {
				want = 0
			}
			if want > MaxPoints {
				want = MaxPoints
			}
			if got != want {
				t.Fatalf("start %d delta %d: Points = %d, want %d", start, delta, got, want)
			}
		}
	}
}

func TestAdjustOutOfRangeIsIgnored(t *testing.T) {
	m := New([]string{"A", "B"}, 20)
	m.Adjust(4, 0, 1)
	m.Adjust(0, 4, 1)
	m.Adjust(-1, 0, 1)
	if got := m.Points(0, 0); got != 20 {
		t.Fatalf("Points(0, 0) = %d, want 20", got)
	}
}

func TestAdjustTouchesOnlyOnePlayer(t *testing.T) {
	m := New([]string{"Alice", "Bob"}, 0)
	m.Reset(20)
	m.Adjust(0, 0, 1)
	if got := m.Points(0, 0); got != 21 {
		t.Fatalf("Alice = %d, want 21", got)
	}
	if got := m.Points(1, 0); got != 20 {
		t.Fatalf("Bob = %d, want 20", got)
	}
	if got := m.Name(0).String(); got != "Alice" {
		t.Fatalf("Name(0) = %q, want %q", got, "Alice")
	}
}

func TestSetRosterClampsCount(t *testing.T) {
	m := New([]string{"A"}, 20)

	m.SetRoster(nil, 0)
	if got := m.Count(); got != 1 {
		t.Fatalf("Count() = %d, want 1", got)
	}
	if got := m.Name(0).String(); got != "P1" {
		t.Fatalf("Name(0) = %q, want P1", got)
	}

	m.SetRoster([]string{"a", "b", "c", "d", "e"}, 9)
	if got := m.Count(); got != MaxPlayers {
		t.Fatalf("Count() = %d, want %d", got, MaxPlayers)
	}
	if got := m.Name(7); got != BlankName {
		t.Fatalf("Name(7) = %q, want blank", got[:])
	}
}
