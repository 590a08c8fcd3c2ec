package clock

import "testing"

func TestClockAccumulatesAndPauses(t *testing.T) {
	var e Engine
	e.Reset()
	e.SelectRunning(Player1, 1000)
	e.Tick(6000)
	if got := e.Elapsed(Player1); got != 5000 {
		t.Fatalf("Elapsed(1) = %d, want 5000", got)
	}
	if got := e.Elapsed(Player2); got != 0 {
		t.Fatalf("Elapsed(2) = %d, want 0", got)
	}

	e.TogglePause()
	e.Tick(9000)
	if got := e.Elapsed(Player1); got != 5000 {
		t.Fatalf("Elapsed(1) after pause = %d, want 5000", got)
	}

	e.TogglePause()
	e.Tick(10000)
	if got := e.Elapsed(Player1); got != 6000 {
		t.Fatalf("Elapsed(1) after resume = %d, want 6000", got)
	}
}

func TestTickIsIdempotentForSameNow(t *testing.T) {
	var e Engine
	e.SelectRunning(Player2, 100)
	e.Tick(400)
	e.Tick(400)
	if got := e.Elapsed(Player2); got != 300 {
		t.Fatalf("Elapsed(2) = %d, want 300", got)
	}
}

func TestAtMostOneRunning(t *testing.T) {
	var e Engine
	seq := []int{Player1, Player2, Player2, Player1, None, Player2, 7, -1}
	now := uint64(10)
	for _, p := range seq {
		now += 250
		e.SelectRunning(p, now)
		nonZero := 0
		for _, q := range []int{Player1, Player2} {
			if e.Since(q) != 0 {
				nonZero++
			}
		}
		if nonZero > 1 {
			t.Fatalf("after SelectRunning(%d): %d start timestamps set", p, nonZero)
		}
	}
}

func TestSwitchingPlayersBanksTime(t *testing.T) {
	var e Engine
	e.SelectRunning(Player1, 0)
	e.SelectRunning(Player2, 1500)
	e.Tick(2000)
	if got := e.Elapsed(Player1); got != 1500 {
		t.Fatalf("Elapsed(1) = %d, want 1500", got)
	}
	if got := e.Elapsed(Player2); got != 500 {
		t.Fatalf("Elapsed(2) = %d, want 500", got)
	}
	if got := e.Total(); got != 2000 {
		t.Fatalf("Total() = %d, want 2000", got)
	}
}

func TestSelectRunningIsIdempotent(t *testing.T) {
	var e Engine
	e.SelectRunning(Player1, 100)
	e.SelectRunning(Player1, 900)
	if got := e.Since(Player1); got != 100 {
		t.Fatalf("Since(1) = %d, want 100", got)
	}
}

func TestReset(t *testing.T) {
	var e Engine
	e.SelectRunning(Player1, 0)
	e.Tick(1000)
	e.TogglePause()
	e.Reset()
	if e.Total() != 0 || e.Running() != None || e.Paused() {
		t.Fatalf("Reset() left total=%d running=%d paused=%v", e.Total(), e.Running(), e.Paused())
	}
}

func TestTickBeforePauseKeepsRunningTime(t *testing.T) {
	var e Engine
	e.SelectRunning(Player2, 0)
	e.Tick(2500)
	e.TogglePause()
	e.Tick(4000)
	if got := e.Elapsed(Player2); got != 2500 {
		t.Fatalf("Elapsed(2) = %d, want 2500", got)
	}
}
