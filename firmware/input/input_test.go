package input

import "testing"

// script feeds one button's level samples at fixed steps and collects the events.
func script(c *Classifier, b Button, start, step uint64, held []bool) []Event {
	var out []Event
	now := start
	for _, h := range held {
		levels := [Buttons]bool{true, true, true}
		levels[b] = !h
		ev := c.Poll(levels, now)
		for i, e := range ev {
			if Button(i) != b && e != Idle {
				panic("event on idle button")
			}
		}
		if ev[b] != Idle {
			out = append(out, ev[b])
		}
		now += step
	}
	return out
}

func repeat(v bool, n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func concat(parts ...[]bool) []bool {
	var out []bool
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestShortPress(t *testing.T) {
	c := NewClassifier(0, 0)
	got := script(c, Plus, 1000, 15, concat(repeat(false, 2), repeat(true, 6), repeat(false, 2)))
	if len(got) != 1 || got[0] != Short {
		t.Fatalf("events = %v, want [short]", got)
	}
}

func TestBounceYieldsOneShortPress(t *testing.T) {
	c := NewClassifier(0, 0)
	held := concat(
		repeat(true, 5), repeat(false, 1), // release, fires
		repeat(true, 1), repeat(false, 1), // chatter inside the window
		repeat(true, 1), repeat(false, 4),
	)
	got := script(c, Main, 0, 15, held)
	if len(got) != 1 || got[0] != Short {
		t.Fatalf("events = %v, want [short]", got)
	}
}

func TestLongPressFiresOnceAtThreshold(t *testing.T) {
	c := NewClassifier(350, 250)
	var got []Event
	var at uint64
	for now := uint64(0); now <= 1000; now += 10 {
		levels := [Buttons]bool{true, true, true}
		levels[Main] = now >= 1000 // held until 1000, then released
		ev := c.Poll(levels, now)[Main]
		if ev != Idle {
			got = append(got, ev)
			at = now
		}
	}
	if len(got) != 1 || got[0] != Long {
		t.Fatalf("events = %v, want [long]", got)
	}
	if at != 350 {
		t.Fatalf("long press fired at %d, want 350", at)
	}
}

func TestPressesSeparatedByDebounceBothCount(t *testing.T) {
	c := NewClassifier(0, 0)
	held := concat(repeat(true, 3), repeat(false, 20), repeat(true, 3), repeat(false, 2))
	got := script(c, Minus, 0, 15, held)
	if len(got) != 2 {
		t.Fatalf("events = %v, want two short presses", got)
	}
}

func TestButtonsAreIndependent(t *testing.T) {
	c := NewClassifier(0, 0)
	c.Poll([Buttons]bool{false, false, true}, 0)
	ev := c.Poll([Buttons]bool{true, true, true}, 100)
	if ev[Minus] != Short || ev[Plus] != Short || ev[Main] != Idle {
		t.Fatalf("Poll() = %v, want [short short idle]", ev)
	}
}

func TestBounceOnPressEdgeThenHoldIsOneEvent(t *testing.T) {
	c := NewClassifier(350, 250)
	held := concat(
		repeat(true, 1), repeat(false, 1), // bounce 15 ms after the press edge
		repeat(true, 39), // held from 30 to 600
		repeat(false, 2),
	)
	got := script(c, Main, 0, 15, held)
	if len(got) != 1 {
		t.Fatalf("events = %v, want exactly one", got)
	}
}

func TestHoldAfterDebounceWindowStillLongPresses(t *testing.T) {
	c := NewClassifier(350, 250)
	held := concat(
		repeat(true, 3), repeat(false, 20), // short press, released at 45
		repeat(true, 30), // held from 345 for 450 ms
	)
	got := script(c, Main, 0, 15, held)
	if len(got) != 2 || got[0] != Short || got[1] != Long {
		t.Fatalf("events = %v, want [short long]", got)
	}
}

func TestReleaseChatterAfterLongPressIsIgnored(t *testing.T) {
	c := NewClassifier(350, 250)
	held := concat(
		repeat(true, 30),                  // long fires at 360
		repeat(false, 1), repeat(true, 1), // release bounce
		repeat(false, 10),
	)
	got := script(c, Main, 0, 15, held)
	if len(got) != 1 || got[0] != Long {
		t.Fatalf("events = %v, want [long]", got)
	}
}
