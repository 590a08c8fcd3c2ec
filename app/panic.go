package app

import (
	"fmt"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"points/firmware/render"
)

// recoverStep turns a panic inside Step into a log entry and a short on-panel notice.
// The next refresh repaints the normal screen.
func (d *Device) recoverStep() {
	r := recover()
	if r == nil {
		return
	}
	d.panics++

	msg := fmt.Sprintf("%v", r)
	d.logf("Points Panic: step=%d panic=%s", d.panics, msg)
	if stack := debug.Stack(); len(stack) > 0 {
		for _, line := range strings.Split(string(stack), "\n") {
			if line == "" {
				continue
			}
			d.logf("%s", line)
		}
	}

	f := render.Blank()
	lines := []string{"Panic:"}
	for len(msg) > 0 && len(lines) < render.Rows {
		chunk, rest := takeRunes(msg, render.Cols)
		lines = append(lines, chunk)
		msg = strings.TrimLeft(rest, " ")
	}
	for r, line := range lines {
		copy(f.Row(r), line)
	}
	d.writeFrame(&f)
	d.shown = f
	d.shownOK = true
	d.lastWrite = d.now
}

// Panics returns how many steps have panicked.
func (d *Device) Panics() int { return d.panics }

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	var i, count int
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
