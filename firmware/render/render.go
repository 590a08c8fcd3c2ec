package render

import (
	"points/firmware/clock"
	"points/firmware/glyph"
	"points/firmware/nav"
	"points/firmware/score"
)

// View is everything a frame depends on.
type View struct {
	State  nav.State
	Model  *score.Model
	Clock  *clock.Engine
	Note   string
	Banner [Rows]string
}

// Selection marks, indexed by cursor.
var (
	mainMarks = [score.MaxPlayers]mark{
		{0, 0, glyph.ArrowRight},
		{1, 0, glyph.ArrowRight},
		{2, 0, glyph.ArrowRight},
		{3, 0, glyph.ArrowRight},
	}
	utilsTileMark = mark{3, 19, glyph.ArrowLeft}
	detailMarks   = [score.Columns]mark{
		{},
		{1, 11, glyph.ArrowLeft},
		{2, 11, glyph.ArrowLeft},
		{3, 11, glyph.ArrowLeft},
	}
	utilsMarks = [nav.UtilCount]mark{
		nav.UtilDieRoll: {0, 0, glyph.ArrowRight},
		nav.UtilReset20: {1, 0, glyph.ArrowRight},
		nav.UtilReset40: {2, 0, glyph.ArrowRight},
		nav.UtilSave:    {0, 19, glyph.ArrowLeft},
		nav.UtilLoad:    {1, 19, glyph.ArrowLeft},
		nav.UtilClock:   {2, 19, glyph.ArrowLeft},
		nav.UtilBack:    {3, 12, glyph.ArrowLeft},
	}
	clockMarks = [3]mark{
		clock.Player1: {1, 8, glyph.ArrowLeft},
		clock.Player2: {1, 11, glyph.ArrowRight},
	}
	busyMark = mark{0, 19, glyph.Hourglass}
)

var utilsGrid = [Rows]string{
	" Die Roll      SAVE ",
	" Reset 20      LOAD ",
	" Reset 40     CLOCK ",
	"        BACK        ",
}

// Render formats v. Cursors out of range draw no selection mark.
func Render(v View) Frame {
	f := Blank()
	switch v.State.Mode {
	case nav.ModeMain:
		renderMain(&f, v)
	case nav.ModeDetail:
		renderDetail(&f, v)
	case nav.ModeUtils:
		renderUtils(&f, v)
	case nav.ModeClock:
		renderClock(&f, v)
	default:
		for r, s := range v.Banner {
			f.put(r, 0, s)
		}
	}
	return f
}

func renderMain(f *Frame, v View) {
	count := 1
	if v.Model != nil {
		count = v.Model.Count()
		for p := 0; p < count && p < Rows; p++ {
			name := v.Model.Name(p)
			f.putBytes(p, 1, name[:])
			f.put(p, 7, ": ")
			f.putUint(p, 9, 2, uint64(v.Model.Points(p, 0)), false)
		}
	}
	f.put(3, 14, "Utils")
	if v.State.Randomizing {
		f.overlay(busyMark)
	}
	cur := v.State.Main()
	switch {
	case cur < count && cur < len(mainMarks):
		f.overlay(mainMarks[cur])
	case cur == count:
		f.overlay(utilsTileMark)
	}
}

func renderDetail(f *Frame, v View) {
	main := v.State.Main()
	if v.Model == nil || main >= score.MaxPlayers {
		return
	}
	name := v.Model.Name(main)
	f.put(0, 0, "Comm.Dmg ")
	f.putBytes(0, 9, name[:])
	f.put(0, 15, " P:")
	f.putUint(0, 18, 2, uint64(v.Model.Points(main, 0)), false)

	count := v.Model.Count()
	for j := 1; j < score.Columns; j++ {
		target := (main + j) % score.MaxPlayers
		name := score.BlankName
		if target < count {
			name = v.Model.Name(target)
		}
		f.putBytes(j, 0, name[:])
		f.put(j, 6, ": ")
		f.putUint(j, 8, 2, uint64(v.Model.Points(main, j)), false)
	}
	if cur := v.State.CursorOf(nav.ModeDetail); cur >= 1 && cur < len(detailMarks) {
		f.overlay(detailMarks[cur])
	}
}

func renderUtils(f *Frame, v View) {
	for r, s := range utilsGrid {
		f.put(r, 0, s)
	}
	if v.Note != "" {
		note := v.Note
		if len(note) > 7 {
			note = note[:7]
		}
		f.put(3, 1, note)
	}
	if cur := v.State.CursorOf(nav.ModeUtils); cur < len(utilsMarks) {
		f.overlay(utilsMarks[cur])
	}
}

func renderClock(f *Frame, v View) {
	var p1, p2, total uint64
	paused := false
	if v.Clock != nil {
		p1, p2, total = v.Clock.Elapsed(clock.Player1), v.Clock.Elapsed(clock.Player2), v.Clock.Total()
		paused = v.Clock.Paused()
	}
	f.put(0, 0, "       CLOCK        ")
	f.put(1, 0, "P1 ")
	putMMSS(f, 1, 3, p1)
	f.put(1, 12, "P2 ")
	putMMSS(f, 1, 15, p2)
	f.put(3, 4, "Total  ")
	putMMSS(f, 3, 11, total)

	if cur := v.State.CursorOf(nav.ModeClock); cur > clock.None && cur < len(clockMarks) {
		f.overlay(clockMarks[cur])
	}
	if paused {
		f.overlay(busyMark)
	}
}

// putMMSS writes ms as MM:SS, minutes capped at 99.
func putMMSS(f *Frame, row, col int, ms uint64) {
	mins := ms / 60000
	secs := (ms % 60000) / 1000
	if mins > 99 {
		mins, secs = 99, 59
	}
	f.putUint(row, col, 2, mins, true)
	f.put(row, col+2, ":")
	f.putUint(row, col+3, 2, secs, true)
}
