package web

import (
	"strconv"

	"points/firmware/glyph"
	"points/firmware/score"
	"points/firmware/snapshot"

	"github.com/tidwall/sjson"
)

// encodeState renders a published snapshot as the JSON document served on /api/state and
// pushed over /ws.
func encodeState(s snapshot.Snapshot, seq uint32) []byte {
	b := []byte(`{}`)
	b, _ = sjson.SetBytes(b, "seq", seq)
	b, _ = sjson.SetBytes(b, "mode", s.Mode.String())
	b, _ = sjson.SetBytes(b, "cursor", s.Cursor)
	b, _ = sjson.SetBytes(b, "randomizing", s.Randomizing)
	b, _ = sjson.SetBytes(b, "count", s.Count)

	b, _ = sjson.SetRawBytes(b, "players", []byte(`[]`))
	for p := 0; p < int(s.Count) && p < score.MaxPlayers; p++ {
		base := "players." + strconv.Itoa(p)
		b, _ = sjson.SetBytes(b, base+".name", s.Names[p].String())
		pts := make([]uint16, score.Columns)
		copy(pts, s.Points[p][:])
		b, _ = sjson.SetBytes(b, base+".points", pts)
	}

	b, _ = sjson.SetBytes(b, "clock.elapsed", s.Clock[:])
	b, _ = sjson.SetBytes(b, "clock.running", s.Running)
	b, _ = sjson.SetBytes(b, "clock.paused", s.Paused)

	lcd := make([]string, len(s.Frame))
	for r := range s.Frame {
		lcd[r] = glyph.Printable(s.Frame.Row(r))
	}
	b, _ = sjson.SetBytes(b, "lcd", lcd)
	return b
}

func errorJSON(msg string) []byte {
	b, _ := sjson.SetBytes([]byte(`{}`), "error", msg)
	return b
}
