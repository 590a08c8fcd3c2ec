package action

import (
	"errors"
	"testing"

	"points/firmware/score"
	"points/kernel"
)

func TestParseJSON(t *testing.T) {
	tests := []struct {
		in   string
		want Action
	}{
		{`{"kind":"adjust","player":1,"column":2,"delta":-3}`, Adjust(1, 2, -3)},
		{`{"kind":"adjust","player":0,"delta":5}`, Adjust(0, 0, 5)},
		{`{"kind":"reset","value":40}`, Reset(40)},
		{`{"kind":"createRoster","names":["Alice","Bob","Carla"]}`, CreateRoster("Alice", "Bob", "Carla")},
		{`{"kind":"create","names":["Solo"]}`, CreateRoster("Solo")},
	}
	for _, tt := range tests {
		got, err := ParseJSON([]byte(tt.in))
		if err != nil {
			t.Errorf("ParseJSON(%s) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseJSON(%s) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseJSONRejects(t *testing.T) {
	for _, in := range []string{
		`not json`,
		`[1,2]`,
		`{}`,
		`{"kind":"explode"}`,
		`{"kind":"adjust","player":4,"delta":1}`,
		`{"kind":"adjust","player":0,"column":4,"delta":1}`,
		`{"kind":"adjust","player":0,"delta":1.5}`,
		`{"kind":"adjust","player":"0","delta":1}`,
		`{"kind":"adjust","player":0}`,
		`{"kind":"reset","value":70000}`,
		`{"kind":"reset"}`,
		`{"kind":"createRoster","names":"Alice"}`,
		`{"kind":"createRoster","names":["a","b","c","d","e"]}`,
		`{"kind":"createRoster","names":[1]}`,
	} {
		if _, err := ParseJSON([]byte(in)); !errors.Is(err, ErrInvalid) {
			t.Errorf("ParseJSON(%s) error = %v, want ErrInvalid", in, err)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		a     Action
		count int
		ok    bool
	}{
		{"adjust", Adjust(1, 3, 1), 2, true},
		{"adjust beyond roster", Adjust(2, 0, 1), 2, false},
		{"adjust any slot without roster", Adjust(3, 0, 1), 0, true},
		{"zero delta", Adjust(0, 0, 0), 2, false},
		{"huge delta", Adjust(0, 0, 5000), 2, false},
		{"reset", Reset(20), 2, true},
		{"empty roster", CreateRoster(), 2, false},
		{"blank name", CreateRoster("A", "  "), 2, false},
		{"long name", CreateRoster("Bartholomew-the-third"), 2, false},
		{"roster", CreateRoster("A", "B", "C", "D"), 2, true},
		{"unknown kind", Action{Kind: 9}, 2, false},
	}
	for _, tt := range tests {
		err := tt.a.Validate(tt.count)
		if (err == nil) != tt.ok {
			t.Errorf("%s: Validate() error = %v, want ok=%v", tt.name, err, tt.ok)
		}
		if err != nil && !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: error %v does not wrap ErrInvalid", tt.name, err)
		}
	}
}

func TestApply(t *testing.T) {
	m := score.New([]string{"A", "B"}, 20)
	if Adjust(1, 0, -25).Apply(m) {
		t.Fatalf("adjust requested a restart")
	}
	if got := m.Points(1, 0); got != 0 {
		t.Fatalf("Points(1, 0) = %d, want 0", got)
	}
	if !CreateRoster(" Zed ", "Amy", "Bo").Apply(m) {
		t.Fatalf("createRoster did not request a restart")
	}
	if m.Count() != 3 || m.Name(0).String() != "Zed" {
		t.Fatalf("roster = %d %q", m.Count(), m.Name(0).String())
	}
	if !Reset(40).Apply(m) || m.Points(2, 0) != 40 {
		t.Fatalf("reset did not set totals")
	}
}

func TestCodecRoundTrip(t *testing.T) {
	for _, a := range []Action{
		Adjust(3, 2, -999),
		Reset(65535),
		CreateRoster("Élodie", "Bob", "日本語の名前です", ""),
	} {
		var buf [kernel.MaxMessageBytes]byte
		n, err := a.MarshalTo(buf[:])
		if err != nil {
			t.Fatalf("MarshalTo() error = %v", err)
		}
		got, err := Unmarshal(buf[:n])
		if err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if a.Kind == KindCreateRoster {
			a.Names[2] = "日本語の"
		}
		if got != a {
			t.Fatalf("round trip = %+v, want %+v", got, a)
		}
	}
}

func TestInletPostAndDrain(t *testing.T) {
	sys := kernel.NewSystem()
	in := NewInlet(sys, kernel.EPWeb)

	if err := in.Post(Adjust(5, 0, 1), 2); !errors.Is(err, ErrInvalid) {
		t.Fatalf("Post(invalid) error = %v, want ErrInvalid", err)
	}
	for i := 0; i < 8; i++ {
		if err := in.Post(Adjust(0, 0, 1), 2); err != nil {
			t.Fatalf("Post() #%d error = %v", i, err)
		}
	}
	if err := in.Post(Adjust(0, 0, 1), 2); !errors.Is(err, ErrFull) {
		t.Fatalf("Post() on full inbox error = %v, want ErrFull", err)
	}

	n := sys.Drain(func(msg kernel.Message) {
		if msg.From != kernel.EPWeb {
			t.Fatalf("From = %v, want web", msg.From)
		}
		a, err := FromMessage(msg)
		if err != nil || a != Adjust(0, 0, 1) {
			t.Fatalf("FromMessage() = %+v, %v", a, err)
		}
	})
	if n != 8 {
		t.Fatalf("Drain() = %d, want 8", n)
	}
}
