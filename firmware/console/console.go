// Package console is the line-oriented serial command interface.
//
//	add <player> <delta> [column]   adjust a cell (players count from 1)
//	reset <points>                  reset every total
//	names <n1> [n2 ...]             replace the roster
//	state                           print the current screen and scores
//	help                            list commands
package console

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"points/firmware/action"
	"points/firmware/score"
	"points/firmware/snapshot"

	"github.com/google/shlex"
)

// ErrUsage reports a malformed command line.
var ErrUsage = errors.New("usage")

const help = "commands: add <player> <delta> [column] | reset <points> | names <n1> [n2 ...] | state | help"

// Command is one parsed line.
type Command struct {
	Verb   string
	Action action.Action
}

// HasAction reports whether the command carries an action for the device.
func (c Command) HasAction() bool { return c.Action.Kind != action.KindInvalid }

// Parse tokenizes and parses one command line. Quoted arguments may contain spaces.
func Parse(line string) (Command, error) {
	args, err := shlex.Split(line)
	if err != nil {
		return Command{}, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if len(args) == 0 {
		return Command{}, nil
	}
	cmd := Command{Verb: strings.ToLower(args[0])}
	args = args[1:]
	switch cmd.Verb {
	case "add":
		if len(args) < 2 || len(args) > 3 {
			return cmd, fmt.Errorf("%w: add <player> <delta> [column]", ErrUsage)
		}
		p, err := strconv.Atoi(args[0])
		if err != nil || p < 1 || p > score.MaxPlayers {
			return cmd, fmt.Errorf("%w: player must be 1..%d", ErrUsage, score.MaxPlayers)
		}
		d, err := strconv.Atoi(args[1])
		if err != nil || d < -action.MaxDelta || d > action.MaxDelta {
			return cmd, fmt.Errorf("%w: delta must be -%d..%d", ErrUsage, action.MaxDelta, action.MaxDelta)
		}
		c := 0
		if len(args) == 3 {
			if c, err = strconv.Atoi(args[2]); err != nil || c < 0 || c >= score.Columns {
				return cmd, fmt.Errorf("%w: column must be 0..%d", ErrUsage, score.Columns-1)
			}
		}
		cmd.Action = action.Adjust(p-1, c, d)
	case "reset":
		if len(args) != 1 {
			return cmd, fmt.Errorf("%w: reset <points>", ErrUsage)
		}
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 0 || v > score.MaxPoints {
			return cmd, fmt.Errorf("%w: points must be 0..%d", ErrUsage, score.MaxPoints)
		}
		cmd.Action = action.Reset(v)
	case "names":
		if len(args) < 1 || len(args) > score.MaxPlayers {
			return cmd, fmt.Errorf("%w: names <n1> [n2 ...] (1..%d names)", ErrUsage, score.MaxPlayers)
		}
		cmd.Action = action.CreateRoster(args...)
	case "state", "help":
		if len(args) != 0 {
			return cmd, fmt.Errorf("%w: %s takes no arguments", ErrUsage, cmd.Verb)
		}
	default:
		return cmd, fmt.Errorf("%w: unknown command %q", ErrUsage, cmd.Verb)
	}
	return cmd, nil
}

// Poster accepts actions for the device loop.
type Poster interface {
	Post(a action.Action, count int) error
}

// StateFunc returns the latest published snapshot.
type StateFunc func() (snapshot.Snapshot, bool)

const maxLine = 128

// Console executes command lines and writes replies.
type Console struct {
	post  Poster
	state StateFunc
	w     io.Writer

	line    [maxLine]byte
	n       int
	overrun bool
}

// New returns a console posting through p and replying on w.
func New(p Poster, state StateFunc, w io.Writer) *Console {
	return &Console{post: p, state: state, w: w}
}

// Feed appends raw input and runs every completed line. Lines longer than the buffer
// are discarded with an error reply.
func (c *Console) Feed(b []byte) {
	for _, ch := range b {
		switch ch {
		case '\r', '\n':
			if c.overrun {
				c.reply("error: line too long")
			} else if c.n > 0 {
				c.Exec(string(c.line[:c.n]))
			}
			c.n = 0
			c.overrun = false
		default:
			if c.n >= maxLine {
				c.overrun = true
				continue
			}
			c.line[c.n] = ch
			c.n++
		}
	}
}

// Exec runs one command line.
func (c *Console) Exec(line string) {
	cmd, err := Parse(line)
	if err != nil {
		c.reply("error: " + err.Error())
		return
	}
	switch {
	case cmd.Verb == "":
		return
	case cmd.Verb == "help":
		c.reply(help)
		return
	case cmd.Verb == "state":
		c.printState()
		return
	}

	count := 0
	if c.state != nil {
		if s, ok := c.state(); ok {
			count = int(s.Count)
		}
	}
	if c.post == nil {
		c.reply("error: no device")
		return
	}
	if err := c.post.Post(cmd.Action, count); err != nil {
		c.reply("error: " + err.Error())
		return
	}
	c.reply("ok " + cmd.Action.String())
}

func (c *Console) printState() {
	if c.state == nil {
		c.reply("error: no state")
		return
	}
	s, ok := c.state()
	if !ok {
		c.reply("error: device not ready")
		return
	}
	c.reply(fmt.Sprintf("mode %s", s.Mode))
	for r := range s.Frame {
		c.reply("|" + s.Frame.Line(r) + "|")
	}
	for p := 0; p < int(s.Count) && p < score.MaxPlayers; p++ {
		row := s.Points[p]
		c.reply(fmt.Sprintf("%d %-6s %5d  dmg %d/%d/%d", p+1, s.Names[p].String(), row[0], row[1], row[2], row[3]))
	}
}

func (c *Console) reply(s string) {
	if c.w == nil {
		return
	}
	_, _ = io.WriteString(c.w, s+"\r\n")
}
