package action

import (
	"errors"
	"fmt"

	"points/kernel"
)

// ErrFull reports that the device has not drained earlier actions yet.
var ErrFull = errors.New("action queue full")

// Inlet posts validated actions into the device loop's mailbox.
type Inlet struct {
	sys  *kernel.System
	from kernel.Endpoint
}

// NewInlet returns an inlet tagging its messages with from.
func NewInlet(sys *kernel.System, from kernel.Endpoint) Inlet {
	return Inlet{sys: sys, from: from}
}

// Post validates a against a roster of count players and enqueues it.
func (in Inlet) Post(a Action, count int) error {
	if err := a.Validate(count); err != nil {
		return err
	}
	if in.sys == nil {
		return ErrFull
	}
	var buf [kernel.MaxMessageBytes]byte
	n, err := a.MarshalTo(buf[:])
	if err != nil {
		return err
	}
	if !in.sys.Post(in.from, kernel.MsgAction, buf[:n]) {
		return fmt.Errorf("post %s from %s: %w", a.Kind, in.from, ErrFull)
	}
	return nil
}

// FromMessage decodes an action message drained from the mailbox and validates it again.
func FromMessage(msg kernel.Message) (Action, error) {
	if msg.Kind != kernel.MsgAction {
		return Action{}, fmt.Errorf("%w: message kind %d", ErrInvalid, msg.Kind)
	}
	a, err := Unmarshal(msg.Payload())
	if err != nil {
		return a, err
	}
	if err := a.Validate(0); err != nil {
		return a, err
	}
	return a, nil
}
