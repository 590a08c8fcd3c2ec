package kernel

// System is the message plumbing between the device loop and its asynchronous inlets.
type System struct {
	inbox  Mailbox
	shared SharedBuffer
}

// NewSystem creates a kernel instance.
func NewSystem() *System {
	return &System{}
}

// Inbox is the device loop's mailbox.
func (s *System) Inbox() *Mailbox {
	return &s.inbox
}

// Shared returns the buffer holding the latest published snapshot.
func (s *System) Shared() *SharedBuffer {
	return &s.shared
}

// Post copies the payload into a fixed-size message and tries to enqueue it for the
// device loop. It returns false when the mailbox is full or the payload does not fit.
func (s *System) Post(from Endpoint, kind uint8, payload []byte) bool {
	if len(payload) > MaxMessageBytes {
		return false
	}
	var msg Message
	msg.From = from
	msg.Kind = kind
	msg.Len = uint16(len(payload))
	copy(msg.Data[:], payload)
	return s.inbox.TrySend(msg)
}

// Drain hands every queued message to fn and returns how many there were.
func (s *System) Drain(fn func(Message)) int {
	n := 0
	for {
		msg, ok := s.inbox.TryRecv()
		if !ok {
			return n
		}
		fn(msg)
		n++
	}
}
