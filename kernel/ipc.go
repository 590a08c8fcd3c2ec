package kernel

import (
	"runtime"
	"sync/atomic"
)

// MaxMessageBytes is the maximum payload size for IPC messages.
const MaxMessageBytes = 64

// Message is a fixed-size message envelope.
type Message struct {
	From Endpoint
	Kind uint8
	Len  uint16
	Data [MaxMessageBytes]byte
}

// Payload returns the used part of Data.
func (m *Message) Payload() []byte {
	n := int(m.Len)
	if n > MaxMessageBytes {
		n = MaxMessageBytes
	}
	return m.Data[:n]
}

const (
	MsgAction uint8 = iota + 1
)

const mailboxSlots = 8

type mailboxSlot struct {
	// turn is 2*lap while the slot is free for that lap and 2*lap+1 once filled.
	turn atomic.Uint32
	msg  Message
}

// Mailbox is a fixed-size multi-producer, single-consumer queue.
// It is designed for bare-metal use: no allocations, busy-wait with Gosched().
// The zero value is an empty mailbox.
type Mailbox struct {
	_     [0]func() // prevent accidental copying.
	head  atomic.Uint32
	tail  atomic.Uint32
	slots [mailboxSlots]mailboxSlot
}

// TrySend attempts to enqueue a message, returning false if the mailbox is full.
func (mb *Mailbox) TrySend(msg Message) bool {
	for {
		head := mb.head.Load()
		s := &mb.slots[head%mailboxSlots]
		want := 2 * (head / mailboxSlots)
		turn := s.turn.Load()
		switch {
		case turn == want:
			if mb.head.CompareAndSwap(head, head+1) {
				s.msg = msg
				s.turn.Store(want + 1)
				return true
			}
		case int32(turn-want) < 0:
			// Slot still holds a message from the previous lap.
			return false
		}
		// Another producer advanced head; retry.
	}
}

// Send enqueues a message, blocking until it succeeds.
func (mb *Mailbox) Send(msg Message) {
	for !mb.TrySend(msg) {
		runtime.Gosched()
	}
}

// TryRecv attempts to dequeue one message, returning false if empty.
func (mb *Mailbox) TryRecv() (Message, bool) {
	tail := mb.tail.Load()
	s := &mb.slots[tail%mailboxSlots]
	want := 2*(tail/mailboxSlots) + 1
	if s.turn.Load() != want {
		return Message{}, false
	}

	msg := s.msg
	s.turn.Store(want + 1)
	mb.tail.Store(tail + 1)
	return msg, true
}

// Recv blocks until one message is available.
func (mb *Mailbox) Recv() Message {
	for {
		msg, ok := mb.TryRecv()
		if ok {
			return msg
		}
		runtime.Gosched()
	}
}
