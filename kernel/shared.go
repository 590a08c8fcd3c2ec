package kernel

import (
	"sync"
	"sync/atomic"
)

// MaxSharedBytes is the capacity of a SharedBuffer.
const MaxSharedBytes = 256

// SharedBuffer publishes the latest snapshot from the device loop to readers on other
// goroutines. Writers replace the whole content; readers always see a complete write.
type SharedBuffer struct {
	mu  sync.Mutex
	seq atomic.Uint32
	buf [MaxSharedBytes]byte
	n   uint32
}

// Write copies data into the buffer and bumps the sequence counter.
func (b *SharedBuffer) Write(data []byte) uint32 {
	count := uint32(len(data))
	if count > MaxSharedBytes {
		count = MaxSharedBytes
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	copy(b.buf[:count], data[:count])
	b.n = count
	return b.seq.Add(1)
}

// Read returns the last written data and its sequence number.
func (b *SharedBuffer) Read(dst []byte) (seq uint32, count int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := b.n
	if n > uint32(len(dst)) {
		n = uint32(len(dst))
	}
	copy(dst[:n], b.buf[:n])
	return b.seq.Load(), int(n)
}

// Seq returns the sequence number of the last write without copying.
func (b *SharedBuffer) Seq() uint32 {
	return b.seq.Load()
}
