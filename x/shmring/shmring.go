// Package shmring is a single-producer, single-consumer byte ring.
//
// The bench build fills one per serial device from a reader goroutine and
// the bridge loop drains it without blocking; the loop parks on Readable
// when every ring is empty. On the MCU the trace queue uses one with both
// ends on the loop, buffering trace text ahead of the diag UART's FIFO.
package shmring

import "sync/atomic"

// Ring is a single-producer, single-consumer byte ring.
type Ring struct {
	buf  []byte
	mask uint32
	rd   atomic.Uint32 // consumer index (monotonic)
	wr   atomic.Uint32 // producer index (monotonic)

	readable chan struct{} // 0 -> >0 available edge
}

// New allocates a ring of size bytes. size must be a power of two >= 2.
func New(size int) *Ring {
	if size < 2 || (size&(size-1)) != 0 {
		panic("shmring: size must be power of two >= 2")
	}
	return &Ring{
		buf:      make([]byte, size),
		mask:     uint32(size - 1),
		readable: make(chan struct{}, 1),
	}
}

func (r *Ring) size() uint32 { return uint32(len(r.buf)) }

// Space is the number of bytes the producer may write without loss. The
// trace queue checks it to drop a whole write rather than split one.
func (r *Ring) Space() int {
	return int(r.size() - (r.wr.Load() - r.rd.Load()))
}

// Available is the number of bytes ready for the consumer.
func (r *Ring) Available() int {
	return int(r.wr.Load() - r.rd.Load())
}

// WriteFrom copies as much of src as fits and returns the count written.
func (r *Ring) WriteFrom(src []byte) (n int) {
	if len(src) == 0 {
		return 0
	}
	rd := r.rd.Load()
	wr := r.wr.Load()
	before := wr - rd
	n = int(r.size() - before)
	if n <= 0 {
		return 0
	}
	if len(src) < n {
		n = len(src)
	}

	at := wr & r.mask
	first := int(r.size() - at)
	if first > n {
		first = n
	}
	copy(r.buf[at:at+uint32(first)], src[:first])
	if second := n - first; second > 0 {
		copy(r.buf[:second], src[first:n])
	}
	r.wr.Store(wr + uint32(n)) // release

	if before == 0 {
		select {
		case r.readable <- struct{}{}:
		default:
		}
	}
	return n
}

// ReadInto copies up to len(dst) available bytes and returns the count.
// It returns 0 immediately when the ring is empty.
func (r *Ring) ReadInto(dst []byte) (n int) {
	if len(dst) == 0 {
		return 0
	}
	rd := r.rd.Load()
	wr := r.wr.Load() // acquire
	n = int(wr - rd)
	if n <= 0 {
		return 0
	}
	if len(dst) < n {
		n = len(dst)
	}

	at := rd & r.mask
	first := int(r.size() - at)
	if first > n {
		first = n
	}
	copy(dst[:first], r.buf[at:at+uint32(first)])
	if second := n - first; second > 0 {
		copy(dst[first:n], r.buf[:second])
	}
	r.rd.Store(rd + uint32(n)) // release
	return n
}

// ReadByte pops one byte; ok is false when the ring is empty.
func (r *Ring) ReadByte() (b byte, ok bool) {
	var one [1]byte
	if r.ReadInto(one[:]) == 0 {
		return 0, false
	}
	return one[0], true
}

// Readable receives a token when the ring goes from empty to non-empty.
// Tokens coalesce, so a waiter may wake to a ring that is already drained
// and must re-check Available.
func (r *Ring) Readable() <-chan struct{} { return r.readable }
