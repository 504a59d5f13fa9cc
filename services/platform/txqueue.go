// platform/txqueue.go
package platform

import (
	"sniffbridge-go/errcode"
	"sniffbridge-go/x/shmring"
)

// txFIFO is a hardware transmit FIFO that can be filled without waiting.
type txFIFO interface {
	Full() bool
	Put(b byte)
}

// txQueue is a write-only port that never waits for the wire. Writes are
// queued whole or dropped whole, so a trace cell or header is never split.
// Kick moves queued bytes into the FIFO while it has room; the owner calls
// it from the loop so the queue drains between writes.
type txQueue struct {
	q  *shmring.Ring
	hw txFIFO
}

func newTxQueue(hw txFIFO, size int) *txQueue {
	return &txQueue{q: shmring.New(size), hw: hw}
}

func (t *txQueue) Write(p []byte) (int, error) {
	t.Kick()
	if t.q.Space() < len(p) {
		return 0, errcode.NotReady
	}
	t.q.WriteFrom(p)
	t.Kick()
	return len(p), nil
}

// Kick fills the FIFO from the queue until either runs out.
func (t *txQueue) Kick() {
	for !t.hw.Full() {
		b, ok := t.q.ReadByte()
		if !ok {
			return
		}
		t.hw.Put(b)
	}
}

// Pending is the number of queued bytes not yet in the FIFO.
func (t *txQueue) Pending() int { return t.q.Available() }

