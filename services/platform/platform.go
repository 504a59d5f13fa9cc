// platform/platform.go
package platform

import (
	"sync/atomic"
	"time"

	"sniffbridge-go/services/bridge"
)

// Resources is everything Open claimed for one bridge engine.
type Resources struct {
	Ports   bridge.Ports
	Options bridge.Options

	closers []func() error
}

// Close releases the claimed ports in reverse order. The first error wins.
func (r *Resources) Close() error {
	var first error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	r.closers = nil
	return first
}

func (r *Resources) onClose(f func() error) { r.closers = append(r.closers, f) }

// -----------------------------------------------------------------------------
// Requested line rate
// -----------------------------------------------------------------------------

var requested atomic.Uint32

// SetRequestedBaud records the rate the host last asked for on the primary
// port. On the MCU it is the hook for a USB stack's line-coding callback;
// the bench build calls it from its config reload.
func SetRequestedBaud(baud uint32) { requested.Store(baud) }

// RequestedBaud returns the last recorded rate, 0 if none.
func RequestedBaud() uint32 { return requested.Load() }

// -----------------------------------------------------------------------------
// Pacer
// -----------------------------------------------------------------------------

// pacer is the Transport used when the USB stack is interrupt driven and
// offers no poll of its own. It reports work whenever a port has buffered
// input, and otherwise once per period so rate changes and LED ticks still
// advance. idle, if set, is called on the quiet iterations.
type pacer struct {
	pending func() bool
	now     func() time.Time
	period  time.Duration
	idle    func()

	last time.Time
}

func newPacer(pending func() bool, period time.Duration, idle func()) *pacer {
	return &pacer{pending: pending, now: time.Now, period: period, idle: idle}
}

func (p *pacer) Poll() bool {
	now := p.now()
	if p.pending != nil && p.pending() {
		p.last = now
		return true
	}
	if now.Sub(p.last) >= p.period {
		p.last = now
		return true
	}
	if p.idle != nil {
		p.idle()
	}
	return false
}

// -----------------------------------------------------------------------------
// Outputs
// -----------------------------------------------------------------------------

// OutputFunc adapts a function to activity.Output.
type OutputFunc func(on bool)

func (f OutputFunc) Set(on bool) { f(on) }

// NoLED is used when the board has no indicator.
var NoLED = OutputFunc(func(bool) {})
