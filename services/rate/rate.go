// Package rate mirrors the host-requested line rate onto the hardware UART.
package rate

import (
	"sniffbridge-go/errcode"
	"sniffbridge-go/services/trace"
	"sniffbridge-go/types"
	"sniffbridge-go/x/conv"
)

// Reconfigurer tears down and re-establishes a UART with new line coding.
// It must either fully apply lc or return an error.
type Reconfigurer interface {
	Reconfigure(lc types.LineCoding) error
}

// Outcome of a rate request.
type Outcome uint8

const (
	Unchanged Outcome = iota
	Changed
)

func (o Outcome) String() string {
	if o == Changed {
		return "changed"
	}
	return "unchanged"
}

var (
	noticePrefix = []byte("[INFO] Baudrate changed to ")
	noticeSuffix = []byte(" bps\r\n")
)

// Controller owns the current UART rate.
type Controller struct {
	uart    Reconfigurer
	mux     *trace.Mux
	current uint32
	changes uint32
	digits  [10]byte
}

// New returns a Controller for uart whose applied rate is initial
// (types.DefaultBaud when zero). It does not touch the peripheral.
func New(uart Reconfigurer, mux *trace.Mux, initial uint32) *Controller {
	if initial == 0 {
		initial = types.DefaultBaud
	}
	return &Controller{uart: uart, mux: mux, current: initial}
}

// Current returns the rate currently applied to the UART.
func (c *Controller) Current() uint32 { return c.current }

// Changes returns how many rate changes have been applied.
func (c *Controller) Changes() uint32 { return c.changes }

// Request applies newRate if it is non-zero and differs from the current
// rate. An open trace line is closed before the UART is touched, and a
// notice is written once the new rate is live. A reconfiguration failure
// leaves the current rate unchanged and is returned as
// errcode.ReconfigureFailed; the caller must not keep bridging.
func (c *Controller) Request(newRate uint32) (Outcome, error) {
	if newRate == 0 || newRate == c.current {
		return Unchanged, nil
	}

	c.mux.Flush()

	if err := c.uart.Reconfigure(types.LineCoding8N1(newRate)); err != nil {
		return Unchanged, &errcode.E{
			C:   errcode.ReconfigureFailed,
			Op:  "rate.request",
			Msg: string(conv.Utoa(c.digits[:], uint64(newRate))) + " bps",
			Err: err,
		}
	}
	c.current = newRate
	c.changes++

	c.mux.Notify(noticePrefix)
	c.mux.Notify(conv.Utoa(c.digits[:], uint64(newRate)))
	c.mux.Notify(noticeSuffix)
	return Changed, nil
}
