// Package activity drives the data-activity LED from loop iterations.
package activity

// DefaultHold is the number of loop iterations the LED stays lit after the
// last byte moved.
const DefaultHold uint16 = 500

// Output is a binary indicator (GPIO LED, RGB pixel, ...).
type Output interface {
	Set(on bool)
}

// Indicator is a retriggerable countdown. The output is high from Trigger
// until hold ticks have passed without another Trigger.
type Indicator struct {
	out   Output
	hold  uint16
	count uint16
	lit   bool
}

// New returns an Indicator with the output driven low. hold of zero uses
// DefaultHold. A nil out is allowed and only tracks state.
func New(out Output, hold uint16) *Indicator {
	if hold == 0 {
		hold = DefaultHold
	}
	i := &Indicator{out: out, hold: hold}
	i.drive(false)
	return i
}

// Trigger restarts the countdown and lights the output.
func (i *Indicator) Trigger() {
	i.count = i.hold
	if !i.lit {
		i.drive(true)
	}
}

// Tick advances one loop iteration.
func (i *Indicator) Tick() {
	if i.count > 0 {
		i.count--
		return
	}
	if i.lit {
		i.drive(false)
	}
}

// Lit reports the state last driven onto the output.
func (i *Indicator) Lit() bool { return i.lit }

// Remaining returns the countdown value.
func (i *Indicator) Remaining() uint16 { return i.count }

func (i *Indicator) drive(on bool) {
	i.lit = on
	if i.out != nil {
		i.out.Set(on)
	}
}
