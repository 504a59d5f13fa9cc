package errcode

import (
	"errors"
	"testing"
)

func TestOf(t *testing.T) {
	cause := errors.New("pl011 stuck")
	type C struct {
		err  error
		want Code
	}
	for _, c := range []C{
		{nil, OK},
		{UnknownBoard, UnknownBoard},
		{&E{C: ReconfigureFailed, Op: "uart0", Err: cause}, ReconfigureFailed},
		{cause, Error},
	} {
		if got := Of(c.err); got != c.want {
			t.Fatalf("Of(%v) = %q, want %q", c.err, got, c.want)
		}
	}
}

func TestEUnwrapAndMessage(t *testing.T) {
	cause := errors.New("timeout")
	err := Wrap(ReconfigureFailed, "uart.reconfigure", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("errors.Is should see the cause")
	}
	if got, want := err.Error(), "uart.reconfigure: reconfigure_failed: timeout"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	if Wrap(Error, "x", nil) != nil {
		t.Fatalf("Wrap(nil) should be nil")
	}
}
