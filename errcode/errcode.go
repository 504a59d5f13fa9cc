package errcode

// Code is a stable error identifier shared by the bridge, its platform
// adapters and the entry points. It is a string newtype, comparable,
// allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK                Code = "ok"
	NotReady          Code = "not_ready"
	InvalidRate       Code = "invalid_rate"
	InvalidConfig     Code = "invalid_config"
	ReconfigureFailed Code = "reconfigure_failed"

	UnknownBoard Code = "unknown_board"
	UnknownBus   Code = "unknown_bus"
	UnknownPin   Code = "unknown_pin"
	OpenFailed   Code = "open_failed"

	Error Code = "error" // generic fallback
)

// E keeps an operation and cause alongside a Code.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Wrap returns nil for a nil cause, otherwise an *E carrying c and op.
func Wrap(c Code, op string, err error) error {
	if err == nil {
		return nil
	}
	return &E{C: c, Op: op, Err: err}
}

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
