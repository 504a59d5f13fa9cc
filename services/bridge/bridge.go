// bridge/bridge.go
package bridge

import (
	"context"

	"sniffbridge-go/services/activity"
	"sniffbridge-go/services/rate"
	"sniffbridge-go/services/trace"
	"sniffbridge-go/types"
)

// ChunkSize is the largest host->device read per iteration (one full-speed
// USB bulk packet).
const ChunkSize = 64

// -----------------------------------------------------------------------------
// Ports
// -----------------------------------------------------------------------------

// Transport reports whether the USB side has pending work (enumeration,
// endpoint readiness, line coding changes). Iterations that poll false do
// nothing else.
type Transport interface {
	Poll() bool
}

// HostPort is the primary virtual serial port facing the PC.
// Read must not block; it returns 0 when nothing is pending.
type HostPort interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	// RequestedBaud is the rate the host last asked for; 0 if none.
	RequestedBaud() uint32
}

// DiagPort is the output-mostly virtual serial port carrying the trace.
// Read must not block.
type DiagPort interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
}

// UART is the hardware serial link to the device under test.
// Write blocks until every byte is queued; Buffered and ReadByte never block.
type UART interface {
	rate.Reconfigurer
	Write(p []byte) (int, error)
	Buffered() int
	ReadByte() (byte, error)
}

// Ports groups everything the engine owns for its lifetime.
type Ports struct {
	Transport Transport
	Host      HostPort
	Diag      DiagPort
	UART      UART
	LED       activity.Output
}

// Options tunes the engine. Zero values use defaults.
type Options struct {
	InitialBaud uint32 // rate already applied to the UART; default types.DefaultBaud
	HoldTicks   uint16 // activity LED hold; default activity.DefaultHold
}

// Stats counts what the engine has moved.
type Stats struct {
	Iterations   uint64
	HostToDevice uint64
	DeviceToHost uint64
	RateChanges  uint32
}

// -----------------------------------------------------------------------------
// Engine
// -----------------------------------------------------------------------------

// Engine is the single polling loop that moves bytes both ways, mirrors the
// host's line rate and tees everything into the trace. It is not safe for
// concurrent use; one goroutine calls Step or Run.
type Engine struct {
	p     Ports
	mux   *trace.Mux
	rate  *rate.Controller
	led   *activity.Indicator
	stats Stats

	chunk   [ChunkSize]byte
	one     [1]byte
	discard [ChunkSize]byte
}

// New builds an Engine over p. The UART is expected to already run at
// o.InitialBaud.
func New(p Ports, o Options) *Engine {
	if o.InitialBaud == 0 {
		o.InitialBaud = types.DefaultBaud
	}
	mux := trace.New(p.Diag)
	return &Engine{
		p:    p,
		mux:  mux,
		rate: rate.New(p.UART, mux, o.InitialBaud),
		led:  activity.New(p.LED, o.HoldTicks),
	}
}

// Baud returns the rate currently applied to the UART.
func (e *Engine) Baud() uint32 { return e.rate.Current() }

// Stats returns a copy of the counters.
func (e *Engine) Stats() Stats {
	s := e.stats
	s.RateChanges = e.rate.Changes()
	return s
}

// Trace exposes the multiplexer, mainly for inspection in tests.
func (e *Engine) Trace() *trace.Mux { return e.mux }

// Run calls Step until ctx is done (returns nil) or Step fails.
func (e *Engine) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		if err := e.Step(); err != nil {
			return err
		}
	}
}

// Step runs one loop iteration. The order of the phases is part of the
// contract: a rate change (and the flush before it) lands before any byte of
// the same iteration is traced, and host bytes are traced before device
// bytes. The only error returned is a failed UART reconfiguration.
func (e *Engine) Step() error {
	if !e.p.Transport.Poll() {
		return nil
	}
	e.stats.Iterations++

	if err := e.negotiate(); err != nil {
		return err
	}
	e.hostToDevice()
	e.deviceToHost()
	e.drainDiag()
	e.led.Tick()
	return nil
}

func (e *Engine) negotiate() error {
	req := e.p.Host.RequestedBaud()
	if req == 0 || req == e.rate.Current() {
		return nil
	}
	_, err := e.rate.Request(req)
	return err
}

func (e *Engine) hostToDevice() {
	n, err := e.p.Host.Read(e.chunk[:])
	if err != nil || n <= 0 {
		return
	}
	w := writeAll(e.p.UART, e.chunk[:n])
	if w == 0 {
		return
	}
	e.led.Trigger()
	e.mux.EmitBytes(trace.SourceHost, e.chunk[:w])
	e.stats.HostToDevice += uint64(w)
}

// writeAll keeps writing until p is gone, the UART errors or it stops making
// progress. Only the bytes it accepted are reported.
func writeAll(u UART, p []byte) int {
	total := 0
	for total < len(p) {
		n, err := u.Write(p[total:])
		if n > 0 {
			total += n
		}
		if err != nil || n <= 0 {
			break
		}
	}
	return total
}

func (e *Engine) deviceToHost() {
	if e.p.UART.Buffered() == 0 {
		return
	}
	b, err := e.p.UART.ReadByte()
	if err != nil {
		return
	}
	e.one[0] = b
	_, _ = e.p.Host.Write(e.one[:])
	e.led.Trigger()
	e.mux.EmitByte(trace.SourceDevice, b)
	e.stats.DeviceToHost++
}

// drainDiag discards whatever the PC typed into the trace port.
func (e *Engine) drainDiag() {
	if e.p.Diag == nil {
		return
	}
	_, _ = e.p.Diag.Read(e.discard[:])
}

// PollFunc adapts a function to Transport.
type PollFunc func() bool

func (f PollFunc) Poll() bool { return f() }

// AlwaysReady is a Transport for interrupt-driven stacks where every
// iteration may have work.
var AlwaysReady Transport = PollFunc(func() bool { return true })
