//go:build !rp2040

package platform

import (
	"io"
	"os"
	"sync"
	"time"

	"go.bug.st/serial"

	"sniffbridge-go/errcode"
	"sniffbridge-go/services/bridge"
	"sniffbridge-go/services/config"
	"sniffbridge-go/types"
	"sniffbridge-go/x/shmring"
)

const (
	rxRingSize  = 4096
	readTimeout = 50 * time.Millisecond
	benchFrame  = time.Millisecond
)

// Open claims the serial devices named by b on a workstation. The device
// under test and the primary port are both serial device paths; the diag
// port is stdout or a third device. The LED is not available.
func Open(b *config.Board) (*Resources, error) {
	r := &Resources{}
	fail := func(err error) (*Resources, error) {
		_ = r.Close()
		return nil, err
	}

	dut, err := openSerial(b.UART.ID, b.UART.Baud)
	if err != nil {
		return fail(err)
	}
	r.onClose(dut.Close)

	hp, err := openSerial(b.Host.ID, b.Host.Baud)
	if err != nil {
		return fail(err)
	}
	r.onClose(hp.Close)
	host := &benchHost{serialPort: hp}

	var diag bridge.DiagPort
	switch b.Diag.ID {
	case config.PortStdout, "":
		diag = stdoutPort{w: os.Stdout}
	default:
		dp, err := openSerial(b.Diag.ID, b.Diag.Baud)
		if err != nil {
			return fail(err)
		}
		r.onClose(dp.Close)
		diag = dp
	}

	r.Ports = bridge.Ports{
		Transport: newPacer(func() bool {
			return hp.rx.Available() > 0 || dut.rx.Available() > 0
		}, benchFrame, idleUntilReadable(benchFrame, hp.rx, dut.rx)),
		Host: host,
		Diag: diag,
		UART: dut,
		LED:  NoLED,
	}
	r.Options = bridge.Options{InitialBaud: b.UART.Baud, HoldTicks: b.LED.Hold}
	return r, nil
}

// idleUntilReadable parks the loop until either ring goes non-empty or limit
// elapses, whichever is first.
func idleUntilReadable(limit time.Duration, a, b *shmring.Ring) func() {
	t := time.NewTimer(limit)
	t.Stop()
	return func() {
		t.Reset(limit)
		select {
		case <-a.Readable():
		case <-b.Readable():
		case <-t.C:
		}
		t.Stop()
	}
}

// -----------------------------------------------------------------------------
// Serial devices
// -----------------------------------------------------------------------------

// modeFor maps a line coding onto go.bug.st/serial's Mode.
func modeFor(lc types.LineCoding) *serial.Mode {
	m := &serial.Mode{
		BaudRate: int(lc.Baud),
		DataBits: int(lc.DataBits),
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	switch lc.Parity {
	case types.ParityEven:
		m.Parity = serial.EvenParity
	case types.ParityOdd:
		m.Parity = serial.OddParity
	}
	if lc.StopBits == 2 {
		m.StopBits = serial.TwoStopBits
	}
	return m
}

// device is the subset of serial.Port the bench needs.
type device interface {
	io.ReadWriteCloser
	SetMode(*serial.Mode) error
}

// serialPort gives a blocking serial device the engine's non-blocking read
// side: a pump goroutine copies into an SPSC ring that the loop drains.
type serialPort struct {
	dev  device
	rx   *shmring.Ring
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

func openSerial(path string, baud uint32) (*serialPort, error) {
	if baud == 0 {
		baud = types.DefaultBaud
	}
	p, err := serial.Open(path, modeFor(types.LineCoding8N1(baud)))
	if err != nil {
		return nil, &errcode.E{C: errcode.OpenFailed, Op: "platform.serial", Msg: path, Err: err}
	}
	if err := p.SetReadTimeout(readTimeout); err != nil {
		_ = p.Close()
		return nil, &errcode.E{C: errcode.OpenFailed, Op: "platform.serial", Msg: path, Err: err}
	}
	return newSerialPort(p), nil
}

func newSerialPort(dev device) *serialPort {
	s := &serialPort{
		dev:  dev,
		rx:   shmring.New(rxRingSize),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go s.pump()
	return s
}

func (s *serialPort) pump() {
	defer close(s.done)
	var buf [256]byte
	for {
		select {
		case <-s.stop:
			return
		default:
		}
		n, err := s.dev.Read(buf[:])
		if n > 0 && !s.push(buf[:n]) {
			return
		}
		// A timed-out read returns 0, nil; any error means the device is gone.
		if err != nil {
			return
		}
	}
}

// push waits for ring space rather than dropping bytes.
func (s *serialPort) push(b []byte) bool {
	for len(b) > 0 {
		n := s.rx.WriteFrom(b)
		b = b[n:]
		if len(b) == 0 {
			break
		}
		select {
		case <-s.stop:
			return false
		case <-time.After(time.Millisecond):
		}
	}
	return true
}

func (s *serialPort) Read(b []byte) (int, error) { return s.rx.ReadInto(b), nil }

func (s *serialPort) Write(b []byte) (int, error) { return s.dev.Write(b) }

func (s *serialPort) Buffered() int { return s.rx.Available() }

func (s *serialPort) ReadByte() (byte, error) {
	b, ok := s.rx.ReadByte()
	if !ok {
		return 0, errcode.NotReady
	}
	return b, nil
}

// Reconfigure applies lc. Bytes already queued in rx were received
// intact at the old rate and are still forwarded.
func (s *serialPort) Reconfigure(lc types.LineCoding) error {
	if !lc.Valid() {
		return &errcode.E{C: errcode.InvalidRate, Op: "platform.serial"}
	}
	return s.dev.SetMode(modeFor(lc))
}

func (s *serialPort) Close() error {
	var err error
	s.once.Do(func() {
		close(s.stop)
		err = s.dev.Close()
		<-s.done
	})
	return err
}

// benchHost is the primary port. The requested rate comes from
// SetRequestedBaud since a plain serial device carries no line coding.
type benchHost struct{ *serialPort }

func (h *benchHost) RequestedBaud() uint32 { return RequestedBaud() }

// stdoutPort is a write-only trace port.
type stdoutPort struct{ w io.Writer }

func (p stdoutPort) Read([]byte) (int, error)    { return 0, nil }
func (p stdoutPort) Write(b []byte) (int, error) { return p.w.Write(b) }
