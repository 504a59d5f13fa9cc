//go:build rp2040

package platform

import (
	"device/rp"
	"image/color"
	"machine"
	"machine/usb"
	"machine/usb/descriptor"
	"time"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers/ws2812"

	"sniffbridge-go/errcode"
	"sniffbridge-go/services/bridge"
	"sniffbridge-go/services/config"
	"sniffbridge-go/types"
)

const (
	// usbFrame is the full-speed USB frame interval; the pacer wakes the
	// loop at least this often.
	usbFrame = time.Millisecond

	diagQueueSize = 2048
)

// Open claims the UARTs, the USB CDC port and the LED pin named by b.
// On the MCU a diag id of "stdout" means no trace port: println shares the
// USB CDC with the primary port.
func Open(b *config.Board) (*Resources, error) {
	r := &Resources{}

	dut, err := openUART(b.UART.ID, b.UART.TX, b.UART.RX, b.UART.Baud)
	if err != nil {
		return nil, err
	}

	if b.Host.ID != config.PortUSB {
		return nil, &errcode.E{C: errcode.UnknownBus, Op: "platform.open", Msg: "host must be usb, got " + b.Host.ID}
	}
	host := &cdcPort{s: machine.Serial}
	_ = machine.Serial.Configure(machine.UARTConfig{})
	hookLineCoding()

	var diag bridge.DiagPort
	diagPending := func() bool { return false }
	switch b.Diag.ID {
	case config.PortStdout, "":
	default:
		u, err := openUART(b.Diag.ID, b.Diag.TX, b.Diag.RX, b.Diag.Baud)
		if err != nil {
			return nil, err
		}
		d := &diagUART{txQueue: newTxQueue(pl011TX{u.u}, diagQueueSize), u: u.u}
		diag = d
		diagPending = func() bool { return d.Pending() > 0 }
	}

	led, err := openLED(b.LED)
	if err != nil {
		return nil, err
	}

	r.Ports = bridge.Ports{
		Transport: newPacer(func() bool {
			return host.s.Buffered() > 0 || dut.u.Buffered() > 0 || diagPending()
		}, usbFrame, nil),
		Host: host,
		Diag: diag,
		UART: dut,
		LED:  led,
	}
	r.Options = bridge.Options{InitialBaud: b.UART.Baud, HoldTicks: b.LED.Hold}
	return r, nil
}

// -----------------------------------------------------------------------------
// UART
// -----------------------------------------------------------------------------

// rp2UART adapts uartx to the engine's UART contract.
type rp2UART struct {
	u      *uartx.UART
	tx, rx machine.Pin
}

func openUART(id string, tx, rx int, baud uint32) (*rp2UART, error) {
	var hw *uartx.UART
	switch id {
	case "uart0":
		hw = uartx.UART0
	case "uart1":
		hw = uartx.UART1
	default:
		return nil, &errcode.E{C: errcode.UnknownBus, Op: "platform.uart", Msg: id}
	}
	p := &rp2UART{u: hw, tx: machine.Pin(tx), rx: machine.Pin(rx)}
	if err := p.Reconfigure(types.LineCoding8N1(baud)); err != nil {
		return nil, err
	}
	return p, nil
}

// Reconfigure resets the peripheral and brings it back at lc. Bytes still in
// the hardware FIFOs are lost; the software RX ring is kept.
func (p *rp2UART) Reconfigure(lc types.LineCoding) error {
	if !lc.Valid() {
		return &errcode.E{C: errcode.InvalidRate, Op: "platform.uart"}
	}
	if err := p.u.Configure(uartx.UARTConfig{BaudRate: lc.Baud, TX: p.tx, RX: p.rx}); err != nil {
		return err
	}
	var par uartx.UARTParity
	switch lc.Parity {
	case types.ParityEven:
		par = uartx.ParityEven
	case types.ParityOdd:
		par = uartx.ParityOdd
	default:
		par = uartx.ParityNone
	}
	return p.u.SetFormat(lc.DataBits, lc.StopBits, par)
}

func (p *rp2UART) Write(b []byte) (int, error) { return p.u.Write(b) }
func (p *rp2UART) Buffered() int               { return p.u.Buffered() }
func (p *rp2UART) ReadByte() (byte, error)     { return p.u.ReadByte() }

// pl011TX fills the PL011 TX FIFO directly. The diag UART is only ever
// written through it, so uartx's own TX path stays idle.
type pl011TX struct{ u *uartx.UART }

func (f pl011TX) Full() bool { return f.u.Bus.UARTFR.HasBits(rp.UART0_UARTFR_TXFF) }
func (f pl011TX) Put(b byte) { f.u.Bus.UARTDR.Set(uint32(b)) }

// diagUART is the trace port on a spare UART. Writes never wait for the
// wire; each loop iteration's drain read also tops up the FIFO.
type diagUART struct {
	*txQueue
	u *uartx.UART
}

func (d *diagUART) Read(b []byte) (int, error) {
	d.Kick()
	return d.u.Read(b)
}

// -----------------------------------------------------------------------------
// USB CDC
// -----------------------------------------------------------------------------

// cdcPort is the primary port on machine.Serial. Reads drain what the USB
// stack has already buffered and never wait for more.
type cdcPort struct{ s machine.Serialer }

func (c *cdcPort) Read(b []byte) (int, error) {
	n := 0
	for n < len(b) && c.s.Buffered() > 0 {
		v, err := c.s.ReadByte()
		if err != nil {
			break
		}
		b[n] = v
		n++
	}
	return n, nil
}

func (c *cdcPort) Write(b []byte) (int, error) { return c.s.Write(b) }

func (c *cdcPort) RequestedBaud() uint32 { return RequestedBaud() }

// line is fed from the USB interrupt.
var line = newCDCLine(SetRequestedBaud)

// hookLineCoding takes over the ACM interface's class requests so the
// host's SET_LINE_CODING reaches SetRequestedBaud. The stock handler keeps
// the line coding to itself. Endpoints set up by the CDC driver are kept.
func hookLineCoding() {
	machine.ConfigureUSBEndpoint(descriptor.CDC, nil, []usb.SetupConfig{
		{Index: usb.CDC_ACM_INTERFACE, Handler: cdcSetup},
	})
}

func cdcSetup(setup usb.Setup) bool {
	reply := line.handle(setup.BmRequestType, setup.BRequest, setup.WValueL, func() ([]byte, error) {
		b, err := machine.ReceiveUSBControlPacket()
		if err != nil {
			return nil, err
		}
		return b[:], nil
	})
	switch reply {
	case replyCoding:
		machine.SendUSBInPacket(0, line.coding[:])
	case replyAck:
		machine.SendZlp()
	case replyBootloader:
		machine.EnterBootloader()
	default:
		return false
	}
	return true
}

// -----------------------------------------------------------------------------
// LED
// -----------------------------------------------------------------------------

var ledColour = color.RGBA{R: 0, G: 32, B: 0}

func openLED(c config.LEDConfig) (OutputFunc, error) {
	switch c.Kind {
	case config.LEDNone, "":
		return NoLED, nil
	case config.LEDGPIO:
		pin := machine.Pin(c.Pin)
		pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
		return OutputFunc(pin.Set), nil
	case config.LEDWS2812:
		pin := machine.Pin(c.Pin)
		pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
		dev := ws2812.New(pin)
		px := make([]color.RGBA, 1)
		return OutputFunc(func(on bool) {
			if on {
				px[0] = ledColour
			} else {
				px[0] = color.RGBA{}
			}
			_ = dev.WriteColors(px)
		}), nil
	}
	return nil, &errcode.E{C: errcode.UnknownPin, Op: "platform.led", Msg: c.Kind}
}
