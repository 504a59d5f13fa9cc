// platform/linecoding.go
package platform

import (
	"encoding/binary"

	"sniffbridge-go/types"
)

// -----------------------------------------------------------------------------
// CDC ACM line coding
// -----------------------------------------------------------------------------

// Class request codes and bmRequestType values for the ACM interface.
const (
	cdcSetLineCoding       = 0x20
	cdcGetLineCoding       = 0x21
	cdcSetControlLineState = 0x22
	cdcSendBreak           = 0x23

	reqClassInterfaceOut = 0x21 // host to device, class, interface
	reqClassInterfaceIn  = 0xA1 // device to host, class, interface

	lineStateDTR   = 0x01
	lineCodingSize = 7

	// A host that opens the port at 1200 bps and drops DTR asks for the
	// UF2 bootloader; tinygo flash relies on it.
	touchBaud = 1200
)

// decodeLineCoding parses the 7-byte payload of SET_LINE_CODING:
// dwDTERate (LE), bCharFormat, bParityType, bDataBits. ok is false when the
// payload is short or names a format the UART cannot carry; Baud is filled
// whenever the payload is long enough.
func decodeLineCoding(b []byte) (lc types.LineCoding, ok bool) {
	if len(b) < lineCodingSize {
		return types.LineCoding{}, false
	}
	lc.Baud = binary.LittleEndian.Uint32(b[0:4])
	lc.DataBits = b[6]
	switch b[4] {
	case 0:
		lc.StopBits = 1
	case 1, 2: // 1.5 is rounded up
		lc.StopBits = 2
	default:
		return lc, false
	}
	switch b[5] {
	case 0:
		lc.Parity = types.ParityNone
	case 1:
		lc.Parity = types.ParityOdd
	case 2:
		lc.Parity = types.ParityEven
	default: // mark, space
		return lc, false
	}
	return lc, lc.Valid()
}

func encodeLineCoding(lc types.LineCoding) (b [lineCodingSize]byte) {
	binary.LittleEndian.PutUint32(b[0:4], lc.Baud)
	if lc.StopBits == 2 {
		b[4] = 2
	}
	switch lc.Parity {
	case types.ParityOdd:
		b[5] = 1
	case types.ParityEven:
		b[5] = 2
	}
	b[6] = lc.DataBits
	return b
}

// cdcReply tells the USB glue how to finish a control transfer.
type cdcReply uint8

const (
	replyStall      cdcReply = iota // not ours
	replyAck                        // zero-length status
	replyCoding                     // send cdcLine.coding
	replyBootloader                 // 1200 bps touch: reboot to UF2
)

// cdcLine is the host-facing state of the ACM interface: the last line
// coding the host set (echoed back on GET_LINE_CODING) and the control
// line bits. onRate receives every non-zero rate the host sets.
type cdcLine struct {
	coding [lineCodingSize]byte
	state  uint8
	onRate func(uint32)
}

func newCDCLine(onRate func(uint32)) *cdcLine {
	return &cdcLine{coding: encodeLineCoding(types.LineCoding8N1(types.DefaultBaud)), onRate: onRate}
}

func (c *cdcLine) baud() uint32 { return binary.LittleEndian.Uint32(c.coding[0:4]) }

// handle processes one class request. recv reads the data stage of
// SET_LINE_CODING. It runs in the USB interrupt and must not block.
func (c *cdcLine) handle(bmRequestType, bRequest, wValueL uint8, recv func() ([]byte, error)) cdcReply {
	switch bmRequestType {
	case reqClassInterfaceIn:
		if bRequest == cdcGetLineCoding {
			return replyCoding
		}
		return replyStall
	case reqClassInterfaceOut:
	default:
		return replyStall
	}

	switch bRequest {
	case cdcSetLineCoding:
		b, err := recv()
		if err != nil || len(b) < lineCodingSize {
			return replyStall
		}
		copy(c.coding[:], b[:lineCodingSize])
		if lc, _ := decodeLineCoding(b); lc.Baud != 0 && c.onRate != nil {
			c.onRate(lc.Baud)
		}
	case cdcSetControlLineState:
		c.state = wValueL
	case cdcSendBreak:
		return replyAck
	default:
		return replyStall
	}

	if c.baud() == touchBaud && c.state&lineStateDTR == 0 {
		return replyBootloader
	}
	return replyAck
}
