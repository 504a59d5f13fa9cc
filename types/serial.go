package types

// ------------------------
// Serial
// ------------------------

type Parity uint8

const (
	ParityNone Parity = iota
	ParityEven
	ParityOdd
)

func (p Parity) String() string {
	switch p {
	case ParityEven:
		return "even"
	case ParityOdd:
		return "odd"
	default:
		return "none"
	}
}

// DefaultBaud is the UART rate applied at start-up, before the host asks
// for anything else.
const DefaultBaud uint32 = 115200

// LineCoding is the subset of CDC line coding that is mirrored onto the
// hardware UART.
type LineCoding struct {
	Baud     uint32
	DataBits uint8
	StopBits uint8
	Parity   Parity
}

// LineCoding8N1 returns baud with 8 data bits, no parity, 1 stop bit.
func LineCoding8N1(baud uint32) LineCoding {
	return LineCoding{Baud: baud, DataBits: 8, StopBits: 1, Parity: ParityNone}
}

func (lc LineCoding) Valid() bool {
	return lc.Baud > 0 &&
		lc.DataBits >= 5 && lc.DataBits <= 8 &&
		(lc.StopBits == 1 || lc.StopBits == 2)
}
