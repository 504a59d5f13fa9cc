package platform

import (
	"errors"
	"testing"

	"sniffbridge-go/types"
)

func TestDecodeLineCoding(t *testing.T) {
	type C struct {
		raw  []byte
		want types.LineCoding
		ok   bool
	}
	cases := []C{
		// 9600 8N1
		{[]byte{0x80, 0x25, 0x00, 0x00, 0, 0, 8}, types.LineCoding8N1(9600), true},
		// 115200 7E2
		{[]byte{0x00, 0xc2, 0x01, 0x00, 2, 2, 7},
			types.LineCoding{Baud: 115200, DataBits: 7, StopBits: 2, Parity: types.ParityEven}, true},
		// 921600 8O1
		{[]byte{0x00, 0x10, 0x0e, 0x00, 0, 1, 8},
			types.LineCoding{Baud: 921600, DataBits: 8, StopBits: 1, Parity: types.ParityOdd}, true},
		// mark parity: rate still reported
		{[]byte{0x80, 0x25, 0x00, 0x00, 0, 3, 8}, types.LineCoding{Baud: 9600, DataBits: 8, StopBits: 1}, false},
		// 16 data bits
		{[]byte{0x80, 0x25, 0x00, 0x00, 0, 0, 16}, types.LineCoding{Baud: 9600, DataBits: 16, StopBits: 1}, false},
		// short payload
		{[]byte{0x80, 0x25, 0x00}, types.LineCoding{}, false},
	}
	for i, c := range cases {
		got, ok := decodeLineCoding(c.raw)
		if got != c.want || ok != c.ok {
			t.Fatalf("case %d: got %+v,%v want %+v,%v", i, got, ok, c.want, c.ok)
		}
	}
}

func TestEncodeLineCodingRoundTrip(t *testing.T) {
	lc := types.LineCoding{Baud: 57600, DataBits: 7, StopBits: 2, Parity: types.ParityOdd}
	b := encodeLineCoding(lc)
	got, ok := decodeLineCoding(b[:])
	if !ok || got != lc {
		t.Fatalf("got %+v,%v want %+v", got, ok, lc)
	}
}

func TestCDCLineSetLineCodingReportsRate(t *testing.T) {
	var rates []uint32
	c := newCDCLine(func(b uint32) { rates = append(rates, b) })
	c.handle(reqClassInterfaceOut, cdcSetControlLineState, lineStateDTR, nil)

	payload := []byte{0x80, 0x25, 0x00, 0x00, 0, 0, 8}
	reply := c.handle(reqClassInterfaceOut, cdcSetLineCoding, 0, func() ([]byte, error) { return payload, nil })
	if reply != replyAck {
		t.Fatalf("reply = %d, want ack", reply)
	}
	if len(rates) != 1 || rates[0] != 9600 {
		t.Fatalf("rates = %v", rates)
	}
	if c.handle(reqClassInterfaceIn, cdcGetLineCoding, 0, nil) != replyCoding {
		t.Fatal("GET_LINE_CODING not answered")
	}
	if string(c.coding[:]) != string(payload) {
		t.Fatalf("coding = % x, want % x", c.coding, payload)
	}
}

func TestCDCLineDefaults(t *testing.T) {
	c := newCDCLine(nil)
	got, ok := decodeLineCoding(c.coding[:])
	if !ok || got != types.LineCoding8N1(types.DefaultBaud) {
		t.Fatalf("default coding = %+v,%v", got, ok)
	}
}

func TestCDCLineRejects(t *testing.T) {
	c := newCDCLine(func(uint32) { t.Fatal("no rate expected") })
	type C struct {
		bm, req uint8
		recv    func() ([]byte, error)
	}
	cases := []C{
		{0x80, 0x06, nil}, // standard GET_DESCRIPTOR
		{reqClassInterfaceIn, cdcSetLineCoding, nil},
		{reqClassInterfaceOut, 0x7f, nil},
		{reqClassInterfaceOut, cdcSetLineCoding, func() ([]byte, error) { return nil, errors.New("stall") }},
		{reqClassInterfaceOut, cdcSetLineCoding, func() ([]byte, error) { return []byte{1, 2}, nil }},
	}
	for i, cs := range cases {
		if r := c.handle(cs.bm, cs.req, 0, cs.recv); r != replyStall {
			t.Fatalf("case %d: reply = %d, want stall", i, r)
		}
	}
}

func TestCDCLineTouchReset(t *testing.T) {
	c := newCDCLine(nil)
	touch := []byte{0xb0, 0x04, 0x00, 0x00, 0, 0, 8} // 1200

	c.handle(reqClassInterfaceOut, cdcSetControlLineState, lineStateDTR, nil)
	if r := c.handle(reqClassInterfaceOut, cdcSetLineCoding, 0, func() ([]byte, error) { return touch, nil }); r != replyAck {
		t.Fatalf("1200 with DTR up: reply = %d, want ack", r)
	}
	if r := c.handle(reqClassInterfaceOut, cdcSetControlLineState, 0, nil); r != replyBootloader {
		t.Fatalf("DTR drop at 1200: reply = %d, want bootloader", r)
	}
	if r := c.handle(reqClassInterfaceOut, cdcSendBreak, 0, nil); r != replyAck {
		t.Fatalf("SEND_BREAK: reply = %d, want ack", r)
	}
}
