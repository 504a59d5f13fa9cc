// Package trace renders bridged bytes as a source-labelled hex trace.
//
// Output looks like:
//
//	[PC->DUT]
//	41 42 43
//	[DUT->PC]
//	06
//
// Each run of bytes from one side starts with a header line. A run wraps after
// WrapWidth bytes. Line breaks are CRLF. All writes to the diagnostic channel
// are best-effort: errors and short writes are ignored and never roll back
// state.
package trace

import (
	"io"

	"sniffbridge-go/x/conv"
)

// Source identifies which side of the bridge a byte came from.
type Source uint8

const (
	SourceNone   Source = iota // no open trace line
	SourceHost                 // PC -> DUT
	SourceDevice               // DUT -> PC
)

func (s Source) String() string {
	switch s {
	case SourceHost:
		return "host"
	case SourceDevice:
		return "device"
	default:
		return "none"
	}
}

// WrapWidth is the number of hex pairs per trace line.
const WrapWidth = 16

var (
	crlf         = []byte("\r\n")
	headerHost   = []byte("[PC->DUT]\r\n")
	headerDevice = []byte("[DUT->PC]\r\n")
)

func header(s Source) []byte {
	if s == SourceDevice {
		return headerDevice
	}
	return headerHost
}

// Mux owns the trace line state and the diagnostic writer.
// It is not safe for concurrent use.
type Mux struct {
	out    io.Writer
	active Source
	onLine int
	cell   [3]byte // "hh "
}

// New returns a Mux writing to out. A nil out discards everything.
func New(out io.Writer) *Mux {
	if out == nil {
		out = io.Discard
	}
	return &Mux{out: out}
}

// State reports the active source and the number of bytes on its line.
func (m *Mux) State() (Source, int) { return m.active, m.onLine }

// Open reports whether a trace line is currently open.
func (m *Mux) Open() bool { return m.active != SourceNone }

// EmitByte appends b to the trace, attributed to src.
func (m *Mux) EmitByte(src Source, b byte) {
	if src == SourceNone {
		return
	}
	if src != m.active {
		if m.active != SourceNone {
			m.write(crlf)
		}
		m.write(header(src))
		m.active = src
		m.onLine = 0
	}
	if m.onLine >= WrapWidth {
		m.write(crlf)
		m.onLine = 0
	}
	h := conv.Hex8(b)
	m.cell[0], m.cell[1], m.cell[2] = h[0], h[1], ' '
	m.write(m.cell[:])
	m.onLine++
}

// EmitBytes traces p in order, attributed to src.
func (m *Mux) EmitBytes(src Source, p []byte) {
	for _, b := range p {
		m.EmitByte(src, b)
	}
}

// Flush closes the open line, if any. Calling it again is a no-op.
func (m *Mux) Flush() {
	if m.active == SourceNone {
		return
	}
	m.write(crlf)
	m.active = SourceNone
	m.onLine = 0
}

// Notify writes text verbatim, bypassing hex formatting and wrapping.
// Callers flush first if a line may be open.
func (m *Mux) Notify(text []byte) { m.write(text) }

func (m *Mux) write(p []byte) { _, _ = m.out.Write(p) }
