package config

import (
	"sort"

	"sniffbridge-go/errcode"
)

// -----------------------------------------------------------------------------
// Compiled-in boards
//
// Key: board name selected at build time (main.boardName).
// The Pico has one TinyGo CDC function on USB, so the trace goes out UART1
// (GP4/GP5) to a second USB-serial adapter, fast enough to keep up with the
// hex expansion of a 115200 bps link.
// -----------------------------------------------------------------------------

var boards = map[string]Board{
	"pico": {
		Name: "pico",
		UART: UARTConfig{ID: "uart0", TX: 0, RX: 1, Baud: 115200},
		Host: PortConfig{ID: PortUSB},
		Diag: PortConfig{ID: "uart1", TX: 4, RX: 5, Baud: 921600},
		LED:  LEDConfig{Kind: LEDGPIO, Pin: 25, Hold: 500},
	},
	"rp2040-zero": {
		Name: "rp2040-zero",
		UART: UARTConfig{ID: "uart0", TX: 0, RX: 1, Baud: 115200},
		Host: PortConfig{ID: PortUSB},
		Diag: PortConfig{ID: "uart1", TX: 4, RX: 5, Baud: 921600},
		LED:  LEDConfig{Kind: LEDWS2812, Pin: 16, Hold: 500},
	},
}

// Lookup returns a copy of the named compiled-in board.
func Lookup(name string) (Board, error) {
	b, ok := boards[name]
	if !ok {
		return Board{}, &errcode.E{C: errcode.UnknownBoard, Op: "config.lookup", Msg: name}
	}
	return b, nil
}

// Names lists the compiled-in boards, sorted.
func Names() []string {
	out := make([]string, 0, len(boards))
	for k := range boards {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
