package config

import (
	"sniffbridge-go/errcode"
	"sniffbridge-go/types"
)

// Validate checks a board plan. It does not mutate b.
func Validate(b *Board) error {
	if b == nil {
		return &errcode.E{C: errcode.InvalidConfig, Op: "config.validate", Msg: "nil board"}
	}
	bad := func(msg string) error {
		return &errcode.E{C: errcode.InvalidConfig, Op: "config.validate", Msg: msg}
	}
	if b.UART.ID == "" {
		return bad("uart.id is required")
	}
	if b.Host.ID == "" {
		return bad("host.id is required")
	}
	if b.Host.ID == b.UART.ID {
		return bad("host and uart must be different ports")
	}
	if b.Diag.ID != "" && (b.Diag.ID == b.UART.ID || b.Diag.ID == b.Host.ID) {
		return bad("diag must not share a port with host or uart")
	}
	switch b.LED.Kind {
	case "", LEDNone, LEDGPIO, LEDWS2812:
	default:
		return bad("led.kind must be none, gpio or ws2812")
	}
	if (b.LED.Kind == LEDGPIO || b.LED.Kind == LEDWS2812) && b.LED.Pin < 0 {
		return bad("led.pin must be >= 0")
	}
	return nil
}

// Normalize fills defaults. Call it after Validate.
func Normalize(b *Board) {
	if b == nil {
		return
	}
	if b.UART.Baud == 0 {
		b.UART.Baud = types.DefaultBaud
	}
	if b.Diag.ID == "" {
		b.Diag.ID = PortStdout
	}
	if b.LED.Kind == "" {
		b.LED.Kind = LEDNone
	}
	if b.LED.Hold == 0 {
		b.LED.Hold = 500
	}
}
