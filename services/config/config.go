// config/config.go
package config

// Board is the resource plan for one bridge build: which UART talks to the
// device under test, where the host and trace ports live, and how the
// activity LED is driven. Firmware uses the compiled-in table; the bench
// build loads the same shape from YAML.
type Board struct {
	Name string     `yaml:"name"`
	UART UARTConfig `yaml:"uart"`
	Host PortConfig `yaml:"host"`
	Diag PortConfig `yaml:"diag"`
	LED  LEDConfig  `yaml:"led"`
}

// UARTConfig selects the link to the device under test.
type UARTConfig struct {
	ID   string `yaml:"id"`   // "uart0" | "uart1" on MCU; device path on host
	TX   int    `yaml:"tx"`   // MCU pin numbers (GPxx); ignored on host
	RX   int    `yaml:"rx"`
	Baud uint32 `yaml:"baud"` // initial rate; default 115200
}

// PortConfig selects a host-facing channel.
type PortConfig struct {
	ID   string `yaml:"id"` // "usb" | "uart1" on MCU; device path or "stdout" on host
	TX   int    `yaml:"tx"`
	RX   int    `yaml:"rx"`
	Baud uint32 `yaml:"baud"` // fixed rate when the port is itself a UART

	// RequestBaud stands in for the CDC line coding on hosts where the
	// primary port is a plain serial device. 0 means no request.
	RequestBaud uint32 `yaml:"request_baud"`
}

// LED kinds.
const (
	LEDNone   = "none"
	LEDGPIO   = "gpio"
	LEDWS2812 = "ws2812"
)

// LEDConfig describes the activity indicator.
type LEDConfig struct {
	Kind string `yaml:"kind"`
	Pin  int    `yaml:"pin"`
	Hold uint16 `yaml:"hold"` // loop iterations; default 500
}

// Well-known port ids.
const (
	PortUSB    = "usb"
	PortStdout = "stdout"
)
