// config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"sniffbridge-go/errcode"
)

func TestLookupCompiledBoards(t *testing.T) {
	names := Names()
	if len(names) != 2 || names[0] != "pico" || names[1] != "rp2040-zero" {
		t.Fatalf("Names = %v", names)
	}
	for _, n := range names {
		b, err := Lookup(n)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", n, err)
		}
		if err := Validate(&b); err != nil {
			t.Fatalf("compiled board %q invalid: %v", n, err)
		}
	}
	if _, err := Lookup("esp32"); errcode.Of(err) != errcode.UnknownBoard {
		t.Fatalf("Lookup(unknown) = %v, want unknown_board", err)
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	b, _ := Lookup("pico")
	b.UART.Baud = 1
	again, _ := Lookup("pico")
	if again.UART.Baud != 115200 {
		t.Fatalf("compiled table was mutated")
	}
}

func TestParseBenchYAML(t *testing.T) {
	raw := []byte(`
name: bench
uart:
  id: /dev/ttyUSB0
host:
  id: /dev/pts/7
  request_baud: 9600
led:
  kind: none
`)
	b, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if b.UART.ID != "/dev/ttyUSB0" || b.Host.ID != "/dev/pts/7" {
		t.Fatalf("ports not decoded: %+v", b)
	}
	if b.UART.Baud != 115200 {
		t.Fatalf("default baud = %d, want 115200", b.UART.Baud)
	}
	if b.Diag.ID != PortStdout || b.LED.Hold != 500 {
		t.Fatalf("defaults not applied: diag=%q hold=%d", b.Diag.ID, b.LED.Hold)
	}
	if b.Host.RequestBaud != 9600 {
		t.Fatalf("request_baud = %d", b.Host.RequestBaud)
	}
}

func TestValidateRejects(t *testing.T) {
	type C struct {
		name string
		yaml string
	}
	for _, c := range []C{
		{"missing uart", "host: {id: /dev/a}"},
		{"missing host", "uart: {id: /dev/a}"},
		{"host is uart", "uart: {id: /dev/a}\nhost: {id: /dev/a}"},
		{"diag clash", "uart: {id: /dev/a}\nhost: {id: /dev/b}\ndiag: {id: /dev/b}"},
		{"bad led", "uart: {id: /dev/a}\nhost: {id: /dev/b}\nled: {kind: neon}"},
		{"not yaml", "uart: [unclosed"},
	} {
		_, err := Parse([]byte(c.yaml))
		if errcode.Of(err) != errcode.InvalidConfig {
			t.Fatalf("%s: err = %v, want invalid_config", c.name, err)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "bench.yaml")
	if err := os.WriteFile(p, []byte("uart: {id: /dev/a, baud: 57600}\nhost: {id: /dev/b}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	b, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if b.UART.Baud != 57600 {
		t.Fatalf("baud = %d, want 57600", b.UART.Baud)
	}
	if _, err := Load(filepath.Join(dir, "missing.yaml")); errcode.Of(err) != errcode.InvalidConfig {
		t.Fatalf("Load(missing) = %v", err)
	}
}
