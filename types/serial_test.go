package types

import "testing"

func TestLineCoding8N1(t *testing.T) {
	lc := LineCoding8N1(9600)
	if lc.Baud != 9600 || lc.DataBits != 8 || lc.StopBits != 1 || lc.Parity != ParityNone {
		t.Fatalf("unexpected line coding: %+v", lc)
	}
	if !lc.Valid() {
		t.Fatalf("8N1 should be valid")
	}
	if LineCoding8N1(0).Valid() {
		t.Fatalf("zero baud should be invalid")
	}
}

func TestParityString(t *testing.T) {
	for p, want := range map[Parity]string{ParityNone: "none", ParityEven: "even", ParityOdd: "odd"} {
		if got := p.String(); got != want {
			t.Fatalf("Parity(%d).String() = %q, want %q", p, got, want)
		}
	}
}
