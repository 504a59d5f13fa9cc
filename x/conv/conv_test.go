package conv

import (
	"strconv"
	"testing"
)

func TestHex8AllBytes(t *testing.T) {
	for i := 0; i < 256; i++ {
		want := strconv.FormatUint(uint64(i), 16)
		if len(want) == 1 {
			want = "0" + want
		}
		h := Hex8(byte(i))
		if got := string(h[:]); got != want {
			t.Fatalf("Hex8(%#02x) = %q, want %q", i, got, want)
		}
	}
}

func TestHex8Examples(t *testing.T) {
	for b, want := range map[byte]string{0x00: "00", 0xFF: "ff", 0x0A: "0a", 0xA0: "a0"} {
		h := Hex8(b)
		if string(h[:]) != want {
			t.Fatalf("Hex8(%#02x) = %q, want %q", b, string(h[:]), want)
		}
	}
}

func TestUtoa(t *testing.T) {
	var buf [20]byte
	for _, n := range []uint64{0, 7, 9600, 115200, 3000000, 4294967295} {
		if got, want := string(Utoa(buf[:], n)), strconv.FormatUint(n, 10); got != want {
			t.Fatalf("Utoa(%d) = %q, want %q", n, got, want)
		}
	}
	if got := Utoa(nil, 5); len(got) != 0 {
		t.Fatalf("Utoa(nil) = %q, want empty", got)
	}
}
