package conv

const hexDigits = "0123456789abcdef"

// Hex8 returns the two lowercase hex digits of b, high nibble first.
func Hex8(b byte) [2]byte {
	return [2]byte{hexDigits[b>>4], hexDigits[b&0x0F]}
}
