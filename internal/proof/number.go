package proof

import "fmt"

// EncodeNumber renders n (n >= 1) as a compressed-proof code: zero or more
// non-terminator digits (U-Y, base 5) followed by exactly one terminator
// digit (A-T, base 20), most significant digit first.
func EncodeNumber(n int) string {
	if n < 1 {
		panic(fmt.Sprintf("proof.EncodeNumber: n must be >= 1, got %d", n))
	}

	n--
	digits := []byte{byte('A' + n%20)}
	n /= 20
	for n > 0 {
		n--
		digits = append(digits, byte('U'+n%5))
		n /= 5
	}
	reverse(digits)
	return string(digits)
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// DecodeNumber reads one compressed-proof number starting at code[pos],
// returning its value and the position just past its terminator digit.
// code[pos] must not be '?' — callers dispatch that before calling
// DecodeNumber; a 'Z' met before the terminator digit (including at
// code[pos]) is reported as a CompressedProofSyntaxError.
func DecodeNumber(code []byte, pos int) (n int, next int, err error) {
	acc := 0
	i := pos
	for {
		if i >= len(code) {
			return 0, i, &CompressedProofSyntaxError{Detail: "truncated number"}
		}
		c := code[i]
		switch {
		case c >= 'A' && c <= 'T':
			acc = acc*20 + int(c-'A') + 1
			return acc, i + 1, nil
		case c >= 'U' && c <= 'Y':
			acc = acc*5 + int(c-'U') + 1
			i++
		case c == 'Z':
			return 0, i, &CompressedProofSyntaxError{Detail: "Z found before number complete"}
		default:
			return 0, i, &CompressedProofSyntaxError{Detail: fmt.Sprintf("invalid character %q in compressed proof", c)}
		}
	}
}
