// Package segfile reads and writes segment sets. The native format is a semicolon separated file with the
// header x1;y1;x2;y2 where every coordinate is the IEEE-754 bit pattern of a float64 written as 64 binary
// digits, most significant bit first, so that values survive a round trip bit for bit.
package segfile

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// BitsLen is the number of characters of an encoded float64.
const BitsLen = 64

// ErrBadBits is returned for a field that is not a 64 character binary string.
var ErrBadBits = errors.New("bad bit pattern")

// AppendBits appends the bit pattern of f as 64 binary digits.
func AppendBits(b []byte, f float64) []byte {
	bits := math.Float64bits(f)
	for i := BitsLen - 1; 0 <= i; i-- {
		b = append(b, '0'+byte(bits>>i&1))
	}
	return b
}

// EncodeBits returns the bit pattern of f as 64 binary digits.
func EncodeBits(f float64) string {
	return string(AppendBits(make([]byte, 0, BitsLen), f))
}

// DecodeBits returns the float64 with the bit pattern given by 64 binary digits.
func DecodeBits(b []byte) (float64, error) {
	if len(b) != BitsLen {
		return 0.0, errors.Wrapf(ErrBadBits, "length %d instead of %d", len(b), BitsLen)
	}
	var bits uint64
	for i, c := range b {
		if c != '0' && c != '1' {
			return 0.0, errors.Wrapf(ErrBadBits, "character %s at %d", strconv.QuoteRune(rune(c)), i)
		}
		bits = bits<<1 | uint64(c-'0')
	}
	return math.Float64frombits(bits), nil
}
