package packet

import (
	"fmt"
	"strings"
)

// Bits is an ordered bit sequence, most significant bit first.
type Bits []bool

// ParseBits parses a string of '0' and '1', whitespace is ignored.
func ParseBits(s string) (Bits, error) {
	b := make(Bits, 0, len(s))
	for i, r := range s {
		switch r {
		case '0':
			b = append(b, false)
		case '1':
			b = append(b, true)
		case ' ', '\t', '\n', '\r', '_':
		default:
			return nil, fmt.Errorf("invalid bit %q at %d", r, i)
		}
	}
	return b, nil
}

// MustParseBits is ParseBits which panics on error.
func MustParseBits(s string) Bits {
	b, err := ParseBits(s)
	if err != nil {
		panic(err)
	}
	return b
}

// String renders bits in groups of 8.
func (b Bits) String() string {
	var sb strings.Builder
	for i, v := range b {
		if i > 0 && i%8 == 0 {
			sb.WriteByte(' ')
		}
		if v {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func (b Bits) append(v uint32, n int) Bits {
	for i := n - 1; i >= 0; i-- {
		b = append(b, (v>>uint(i))&1 == 1)
	}
	return b
}

func (b Bits) value(off, n int) uint32 {
	var v uint32
	for _, bit := range b[off : off+n] {
		v <<= 1
		if bit {
			v |= 1
		}
	}
	return v
}
