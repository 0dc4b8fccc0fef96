// Package base32 decodes the RFC 4648 base32 alphabet used by legacy btih info hashes.
package base32

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInputType = errors.New("base32: decode only takes []byte or string")
	ErrInvalidCharacter = errors.New("base32: invalid character")
)

const (
	tableOffset = 0x30
	invalid     = 0xff
	padding     = '='
)

// byteTable maps c-0x30 to its 5-bit value. Upper and lower case letters share values.
var byteTable = [80]byte{
	0xff, 0xff, 0x1a, 0x1b, 0x1c, 0x1d, 0x1e, 0x1f,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06,
	0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e,
	0x0f, 0x10, 0x11, 0x12, 0x13, 0x14, 0x15, 0x16,
	0x17, 0x18, 0x19, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06,
	0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e,
	0x0f, 0x10, 0x11, 0x12, 0x13, 0x14, 0x15, 0x16,
	0x17, 0x18, 0x19, 0xff, 0xff, 0xff, 0xff, 0xff,
}

// Decode decodes encoded, which must be a string or a []byte.
// Decoding stops at the first '=' and returns the whole bytes decoded so far.
func Decode(encoded any) ([]byte, error) {
	var src []byte
	switch v := encoded.(type) {
	case []byte:
		src = v
	case string:
		src = []byte(v)
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidInputType, encoded)
	}
	return decode(src)
}

// DecodeString is Decode for callers that already hold a string.
func DecodeString(s string) ([]byte, error) {
	return decode([]byte(s))
}

func decode(src []byte) ([]byte, error) {
	decoded := make([]byte, 0, (len(src)*5+7)/8)

	// shiftIndex counts the bits already buffered in plainChar.
	shiftIndex := 0
	var plainChar byte

	for i, c := range src {
		if c == padding {
			break
		}
		idx := int(c) - tableOffset
		if idx < 0 || idx >= len(byteTable) || byteTable[idx] == invalid {
			return nil, fmt.Errorf("%w %q at offset %d", ErrInvalidCharacter, c, i)
		}
		digit := byteTable[idx]

		if shiftIndex <= 3 {
			shiftIndex = (shiftIndex + 5) % 8
			if shiftIndex == 0 {
				plainChar |= digit
				decoded = append(decoded, plainChar)
				plainChar = 0
			} else {
				plainChar |= digit << (8 - shiftIndex)
			}
		} else {
			shiftIndex = (shiftIndex + 5) % 8
			plainChar |= digit >> shiftIndex
			decoded = append(decoded, plainChar)
			plainChar = digit << (8 - shiftIndex)
		}
	}
	return decoded, nil
}
