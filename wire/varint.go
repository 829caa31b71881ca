package wire

import (
	"fmt"
	"math"
)

// AppendVarint appends v to dst as a base-128 varint and returns the
// extended slice.
//
// Digits are emitted most significant first; every byte except the last has
// the 0x80 continuation bit set. Zero encodes as the single byte 0x00. The
// encoding spans 1 to 10 bytes depending on magnitude:
//   - 0..127: 1 byte
//   - 128..16383: 2 bytes
//   - math.MaxUint64: 10 bytes
func AppendVarint(dst []byte, v uint64) []byte {
	if v == 0 {
		return append(dst, 0x00)
	}

	var tmp [maxVarintLen]byte
	pos := maxVarintLen
	for v != 0 {
		pos--
		tmp[pos] = byte(v & 0x7f)
		v >>= 7
	}
	for i := pos; i < maxVarintLen-1; i++ {
		tmp[i] |= 0x80
	}

	return append(dst, tmp[pos:]...)
}

// DecodeVarint decodes a base-128 varint from the start of data.
//
// It returns the decoded value and the number of bytes consumed. Decoding
// fails with ErrVarintDecode when data is empty, when the buffer ends before
// a byte with a clear continuation bit, or when the accumulated value would
// overflow a uint64.
func DecodeVarint(data []byte) (uint64, int, error) {
	if len(data) == 0 {
		return 0, 0, fmt.Errorf("%w: empty input", ErrVarintDecode)
	}

	var value uint64
	for i, b := range data {
		if i >= maxVarintLen || value > math.MaxUint64>>7 {
			return 0, 0, fmt.Errorf("%w: value overflows uint64", ErrVarintDecode)
		}

		value = value<<7 | uint64(b&0x7f)
		if b&0x80 == 0 {
			return value, i + 1, nil
		}
	}

	return 0, 0, fmt.Errorf("%w: truncated input", ErrVarintDecode)
}
