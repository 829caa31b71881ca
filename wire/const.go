package wire

import (
	"fmt"
	"math"
)

const (
	// ProtocolVersion is the single supported protocol version byte ("V1").
	ProtocolVersion byte = 0x61

	// IDSize is the exact size of an item id in bytes.
	IDSize = 32

	// FingerprintSize is the size of a range fingerprint in bytes.
	FingerprintSize = 16

	// MaxIDPrefixSize is the maximum length of a bound's id prefix.
	MaxIDPrefixSize = 32

	// TimestampInfinity is the reserved sentinel meaning "after every
	// possible timestamp". It encodes as varint 0 on the wire.
	TimestampInfinity uint64 = math.MaxUint64

	// maxVarintLen is the largest number of bytes a uint64 varint may span.
	maxVarintLen = 10
)

// ID is an opaque 32-byte item identifier. The codec never interprets its
// contents beyond byte-wise comparison.
type ID [IDSize]byte

// Fingerprint is the 16-byte order-independent digest of a set of ids.
type Fingerprint [FingerprintSize]byte

// IDFromBytes converts a byte slice into an ID.
//
// Returns ErrInvalidIDLength if the slice is not exactly IDSize bytes.
func IDFromBytes(b []byte) (ID, error) {
	var id ID
	if len(b) != IDSize {
		return id, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidIDLength, len(b), IDSize)
	}
	copy(id[:], b)

	return id, nil
}

// FingerprintFromBytes converts a byte slice into a Fingerprint.
//
// Returns ErrInvalidFingerprintLength if the slice is not exactly
// FingerprintSize bytes.
func FingerprintFromBytes(b []byte) (Fingerprint, error) {
	var fp Fingerprint
	if len(b) != FingerprintSize {
		return fp, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidFingerprintLength, len(b), FingerprintSize)
	}
	copy(fp[:], b)

	return fp, nil
}
