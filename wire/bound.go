package wire

import "fmt"

// Bound is the exclusive upper edge of a range: a timestamp plus an id
// prefix that disambiguates items sharing that timestamp. The prefix may be
// empty and is at most MaxIDPrefixSize bytes.
//
// On the wire the timestamp is delta-encoded against the previous bound in
// the message: TimestampInfinity encodes as varint 0, any other timestamp as
// varint 1+(timestamp-prev), with the subtraction saturating at zero.
// Successive bounds in a message are almost-sorted, so the delta keeps
// typical timestamps to one or two bytes instead of eight.
type Bound struct {
	// Timestamp is the bound's timestamp, or TimestampInfinity.
	Timestamp uint64

	// IDPrefix holds the first 0..MaxIDPrefixSize bytes of an id.
	IDPrefix []byte
}

// NewBound creates a Bound with a copy of idPrefix.
//
// Returns ErrInvalidBound if idPrefix is longer than MaxIDPrefixSize.
func NewBound(timestamp uint64, idPrefix []byte) (Bound, error) {
	if len(idPrefix) > MaxIDPrefixSize {
		return Bound{}, fmt.Errorf("%w: id prefix length %d exceeds maximum %d", ErrInvalidBound, len(idPrefix), MaxIDPrefixSize)
	}

	prefix := make([]byte, len(idPrefix))
	copy(prefix, idPrefix)

	return Bound{Timestamp: timestamp, IDPrefix: prefix}, nil
}

// InfiniteBound returns the bound that sorts after every item. It is the
// conventional upper bound of a message's final range.
func InfiniteBound() Bound {
	return Bound{Timestamp: TimestampInfinity}
}

// IsInfinite reports whether the bound carries the infinity sentinel.
func (b Bound) IsInfinite() bool {
	return b.Timestamp == TimestampInfinity
}

// Append encodes the bound relative to prevTimestamp and appends it to dst.
//
// The id prefix length is validated again here: a Bound assembled through a
// struct literal never passed NewBound, and a non-conformant frame must not
// leave the encoder. Returns ErrInvalidBound if the prefix is oversized.
func (b Bound) Append(dst []byte, prevTimestamp uint64) ([]byte, error) {
	if len(b.IDPrefix) > MaxIDPrefixSize {
		return nil, fmt.Errorf("%w: id prefix length %d exceeds maximum %d", ErrInvalidBound, len(b.IDPrefix), MaxIDPrefixSize)
	}

	if b.Timestamp == TimestampInfinity {
		dst = AppendVarint(dst, 0)
	} else {
		delta := b.Timestamp - prevTimestamp
		if b.Timestamp < prevTimestamp {
			delta = 0
		}
		dst = AppendVarint(dst, delta+1)
	}

	dst = AppendVarint(dst, uint64(len(b.IDPrefix)))
	dst = append(dst, b.IDPrefix...)

	return dst, nil
}

// DecodeBound decodes a bound from the start of data, resolving the
// delta-encoded timestamp against prevTimestamp. It returns the bound and
// the number of bytes consumed.
//
// Fails with ErrVarintDecode on a malformed varint and ErrInvalidBound on an
// oversized prefix length or a buffer that ends before the prefix does.
func DecodeBound(data []byte, prevTimestamp uint64) (Bound, int, error) {
	encoded, offset, err := DecodeVarint(data)
	if err != nil {
		return Bound{}, 0, err
	}

	timestamp := TimestampInfinity
	if encoded != 0 {
		timestamp = prevTimestamp + encoded - 1
	}

	prefixLen, n, err := DecodeVarint(data[offset:])
	if err != nil {
		return Bound{}, 0, err
	}
	offset += n

	if prefixLen > MaxIDPrefixSize {
		return Bound{}, 0, fmt.Errorf("%w: id prefix length %d exceeds maximum %d", ErrInvalidBound, prefixLen, MaxIDPrefixSize)
	}
	if uint64(len(data)-offset) < prefixLen {
		return Bound{}, 0, fmt.Errorf("%w: need %d prefix bytes, have %d", ErrInvalidBound, prefixLen, len(data)-offset)
	}

	prefix := make([]byte, prefixLen)
	copy(prefix, data[offset:offset+int(prefixLen)])
	offset += int(prefixLen)

	return Bound{Timestamp: timestamp, IDPrefix: prefix}, offset, nil
}
