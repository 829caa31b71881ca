package wire

import "fmt"

// RangeMode identifies the payload carried by a range.
type RangeMode uint8

const (
	ModeSkip        RangeMode = 0 // ModeSkip carries no payload bytes.
	ModeFingerprint RangeMode = 1 // ModeFingerprint carries a 16-byte digest.
	ModeIDList      RangeMode = 2 // ModeIDList carries an explicit id list.
)

func (m RangeMode) String() string {
	switch m {
	case ModeSkip:
		return "Skip"
	case ModeFingerprint:
		return "Fingerprint"
	case ModeIDList:
		return "IDList"
	default:
		return "Unknown"
	}
}

// RangePayload is the mode-tagged payload of a range. The set of
// implementations is closed: SkipPayload, FingerprintPayload and
// IDListPayload are the only three, matching the three wire modes.
type RangePayload interface {
	// Mode returns the wire mode tag for this payload.
	Mode() RangeMode

	appendPayload(dst []byte) []byte
}

// SkipPayload marks a range the sender has nothing to say about.
type SkipPayload struct{}

func (SkipPayload) Mode() RangeMode { return ModeSkip }

func (SkipPayload) appendPayload(dst []byte) []byte { return dst }

// FingerprintPayload carries the order-independent digest of the sender's
// items within the range.
type FingerprintPayload struct {
	Fingerprint Fingerprint
}

func (FingerprintPayload) Mode() RangeMode { return ModeFingerprint }

func (p FingerprintPayload) appendPayload(dst []byte) []byte {
	return append(dst, p.Fingerprint[:]...)
}

// IDListPayload carries the sender's full id list for the range.
type IDListPayload struct {
	IDs []ID
}

func (IDListPayload) Mode() RangeMode { return ModeIDList }

func (p IDListPayload) appendPayload(dst []byte) []byte {
	dst = AppendVarint(dst, uint64(len(p.IDs)))
	for i := range p.IDs {
		dst = append(dst, p.IDs[i][:]...)
	}

	return dst
}

// Range is one segment of the compared set: an exclusive upper bound plus a
// mode-tagged payload. Ranges are meant to appear in a message in increasing
// bound order; the codec does not enforce monotonicity, the producer must.
type Range struct {
	UpperBound Bound
	Payload    RangePayload
}

// Append encodes the range relative to prevTimestamp and appends it to dst.
// It returns the extended slice and the range's upper-bound timestamp, which
// the caller threads into the next range's encode.
func (r Range) Append(dst []byte, prevTimestamp uint64) ([]byte, uint64, error) {
	dst, err := r.UpperBound.Append(dst, prevTimestamp)
	if err != nil {
		return nil, 0, err
	}

	dst = AppendVarint(dst, uint64(r.Payload.Mode()))
	dst = r.Payload.appendPayload(dst)

	return dst, r.UpperBound.Timestamp, nil
}

// DecodeRange decodes one range from the start of data. It returns the
// range, the number of bytes consumed, and the range's upper-bound timestamp
// for the caller to thread into the next decode.
//
// Fails with ErrInvalidMode on an unknown mode varint and ErrInvalidRange on
// truncated fingerprint or id bytes; varint and bound errors surface
// unchanged.
func DecodeRange(data []byte, prevTimestamp uint64) (Range, int, uint64, error) {
	bound, offset, err := DecodeBound(data, prevTimestamp)
	if err != nil {
		return Range{}, 0, 0, err
	}

	mode, n, err := DecodeVarint(data[offset:])
	if err != nil {
		return Range{}, 0, 0, err
	}
	offset += n

	// Match on the raw varint value: converting to RangeMode first would
	// truncate to 8 bits and accept any mode congruent to a known one.
	var payload RangePayload
	switch mode {
	case uint64(ModeSkip):
		payload = SkipPayload{}

	case uint64(ModeFingerprint):
		if len(data)-offset < FingerprintSize {
			return Range{}, 0, 0, fmt.Errorf("%w: need %d fingerprint bytes, have %d", ErrInvalidRange, FingerprintSize, len(data)-offset)
		}
		var fp Fingerprint
		copy(fp[:], data[offset:offset+FingerprintSize])
		offset += FingerprintSize
		payload = FingerprintPayload{Fingerprint: fp}

	case uint64(ModeIDList):
		count, n, err := DecodeVarint(data[offset:])
		if err != nil {
			return Range{}, 0, 0, err
		}
		offset += n

		// Prove the buffer covers the claimed count before allocating, so a
		// crafted length prefix cannot force a large allocation.
		if count > uint64(len(data)-offset)/IDSize {
			return Range{}, 0, 0, fmt.Errorf("%w: need %d id bytes, have %d", ErrInvalidRange, count*IDSize, len(data)-offset)
		}

		ids := make([]ID, count)
		for i := range ids {
			copy(ids[i][:], data[offset:offset+IDSize])
			offset += IDSize
		}
		payload = IDListPayload{IDs: ids}

	default:
		return Range{}, 0, 0, fmt.Errorf("%w: %d", ErrInvalidMode, mode)
	}

	return Range{UpperBound: bound, Payload: payload}, offset, bound.Timestamp, nil
}
