package wire

import "errors"

// Sentinel errors returned by the frame codec. Decode errors wrap one of
// these with detail about the offending value, so callers can discriminate
// with errors.Is while logs keep the specifics.
var (
	// ErrInvalidProtocolVersion is returned when a message does not start
	// with the supported version byte.
	ErrInvalidProtocolVersion = errors.New("invalid protocol version")

	// ErrInvalidMode is returned when a range's mode varint is outside the
	// known set {skip, fingerprint, id list}.
	ErrInvalidMode = errors.New("invalid range mode")

	// ErrInvalidHex is returned when a hex-encoded message cannot be decoded
	// into bytes.
	ErrInvalidHex = errors.New("invalid hex encoding")

	// ErrVarintDecode is returned when a varint is empty, truncated, or
	// would overflow a uint64.
	ErrVarintDecode = errors.New("varint decode failed")

	// ErrInvalidBound is returned when a bound carries an oversized id
	// prefix or the buffer ends before the prefix does.
	ErrInvalidBound = errors.New("invalid bound")

	// ErrInvalidRange is returned when a range payload is truncated.
	ErrInvalidRange = errors.New("invalid range")

	// ErrInvalidFingerprintLength is returned when raw fingerprint bytes are
	// not exactly FingerprintSize long.
	ErrInvalidFingerprintLength = errors.New("invalid fingerprint length")

	// ErrInvalidIDLength is returned when raw id bytes are not exactly
	// IDSize long.
	ErrInvalidIDLength = errors.New("invalid id length")
)
