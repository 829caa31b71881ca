// Package negentropy implements the wire codec of the negentropy
// range-based set-reconciliation protocol: a binary message format, an
// order-independent set fingerprint, canonical record ordering, and the JSON
// envelope frames that carry binary messages over a pub/sub channel.
//
// Two parties holding large, mostly-overlapping ordered sets use these
// messages to discover which items differ while exchanging a near-minimal
// number of bytes. This module covers the codec only; the reconciliation
// decision algorithm that chooses which ranges to subdivide consumes and
// produces the structures defined here but lives with the caller.
//
// # Package Structure
//
//   - wire: varint, bound, range and message codecs plus the typed decode
//     error taxonomy
//   - fingerprint: the 16-byte order-independent digest of an id set
//   - record: canonical (timestamp, id) ordering and the sealable Vector
//     store serving range queries
//   - envelope: the NEG-OPEN / NEG-MSG / NEG-ERR / NEG-CLOSE JSON frames
//   - transcript: session frame capture with optional compression
//
// # Basic Usage
//
// Encoding a message:
//
//	msg := &negentropy.Message{Ranges: []negentropy.Range{
//	    {UpperBound: bound, Payload: wire.FingerprintPayload{Fingerprint: fp}},
//	    {UpperBound: wire.InfiniteBound(), Payload: wire.SkipPayload{}},
//	}}
//	hexMsg, _ := msg.EncodeHex()
//	frame, _ := json.Marshal(envelope.NewNegMsg(subID, hexMsg))
//
// Decoding one received over an envelope:
//
//	msg, err := negentropy.DecodeMessageHex(env.Message)
//
// This package re-exports the most common types and operations; use the
// subpackages directly for the full surface.
package negentropy

import (
	"github.com/arloliu/negentropy/fingerprint"
	"github.com/arloliu/negentropy/record"
	"github.com/arloliu/negentropy/wire"
)

// Aliases for the types most callers touch.
type (
	ID          = wire.ID
	Fingerprint = wire.Fingerprint
	Bound       = wire.Bound
	Range       = wire.Range
	Message     = wire.Message
	Record      = record.Record
)

const (
	// ProtocolVersion is the supported protocol version byte.
	ProtocolVersion = wire.ProtocolVersion

	// IDSize is the exact size of an item id in bytes.
	IDSize = wire.IDSize

	// FingerprintSize is the size of a range fingerprint in bytes.
	FingerprintSize = wire.FingerprintSize
)

// DecodeMessage parses a binary protocol frame.
func DecodeMessage(data []byte) (*Message, error) {
	return wire.DecodeMessage(data)
}

// DecodeMessageHex parses a hex-encoded protocol frame, the representation
// carried inside envelope frames.
func DecodeMessageHex(s string) (*Message, error) {
	return wire.DecodeMessageHex(s)
}

// CalculateFingerprint returns the order-independent digest of ids.
func CalculateFingerprint(ids []ID) Fingerprint {
	return fingerprint.Calculate(ids)
}

// SortRecords sorts records in place into the canonical order both sides of
// a reconciliation must agree on: ascending timestamp, ties broken by
// byte-wise ascending id.
func SortRecords(records []Record) {
	record.Sort(records)
}
