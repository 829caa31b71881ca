// Package wire implements the binary frame format of the negentropy
// range-based set-reconciliation protocol (protocol V1).
//
// A frame is a single version byte (0x61) followed by a sequence of ranges
// encoded back-to-back. Each range carries an exclusive upper bound
// (a delta-compressed timestamp plus an id prefix) and a mode-tagged payload:
// skip (no bytes), a 16-byte fingerprint, or an explicit id list.
//
// All integers on the wire are base-128 varints with the most significant
// digit first; every byte except the last has the 0x80 continuation bit set.
// Timestamps are delta-encoded against the previous range's upper bound, so
// encode and decode thread the previous timestamp explicitly through every
// call rather than keeping mutable codec state.
//
// Every function in this package is pure: it reads only its arguments, owns
// every byte it returns, and is safe to call from any number of goroutines.
// Decoding fails fast with a typed error on the first malformed field and
// never returns partial results.
package wire
