// Package record defines the canonical ordering of (timestamp, id) pairs and
// a sealable store that serves range queries over them.
//
// Producers must apply this exact order before slicing items into id-list or
// fingerprint ranges; both sides of a reconciliation have to agree on it for
// their range bounds to line up.
package record

import (
	"bytes"
	"slices"

	"github.com/arloliu/negentropy/wire"
)

// Record is one item of the reconciled set: a timestamp plus its opaque id.
type Record struct {
	Timestamp uint64
	ID        wire.ID
}

// Compare orders records by ascending timestamp, ties broken by byte-wise
// ascending id. It returns -1, 0 or 1 in the manner of bytes.Compare.
func Compare(a, b Record) int {
	if a.Timestamp != b.Timestamp {
		if a.Timestamp < b.Timestamp {
			return -1
		}

		return 1
	}

	return bytes.Compare(a.ID[:], b.ID[:])
}

// Sort sorts records in place into the canonical order.
func Sort(records []Record) {
	slices.SortFunc(records, Compare)
}

// LessThanBound reports whether r sorts before the bound. The bound's id
// prefix is compared lexicographically, so a record whose id starts with the
// prefix does not sort before it.
func LessThanBound(r Record, b wire.Bound) bool {
	if r.Timestamp != b.Timestamp {
		return r.Timestamp < b.Timestamp
	}

	n := min(len(b.IDPrefix), wire.IDSize)
	if c := bytes.Compare(r.ID[:n], b.IDPrefix[:n]); c != 0 {
		return c < 0
	}

	return false
}
