package record

import (
	"errors"
	"fmt"
	"iter"
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/negentropy/fingerprint"
	"github.com/arloliu/negentropy/wire"
)

var (
	// ErrSealed is returned by Insert after the vector has been sealed.
	ErrSealed = errors.New("vector already sealed")

	// ErrNotSealed is returned by query methods before Seal has been called.
	ErrNotSealed = errors.New("vector not sealed")

	// ErrDuplicateRecord is returned by Seal when the same (timestamp, id)
	// pair was inserted twice. Duplicates corrupt the count-sensitive range
	// fingerprints, so sealing refuses them outright.
	ErrDuplicateRecord = errors.New("duplicate record")
)

// Vector accumulates records, then seals into a sorted, queryable snapshot.
//
// Usage is two-phase: Insert any number of records, call Seal once, then
// serve Len/Record/All/Contains/Fingerprint/FindLowerBound queries. Sealing
// sorts the records into canonical order and builds a hash index over the
// ids for O(1) membership checks.
//
// A Vector is not safe for concurrent mutation; once sealed it is read-only
// and may be shared freely across goroutines.
type Vector struct {
	records []Record
	buckets map[uint64][]int
	sealed  bool
}

// NewVector creates an empty, unsealed vector.
func NewVector() *Vector {
	return &Vector{
		records: make([]Record, 0, 64),
	}
}

// Insert adds one record. Returns ErrSealed after Seal.
func (v *Vector) Insert(timestamp uint64, id wire.ID) error {
	if v.sealed {
		return ErrSealed
	}

	v.records = append(v.records, Record{Timestamp: timestamp, ID: id})

	return nil
}

// Seal sorts the records into canonical order, verifies there are no
// duplicates, and builds the membership index. Returns ErrDuplicateRecord
// if any (timestamp, id) pair appears twice, and ErrSealed on a second call.
func (v *Vector) Seal() error {
	if v.sealed {
		return ErrSealed
	}

	Sort(v.records)

	for i := 1; i < len(v.records); i++ {
		if Compare(v.records[i-1], v.records[i]) == 0 {
			return fmt.Errorf("%w: timestamp %d", ErrDuplicateRecord, v.records[i].Timestamp)
		}
	}

	v.buckets = make(map[uint64][]int, len(v.records))
	for i := range v.records {
		h := xxhash.Sum64(v.records[i].ID[:])
		v.buckets[h] = append(v.buckets[h], i)
	}

	v.sealed = true

	return nil
}

// Len returns the number of records.
func (v *Vector) Len() int {
	return len(v.records)
}

// Record returns the record at index i in canonical order. It panics on an
// out-of-range index, like a slice access.
func (v *Vector) Record(i int) Record {
	return v.records[i]
}

// All iterates the records in canonical order. Valid only after Seal.
func (v *Vector) All() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for _, rec := range v.records {
			if !yield(rec) {
				return
			}
		}
	}
}

// Contains reports whether any sealed record carries the given id. The hash
// index narrows the candidates; matches are confirmed byte-wise, so hash
// collisions cannot produce false positives.
func (v *Vector) Contains(id wire.ID) bool {
	if !v.sealed {
		return false
	}

	for _, i := range v.buckets[xxhash.Sum64(id[:])] {
		if v.records[i].ID == id {
			return true
		}
	}

	return false
}

// Fingerprint computes the order-independent digest of the ids in the
// half-open index interval [begin, end). Returns ErrNotSealed before Seal
// and an error on an out-of-range interval.
func (v *Vector) Fingerprint(begin, end int) (wire.Fingerprint, error) {
	if !v.sealed {
		return wire.Fingerprint{}, ErrNotSealed
	}
	if begin < 0 || end < begin || end > len(v.records) {
		return wire.Fingerprint{}, fmt.Errorf("fingerprint interval [%d, %d) out of range 0..%d", begin, end, len(v.records))
	}

	var acc fingerprint.Accumulator
	for i := begin; i < end; i++ {
		acc.Add(v.records[i].ID)
	}

	return acc.Fingerprint(), nil
}

// FindLowerBound returns the index of the first sealed record that does not
// sort before bound, or Len() when every record does. Producers use it to
// translate a range's bounds into index intervals.
func (v *Vector) FindLowerBound(bound wire.Bound) int {
	return sort.Search(len(v.records), func(i int) bool {
		return !LessThanBound(v.records[i], bound)
	})
}
