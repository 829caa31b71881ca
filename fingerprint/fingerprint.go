// Package fingerprint computes the order-independent 16-byte digest that
// summarizes a set of item ids. Two parties compare fingerprints of a range
// to detect a difference without transmitting the ids themselves.
//
// The digest is SHA-256 over the little-endian sum of the ids modulo 2^256,
// followed by the varint-encoded id count, truncated to 16 bytes. The sum
// makes the digest invariant under permutation; the count suffix makes it
// sensitive to the multiset size, so duplicating or dropping an id changes
// the result even when its value already appears.
package fingerprint

import (
	"crypto/sha256"

	"github.com/arloliu/negentropy/wire"
)

// Accumulator sums item ids modulo 2^256.
//
// Each 32-byte id is treated as an unsigned little-endian integer and added
// into a fixed 32-byte accumulator with byte-wise carry propagation; the
// carry out of the top byte is discarded. Addition is commutative, so the
// accumulated sum does not depend on insertion order.
//
// The zero value is ready to use. An Accumulator is not safe for concurrent
// use; each goroutine should keep its own.
type Accumulator struct {
	sum   [wire.IDSize]byte
	count uint64
}

// Reset returns the accumulator to its zero state.
func (a *Accumulator) Reset() {
	a.sum = [wire.IDSize]byte{}
	a.count = 0
}

// Add folds one id into the running sum.
func (a *Accumulator) Add(id wire.ID) {
	var carry uint16
	for i := 0; i < wire.IDSize; i++ {
		t := uint16(a.sum[i]) + uint16(id[i]) + carry
		a.sum[i] = byte(t)
		carry = t >> 8
	}
	a.count++
}

// Count returns the number of ids added since the last Reset.
func (a *Accumulator) Count() uint64 {
	return a.count
}

// Fingerprint finalizes the digest: SHA-256 of the 32-byte sum concatenated
// with the varint-encoded count, truncated to 16 bytes. The accumulator
// remains usable; adding further ids and calling Fingerprint again yields
// the digest of the larger multiset.
func (a *Accumulator) Fingerprint() wire.Fingerprint {
	input := make([]byte, 0, wire.IDSize+10)
	input = append(input, a.sum[:]...)
	input = wire.AppendVarint(input, a.count)

	digest := sha256.Sum256(input)

	var fp wire.Fingerprint
	copy(fp[:], digest[:wire.FingerprintSize])

	return fp
}

// Calculate returns the fingerprint of ids in a single call.
//
// The result depends only on the multiset of ids, not their order, and is
// deterministic across processes and implementations.
func Calculate(ids []wire.ID) wire.Fingerprint {
	var acc Accumulator
	for _, id := range ids {
		acc.Add(id)
	}

	return acc.Fingerprint()
}
