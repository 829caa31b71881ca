package record

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/negentropy/wire"
)

func testID(fill byte) wire.ID {
	var id wire.ID
	for i := range id {
		id[i] = fill
	}

	return id
}

func TestSort_CanonicalOrder(t *testing.T) {
	records := []Record{
		{Timestamp: 100, ID: testID(0x03)},
		{Timestamp: 50, ID: testID(0x01)},
		{Timestamp: 100, ID: testID(0x01)},
		{Timestamp: 200, ID: testID(0x02)},
	}

	Sort(records)

	require.Equal(t, []Record{
		{Timestamp: 50, ID: testID(0x01)},
		{Timestamp: 100, ID: testID(0x01)},
		{Timestamp: 100, ID: testID(0x03)},
		{Timestamp: 200, ID: testID(0x02)},
	}, records)
}

func TestCompare(t *testing.T) {
	early := Record{Timestamp: 1, ID: testID(0x09)}
	late := Record{Timestamp: 2, ID: testID(0x01)}

	require.Equal(t, -1, Compare(early, late))
	require.Equal(t, 1, Compare(late, early))
	require.Equal(t, 0, Compare(early, early))

	// Timestamps equal: byte-wise id order decides.
	lowID := Record{Timestamp: 1, ID: testID(0x01)}
	require.Equal(t, 1, Compare(early, lowID))
}

func TestLessThanBound(t *testing.T) {
	rec := Record{Timestamp: 100, ID: testID(0x50)}

	require.True(t, LessThanBound(rec, wire.Bound{Timestamp: 101}))
	require.False(t, LessThanBound(rec, wire.Bound{Timestamp: 99}))
	require.True(t, LessThanBound(rec, wire.InfiniteBound()))

	// Equal timestamp: the prefix decides.
	require.True(t, LessThanBound(rec, wire.Bound{Timestamp: 100, IDPrefix: []byte{0x60}}))
	require.False(t, LessThanBound(rec, wire.Bound{Timestamp: 100, IDPrefix: []byte{0x40}}))

	// A record whose id starts with the prefix does not sort before it.
	require.False(t, LessThanBound(rec, wire.Bound{Timestamp: 100, IDPrefix: []byte{0x50}}))

	// Empty prefix: nothing with the same timestamp sorts before the bound.
	require.False(t, LessThanBound(rec, wire.Bound{Timestamp: 100}))
}
