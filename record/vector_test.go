package record

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/negentropy/fingerprint"
	"github.com/arloliu/negentropy/wire"
)

func sealedVector(t *testing.T, records ...Record) *Vector {
	t.Helper()

	v := NewVector()
	for _, rec := range records {
		require.NoError(t, v.Insert(rec.Timestamp, rec.ID))
	}
	require.NoError(t, v.Seal())

	return v
}

func TestVector_SealSorts(t *testing.T) {
	v := sealedVector(t,
		Record{Timestamp: 300, ID: testID(0x03)},
		Record{Timestamp: 100, ID: testID(0x01)},
		Record{Timestamp: 200, ID: testID(0x02)},
	)

	require.Equal(t, 3, v.Len())
	require.Equal(t, uint64(100), v.Record(0).Timestamp)
	require.Equal(t, uint64(200), v.Record(1).Timestamp)
	require.Equal(t, uint64(300), v.Record(2).Timestamp)

	var seen []uint64
	for rec := range v.All() {
		seen = append(seen, rec.Timestamp)
	}
	require.Equal(t, []uint64{100, 200, 300}, seen)
}

func TestVector_InsertAfterSeal(t *testing.T) {
	v := sealedVector(t, Record{Timestamp: 1, ID: testID(0x01)})

	require.ErrorIs(t, v.Insert(2, testID(0x02)), ErrSealed)
	require.ErrorIs(t, v.Seal(), ErrSealed)
}

func TestVector_SealRejectsDuplicates(t *testing.T) {
	v := NewVector()
	require.NoError(t, v.Insert(7, testID(0x01)))
	require.NoError(t, v.Insert(7, testID(0x01)))

	require.ErrorIs(t, v.Seal(), ErrDuplicateRecord)
}

func TestVector_SameTimestampDistinctIDs(t *testing.T) {
	v := sealedVector(t,
		Record{Timestamp: 7, ID: testID(0x02)},
		Record{Timestamp: 7, ID: testID(0x01)},
	)

	require.Equal(t, testID(0x01), v.Record(0).ID)
	require.Equal(t, testID(0x02), v.Record(1).ID)
}

func TestVector_Contains(t *testing.T) {
	v := sealedVector(t,
		Record{Timestamp: 1, ID: testID(0x01)},
		Record{Timestamp: 2, ID: testID(0x02)},
	)

	require.True(t, v.Contains(testID(0x01)))
	require.True(t, v.Contains(testID(0x02)))
	require.False(t, v.Contains(testID(0x03)))
}

func TestVector_ContainsUnsealed(t *testing.T) {
	v := NewVector()
	require.NoError(t, v.Insert(1, testID(0x01)))

	require.False(t, v.Contains(testID(0x01)))
}

func TestVector_Fingerprint(t *testing.T) {
	v := sealedVector(t,
		Record{Timestamp: 1, ID: testID(0x01)},
		Record{Timestamp: 2, ID: testID(0x02)},
		Record{Timestamp: 3, ID: testID(0x03)},
	)

	fp, err := v.Fingerprint(0, 3)
	require.NoError(t, err)
	require.Equal(t, fingerprint.Calculate([]wire.ID{testID(0x01), testID(0x02), testID(0x03)}), fp)

	fp, err = v.Fingerprint(1, 2)
	require.NoError(t, err)
	require.Equal(t, fingerprint.Calculate([]wire.ID{testID(0x02)}), fp)

	// Empty interval digests the empty set.
	fp, err = v.Fingerprint(2, 2)
	require.NoError(t, err)
	require.Equal(t, fingerprint.Calculate(nil), fp)

	_, err = v.Fingerprint(0, 4)
	require.Error(t, err)
	_, err = v.Fingerprint(-1, 2)
	require.Error(t, err)
}

func TestVector_FingerprintUnsealed(t *testing.T) {
	v := NewVector()
	_, err := v.Fingerprint(0, 0)
	require.ErrorIs(t, err, ErrNotSealed)
}

func TestVector_FindLowerBound(t *testing.T) {
	v := sealedVector(t,
		Record{Timestamp: 100, ID: testID(0x01)},
		Record{Timestamp: 200, ID: testID(0x02)},
		Record{Timestamp: 300, ID: testID(0x03)},
	)

	require.Equal(t, 0, v.FindLowerBound(wire.Bound{Timestamp: 50}))
	require.Equal(t, 1, v.FindLowerBound(wire.Bound{Timestamp: 150}))
	require.Equal(t, 1, v.FindLowerBound(wire.Bound{Timestamp: 200}))
	require.Equal(t, 3, v.FindLowerBound(wire.Bound{Timestamp: 301}))
	require.Equal(t, 3, v.FindLowerBound(wire.InfiniteBound()))

	// A prefix past the record at the same timestamp moves the boundary.
	require.Equal(t, 2, v.FindLowerBound(wire.Bound{Timestamp: 200, IDPrefix: []byte{0x03}}))
}
