package fingerprint

import (
	"crypto/sha256"
	"math/big"
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

// refFingerprint recomputes the digest with math/big as an independent
// implementation of the mod-2^256 sum.
func refFingerprint(ids []wire.ID) wire.Fingerprint {
	sum := new(big.Int)
	for _, id := range ids {
		le := make([]byte, wire.IDSize)
		for i, b := range id {
			le[wire.IDSize-1-i] = b // big.Int wants big-endian
		}
		sum.Add(sum, new(big.Int).SetBytes(le))
	}
	sum.Mod(sum, new(big.Int).Lsh(big.NewInt(1), 256))

	be := sum.FillBytes(make([]byte, wire.IDSize))
	input := make([]byte, 0, wire.IDSize+10)
	for i := wire.IDSize - 1; i >= 0; i-- {
		input = append(input, be[i])
	}
	input = wire.AppendVarint(input, uint64(len(ids)))

	digest := sha256.Sum256(input)

	var fp wire.Fingerprint
	copy(fp[:], digest[:wire.FingerprintSize])

	return fp
}

func TestCalculate_MatchesBigIntReference(t *testing.T) {
	cases := [][]wire.ID{
		{},
		{testID(0x01)},
		{testID(0x01), testID(0x02), testID(0x03)},
		// All-0xff ids force a carry through every byte and wrap past 2^256.
		{testID(0xff), testID(0xff), testID(0xff)},
		{testID(0xff), testID(0x01)},
	}

	for _, ids := range cases {
		require.Equal(t, refFingerprint(ids), Calculate(ids), "%d ids", len(ids))
	}
}

func TestCalculate_Commutative(t *testing.T) {
	a, b, c := testID(0x0a), testID(0x0b), testID(0x0c)

	fp := Calculate([]wire.ID{a, b, c})
	require.Equal(t, fp, Calculate([]wire.ID{c, b, a}))
	require.Equal(t, fp, Calculate([]wire.ID{b, a, c}))
}

func TestCalculate_CountSensitive(t *testing.T) {
	id := testID(0x42)

	require.NotEqual(t, Calculate([]wire.ID{id}), Calculate([]wire.ID{id, id}))
}

func TestCalculate_Deterministic(t *testing.T) {
	ids := []wire.ID{testID(0x01), testID(0x02)}

	require.Equal(t, Calculate(ids), Calculate(ids))
	require.NotEqual(t, Calculate(ids), Calculate(ids[:1]))
}

func TestAccumulator_Incremental(t *testing.T) {
	ids := []wire.ID{testID(0x11), testID(0x22), testID(0x33)}

	var acc Accumulator
	for _, id := range ids[:2] {
		acc.Add(id)
	}
	require.Equal(t, uint64(2), acc.Count())
	require.Equal(t, Calculate(ids[:2]), acc.Fingerprint())

	// The accumulator stays usable after finalizing.
	acc.Add(ids[2])
	require.Equal(t, Calculate(ids), acc.Fingerprint())
}

func TestAccumulator_Reset(t *testing.T) {
	var acc Accumulator
	acc.Add(testID(0x99))
	acc.Reset()

	require.Equal(t, uint64(0), acc.Count())
	require.Equal(t, Calculate(nil), acc.Fingerprint())
}

func TestAccumulator_CarryPropagation(t *testing.T) {
	// 0xff.. + 0x01(LSB only) wraps the low byte and carries into every
	// subsequent byte: sum = 2^256 ≡ 0.
	var one wire.ID
	one[0] = 0x01

	var acc Accumulator
	acc.Add(testID(0xff))
	acc.Add(one)

	require.Equal(t, refFingerprint([]wire.ID{testID(0xff), one}), acc.Fingerprint())
}
