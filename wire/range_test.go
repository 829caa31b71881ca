package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func testID(fill byte) ID {
	var id ID
	for i := range id {
		id[i] = fill
	}

	return id
}

func mustBound(t *testing.T, ts uint64, prefix []byte) Bound {
	t.Helper()

	bound, err := NewBound(ts, prefix)
	require.NoError(t, err)

	return bound
}

func TestRange_RoundTrip(t *testing.T) {
	payloads := []RangePayload{
		SkipPayload{},
		FingerprintPayload{Fingerprint: Fingerprint{0xab, 0xcd, 0xef, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}},
		IDListPayload{IDs: []ID{testID(0x01), testID(0x02), testID(0x03)}},
	}
	prevTimestamps := []uint64{0, 777, 1 << 40}

	for _, payload := range payloads {
		for _, prev := range prevTimestamps {
			r := Range{
				UpperBound: mustBound(t, prev+5, []byte{0x42}),
				Payload:    payload,
			}

			encoded, next, err := r.Append(nil, prev)
			require.NoError(t, err, "mode %s", payload.Mode())
			require.Equal(t, r.UpperBound.Timestamp, next)

			decoded, n, nextTS, err := DecodeRange(encoded, prev)
			require.NoError(t, err, "mode %s", payload.Mode())
			require.Equal(t, len(encoded), n)
			require.Equal(t, r.UpperBound.Timestamp, nextTS)
			require.Equal(t, r.UpperBound.Timestamp, decoded.UpperBound.Timestamp)
			require.Equal(t, payload.Mode(), decoded.Payload.Mode())
			require.Equal(t, payload, decoded.Payload)
		}
	}
}

func TestRange_EmptyIDList(t *testing.T) {
	r := Range{
		UpperBound: mustBound(t, 10, nil),
		Payload:    IDListPayload{},
	}

	encoded, _, err := r.Append(nil, 0)
	require.NoError(t, err)

	decoded, _, _, err := DecodeRange(encoded, 0)
	require.NoError(t, err)
	require.Equal(t, ModeIDList, decoded.Payload.Mode())
	require.Empty(t, decoded.Payload.(IDListPayload).IDs)
}

func TestDecodeRange_InvalidMode(t *testing.T) {
	data, err := mustBound(t, 10, nil).Append(nil, 0)
	require.NoError(t, err)
	data = AppendVarint(data, 3)

	_, _, _, err = DecodeRange(data, 0)
	require.ErrorIs(t, err, ErrInvalidMode)
	require.Contains(t, err.Error(), "3")
}

func TestDecodeRange_OversizedModeVarint(t *testing.T) {
	// Mode values that wrap to a known mode modulo 256 must still be
	// rejected on the raw varint value.
	for _, mode := range []uint64{256, 257, 258, 512, 1 << 32} {
		data, err := mustBound(t, 10, nil).Append(nil, 0)
		require.NoError(t, err)
		data = AppendVarint(data, mode)

		_, _, _, err = DecodeRange(data, 0)
		require.ErrorIs(t, err, ErrInvalidMode, "mode %d", mode)
	}

	// The same frame through the message decoder: version byte, bound with
	// timestamp varint 1 and empty prefix, then mode varint 256.
	_, err := DecodeMessage([]byte{0x61, 0x01, 0x00, 0x82, 0x00})
	require.ErrorIs(t, err, ErrInvalidMode)
}

func TestDecodeRange_TruncatedFingerprint(t *testing.T) {
	data, err := mustBound(t, 10, nil).Append(nil, 0)
	require.NoError(t, err)
	data = AppendVarint(data, uint64(ModeFingerprint))
	data = append(data, bytes.Repeat([]byte{0xab}, FingerprintSize-1)...)

	_, _, _, err = DecodeRange(data, 0)
	require.ErrorIs(t, err, ErrInvalidRange)
	require.Contains(t, err.Error(), "fingerprint")
}

func TestDecodeRange_TruncatedIDList(t *testing.T) {
	data, err := mustBound(t, 10, nil).Append(nil, 0)
	require.NoError(t, err)
	data = AppendVarint(data, uint64(ModeIDList))
	data = AppendVarint(data, 2)
	data = append(data, bytes.Repeat([]byte{0x01}, IDSize+3)...) // 1 full id + 3 bytes

	_, _, _, err = DecodeRange(data, 0)
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestDecodeRange_HugeClaimedCount(t *testing.T) {
	// A crafted count must fail the bounds check before any allocation is
	// attempted.
	data, err := mustBound(t, 10, nil).Append(nil, 0)
	require.NoError(t, err)
	data = AppendVarint(data, uint64(ModeIDList))
	data = AppendVarint(data, 1<<40)

	_, _, _, err = DecodeRange(data, 0)
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestRangeMode_String(t *testing.T) {
	require.Equal(t, "Skip", ModeSkip.String())
	require.Equal(t, "Fingerprint", ModeFingerprint.String())
	require.Equal(t, "IDList", ModeIDList.String())
	require.Equal(t, "Unknown", RangeMode(9).String())
}
