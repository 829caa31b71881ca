package compress

import "fmt"

// Type identifies a compression codec on the wire. The value is stored in
// serialized transcripts, so existing values must never be renumbered.
type Type uint8

const (
	TypeNone Type = 0x1 // TypeNone stores payloads uncompressed.
	TypeZstd Type = 0x2 // TypeZstd is Zstandard compression.
	TypeS2   Type = 0x3 // TypeS2 is S2 (Snappy-compatible) compression.
	TypeLZ4  Type = 0x4 // TypeLZ4 is LZ4 block compression.
)

func (t Type) String() string {
	switch t {
	case TypeNone:
		return "None"
	case TypeZstd:
		return "Zstd"
	case TypeS2:
		return "S2"
	case TypeLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Compressor compresses a complete payload in one call.
type Compressor interface {
	// Compress compresses data and returns a newly allocated result. The
	// input slice is not modified or retained.
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor of the same Type.
type Decompressor interface {
	// Decompress decompresses data and returns a newly allocated result.
	// It fails if the data is corrupted or was produced by a different
	// codec.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions of one algorithm.
type Codec interface {
	Compressor
	Decompressor
}

// CodecFor returns the codec for a wire type.
//
// Parameters:
//   - t: Compression type from a transcript header
//
// Returns:
//   - Codec: The codec implementing the requested algorithm
//   - error: Error on an unknown type value, e.g. from a corrupted header
func CodecFor(t Type) (Codec, error) {
	switch t {
	case TypeNone:
		return NewNoOpCompressor(), nil
	case TypeZstd:
		return NewZstdCompressor(), nil
	case TypeS2:
		return NewS2Compressor(), nil
	case TypeLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("unknown compression type 0x%02x", uint8(t))
	}
}
