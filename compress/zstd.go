package compress

// ZstdCompressor compresses with Zstandard, trading CPU for the best ratio
// of the available codecs. Suits archived transcripts read infrequently.
//
// Two implementations back this type: a cgo build uses valyala/gozstd
// (bindings to the reference C library), a pure-Go build uses
// klauspost/compress/zstd. Both produce standard zstd frames and can
// decompress each other's output.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Returns:
//   - ZstdCompressor: New Zstd compressor instance
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
