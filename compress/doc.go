// Package compress provides the pluggable compression codecs used when
// serializing session transcripts.
//
// Reconciliation transcripts are dominated by hex strings and repeated JSON
// framing, which compress extremely well; even the fast codecs (S2, LZ4)
// typically shrink a transcript by 3-6x. Zstd trades CPU for the best ratio
// and suits archived transcripts.
//
// All codecs are stateless values and safe for concurrent use; internal
// encoder/decoder state is pooled.
package compress
