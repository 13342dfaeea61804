// Package compress provides optional byte-level compression for persisted
// chunk bytes.
//
// The chunk codec itself already packs samples at bit granularity; these
// codecs sit behind it for callers that archive Chunk.Bytes() in object
// stores or ship them over the network, where a general-purpose compressor
// still finds redundancy across many chunks' headers and padding. Codecs
// are selected by format.CompressionType and must be paired symmetrically:
// bytes compressed with one codec only decompress with the same one.
package compress

import (
	"fmt"

	"github.com/detailyang/chunkenc/errs"
	"github.com/detailyang/chunkenc/format"
)

// Compressor compresses a complete encoded payload.
type Compressor interface {
	// Compress compresses data and returns the result. The returned slice
	// is owned by the caller; the input is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload produced by the matching Compressor.
type Decompressor interface {
	// Decompress decompresses data and returns the original bytes. It
	// fails when the data is corrupted or was compressed with a different
	// algorithm.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions. All implementations in this package are
// stateless values safe for concurrent use.
type Codec interface {
	Compressor
	Decompressor
}

// NewCodec returns the codec for the given compression type.
func NewCodec(t format.CompressionType) (Codec, error) {
	switch t {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCompression, t)
	}
}
