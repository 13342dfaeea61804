package compress

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool pools lz4.Compressor instances; the compressor keeps
// internal state that benefits from reuse.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4 block payloads carry a one byte scheme marker. CompressBlock reports
// incompressible input by returning a zero length, and such input must be
// stored raw instead of lost.
const (
	lz4SchemeRaw   = 0x00
	lz4SchemeBlock = 0x01
)

// LZ4Compressor compresses chunk bytes with LZ4 block compression,
// balancing speed and ratio between S2 and Zstd.
type LZ4Compressor struct{}

var _ Codec = LZ4Compressor{}

// NewLZ4Compressor creates a new LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses data using an LZ4 block. Incompressible input is
// stored raw behind the scheme marker.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, 1+lz4.CompressBlockBound(len(data)))
	dst[0] = lz4SchemeBlock

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[1:])
	if err != nil {
		return nil, err
	}
	if n == 0 {
		dst[0] = lz4SchemeRaw
		return append(dst[:1], data...), nil
	}

	return dst[:1+n], nil
}

// Decompress decompresses an LZ4 payload produced by Compress.
//
// LZ4 blocks do not carry the decompressed size, so the buffer starts at 4x
// the compressed size and doubles on lz4.ErrInvalidSourceShortBuffer up to a
// 128MB limit that guards against corrupted input.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	scheme, block := data[0], data[1:]
	switch scheme {
	case lz4SchemeRaw:
		return append([]byte(nil), block...), nil
	case lz4SchemeBlock:
	default:
		return nil, lz4.ErrInvalidFrame
	}

	bufSize := len(block) * 4
	const maxSize = 128 * 1024 * 1024

	for bufSize <= maxSize {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(block, buf)
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) && bufSize < maxSize {
				bufSize *= 2
				continue
			}

			return nil, err
		}

		return buf[:n], nil
	}

	return nil, lz4.ErrInvalidSourceShortBuffer
}
