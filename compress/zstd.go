package compress

// ZstdCompressor compresses chunk bytes with Zstandard.
//
// Zstd trades compression speed for ratio, which suits cold storage and
// long-term retention of sealed chunks. Two implementations exist behind
// build tags: the default pure-Go one (klauspost/compress/zstd) and a cgo
// one (valyala/gozstd) selected with -tags gozstd for deployments that
// already link libzstd.
type ZstdCompressor struct{}

var _ Codec = ZstdCompressor{}

// NewZstdCompressor creates a new Zstd codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
