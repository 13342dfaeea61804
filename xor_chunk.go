package chunkenc

import (
	"fmt"
	"math"

	"github.com/detailyang/chunkenc/bitstream"
	"github.com/detailyang/chunkenc/encoding"
	"github.com/detailyang/chunkenc/endian"
	"github.com/detailyang/chunkenc/errs"
	"github.com/detailyang/chunkenc/format"
	"github.com/detailyang/chunkenc/internal/options"
	"github.com/detailyang/chunkenc/internal/pool"
)

const (
	// headerSize is the fixed chunk prefix: the sample count as a
	// big-endian uint16.
	headerSize = 2

	// MaxSamples is the maximum number of samples a chunk can hold,
	// bounded by the uint16 sample count header.
	MaxSamples = math.MaxUint16

	// compactThreshold is the excess capacity, in bytes, a chunk buffer may
	// carry before Compact reallocates it to its exact length.
	compactThreshold = 32
)

// headerEngine is the byte order of the sample count header.
var headerEngine = endian.GetBigEndianEngine()

// xorChunkConfig collects the chunk construction options.
type xorChunkConfig struct {
	initialCapacity int
	noPool          bool
}

// XORChunkOption configures NewXORChunk.
type XORChunkOption = options.Option[*xorChunkConfig]

// WithInitialCapacity pre-sizes the chunk buffer for callers that know the
// approximate encoded size up front. Non-positive values are ignored.
func WithInitialCapacity(n int) XORChunkOption {
	return options.NoError(func(c *xorChunkConfig) {
		c.initialCapacity = n
	})
}

// WithoutPool allocates a plain buffer instead of drawing one from the
// shared pool. Close becomes a no-op for such chunks, which suits
// long-lived chunks whose bytes outlive the codec objects.
func WithoutPool() XORChunkOption {
	return options.NoError(func(c *xorChunkConfig) {
		c.noPool = true
	})
}

// XORChunk holds delta-of-delta encoded timestamps and XOR encoded values.
//
// A chunk is created empty (sample count 0, no payload) and mutated only
// through its single live appender. Iterators never mutate the chunk; any
// number may read it concurrently with each other. Appending concurrently
// with iteration requires external synchronization because a write that
// does not land on a byte boundary mutates the stream's last byte in place.
type XORChunk struct {
	buf          *pool.ByteBuffer
	pooled       bool
	appenderLive bool
}

var _ Chunk = (*XORChunk)(nil)

// NewXORChunk creates an empty XOR chunk.
func NewXORChunk(opts ...XORChunkOption) *XORChunk {
	cfg := xorChunkConfig{}
	// The provided options cannot fail.
	_ = options.Apply(&cfg, opts...)

	var buf *pool.ByteBuffer
	if cfg.noPool {
		capacity := cfg.initialCapacity
		if capacity < pool.ChunkBufferDefaultSize {
			capacity = pool.ChunkBufferDefaultSize
		}
		buf = pool.NewByteBuffer(capacity)
	} else {
		buf = pool.GetChunkBuffer()
		if cfg.initialCapacity > 0 {
			buf.Grow(cfg.initialCapacity)
		}
	}

	var hdr [headerSize]byte
	headerEngine.PutUint16(hdr[:], 0)
	buf.MustWrite(hdr[:])

	return &XORChunk{
		buf:    buf,
		pooled: !cfg.noPool,
	}
}

// FromXORData reconstructs an XOR chunk view over previously persisted
// bytes. The data is wrapped, not copied.
func FromXORData(data []byte) (*XORChunk, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: need at least %d bytes, got %d",
			errs.ErrTooShort, headerSize, len(data))
	}

	return &XORChunk{
		buf: &pool.ByteBuffer{B: data},
	}, nil
}

// Bytes returns the raw encoded buffer (header plus payload).
func (c *XORChunk) Bytes() []byte {
	c.mustBeOpen()
	return c.buf.Bytes()
}

// Encoding returns format.EncodingXOR.
func (c *XORChunk) Encoding() format.EncodingType {
	return format.EncodingXOR
}

// NumSamples returns the sample count stored in the chunk header.
func (c *XORChunk) NumSamples() int {
	c.mustBeOpen()
	return int(headerEngine.Uint16(c.buf.B[0:headerSize]))
}

// Compact trims excess buffer capacity once the slack exceeds a small
// threshold. Useful before retaining many sealed chunks in memory.
func (c *XORChunk) Compact() {
	c.mustBeOpen()
	c.buf.Compact(compactThreshold)
}

// Appender returns the chunk's single writer.
//
// The appender's codec state is rebuilt by replaying the samples already in
// the chunk, so appends can resume on a chunk reconstructed with
// FromXORData. While an appender is live, further Appender calls fail with
// errs.ErrAppenderExists until Release is called.
func (c *XORChunk) Appender() (Appender, error) {
	c.mustBeOpen()

	if c.appenderLive {
		return nil, errs.ErrAppenderExists
	}

	it := c.iterator()
	for {
		ok, err := it.Next()
		if err != nil {
			return nil, fmt.Errorf("replay chunk samples: %w", err)
		}
		if !ok {
			break
		}
	}

	// Resume the bit cursor right after the replayed samples; the rest of
	// the final byte is zero padding the writer fills in place.
	w := bitstream.NewWriter(c.buf, headerSize*8+it.r.BitsRead())

	c.appenderLive = true

	return &xorAppender{
		c:      c,
		w:      w,
		tsEnc:  encoding.ResumeTimestampEncoder(&it.tsDec),
		valEnc: encoding.ResumeValueEncoder(&it.valDec),
	}, nil
}

// Iterator returns an independent reader over the samples present at the
// time of the call.
func (c *XORChunk) Iterator() Iterator {
	c.mustBeOpen()
	return c.iterator()
}

func (c *XORChunk) iterator() *xorIterator {
	return &xorIterator{
		r:        bitstream.NewReader(c.buf.B[headerSize:]),
		numTotal: c.NumSamples(),
	}
}

// Close returns a pooled chunk buffer to the pool. The chunk, its bytes,
// and everything derived from it become invalid; any further use panics.
// Close is a no-op for chunks built with WithoutPool or FromXORData, whose
// buffers the codec does not own.
func (c *XORChunk) Close() {
	if c.buf == nil {
		return
	}

	if c.pooled {
		pool.PutChunkBuffer(c.buf)
	}
	c.buf = nil
}

// setNumSamples stores n in the chunk header.
func (c *XORChunk) setNumSamples(n uint16) {
	headerEngine.PutUint16(c.buf.B[0:headerSize], n)
}

func (c *XORChunk) mustBeOpen() {
	if c.buf == nil {
		panic("chunkenc: chunk used after Close")
	}
}
