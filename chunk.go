package chunkenc

import (
	"fmt"
	"math"

	"github.com/detailyang/chunkenc/errs"
	"github.com/detailyang/chunkenc/format"
)

// Chunk is a single contiguous encoded run of samples sharing one 2-byte
// sample count header and one bit stream.
type Chunk interface {
	// Bytes returns the raw encoded buffer, header plus payload, suitable
	// for persistence. The slice references the chunk's internal buffer and
	// must not be modified.
	Bytes() []byte

	// Encoding returns the encoding scheme of the chunk payload.
	Encoding() format.EncodingType

	// NumSamples returns the current sample count read from the header.
	NumSamples() int

	// Compact trims excess buffer capacity. The encoded bytes are unchanged.
	Compact()

	// Appender returns the chunk's single writer. It fails with
	// errs.ErrAppenderExists while a previous appender has not been
	// released.
	Appender() (Appender, error)

	// Iterator returns an independent reader over the samples present at
	// the time of the call.
	Iterator() Iterator
}

// Appender appends samples to a chunk. A chunk permits at most one live
// appender; appending concurrently with iteration requires external
// synchronization.
type Appender interface {
	// Append encodes one (timestamp, value) sample. It fails with
	// errs.ErrChunkFull once the chunk holds 65535 samples, mutating
	// nothing; the caller must rotate to a new chunk.
	Append(t int64, v float64) error

	// Release hands the chunk's write exclusivity back, allowing a new
	// appender to be obtained. The appender is unusable afterwards.
	Release()
}

// Iterator reads samples back from a chunk without mutating it.
type Iterator interface {
	// Next advances to the next sample. It returns false with a nil error
	// when the samples present at iterator creation are exhausted. Decode
	// errors are terminal: every subsequent Next returns the same error.
	Next() (bool, error)

	// Seek advances until the current timestamp is at or past t, returning
	// false when the iterator is exhausted first.
	Seek(t int64) (bool, error)

	// At returns the most recently decoded sample. It panics unless the
	// preceding Next or Seek succeeded.
	At() (int64, float64)

	// Err returns the terminal decode error, if any.
	Err() error
}

// FromData reconstructs a chunk view over previously persisted bytes.
// The data is not copied; the caller must keep it immutable for the
// lifetime of the chunk unless it appends through a new appender.
func FromData(e format.EncodingType, data []byte) (Chunk, error) {
	switch e {
	case format.EncodingXOR:
		return FromXORData(data)
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidEncoding, e)
	}
}

// NopIterator is an iterator over an empty sequence of samples.
type NopIterator struct{}

func (NopIterator) Next() (bool, error)      { return false, nil }
func (NopIterator) Seek(int64) (bool, error) { return false, nil }
func (NopIterator) At() (int64, float64)     { return math.MinInt64, 0 }
func (NopIterator) Err() error               { return nil }
