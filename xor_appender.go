package chunkenc

import (
	"github.com/detailyang/chunkenc/bitstream"
	"github.com/detailyang/chunkenc/encoding"
	"github.com/detailyang/chunkenc/errs"
)

// xorAppender is the exclusive writer of an XORChunk. It drives one
// timestamp encoder and one value encoder over the chunk's bit stream and
// bumps the header sample count after each fully encoded sample, so
// iterators capped by the header never observe a half-written sample.
type xorAppender struct {
	c      *XORChunk
	w      *bitstream.Writer
	tsEnc  *encoding.TimestampEncoder
	valEnc *encoding.ValueEncoder
}

var _ Appender = (*xorAppender)(nil)

// Append encodes one sample. It fails with errs.ErrChunkFull when the chunk
// already holds MaxSamples samples; a failed append mutates nothing.
func (a *xorAppender) Append(t int64, v float64) error {
	if a.c == nil {
		panic("chunkenc: appender used after Release")
	}

	n := a.c.NumSamples()
	if n >= MaxSamples {
		return errs.ErrChunkFull
	}

	a.tsEnc.Encode(a.w, t)
	a.valEnc.Encode(a.w, v)

	a.c.setNumSamples(uint16(n + 1)) //nolint:gosec // n < MaxSamples

	return nil
}

// Release hands exclusivity back to the chunk so a new appender can be
// obtained. The appender is unusable afterwards.
func (a *xorAppender) Release() {
	if a.c == nil {
		return
	}

	a.c.appenderLive = false
	a.c = nil
}
