package chunkenc

import (
	"fmt"

	"github.com/detailyang/chunkenc/bitstream"
	"github.com/detailyang/chunkenc/encoding"
)

// xorIterator replays an XORChunk's bit stream. It reads the header sample
// count once at creation, so it yields exactly the samples present at that
// moment regardless of later appends, and shares no mutable state with
// other iterators or the appender.
type xorIterator struct {
	r        *bitstream.Reader
	tsDec    encoding.TimestampDecoder
	valDec   encoding.ValueDecoder
	numTotal int
	numRead  int
	t        int64
	v        float64
	valid    bool
	err      error
}

var _ Iterator = (*xorIterator)(nil)

// Next advances one sample. Once a decode error occurs it is terminal:
// every subsequent call returns the same error without re-reading bytes.
func (it *xorIterator) Next() (bool, error) {
	if it.err != nil {
		return false, it.err
	}

	if it.numRead >= it.numTotal {
		it.valid = false
		return false, nil
	}

	t, err := it.tsDec.Decode(it.r)
	if err != nil {
		return false, it.fail(fmt.Errorf("sample %d: %w", it.numRead, err))
	}

	v, err := it.valDec.Decode(it.r)
	if err != nil {
		return false, it.fail(fmt.Errorf("sample %d: %w", it.numRead, err))
	}

	it.t = t
	it.v = v
	it.numRead++
	it.valid = true

	return true, nil
}

// Seek advances until the current timestamp is at or past t. It returns
// false when the iterator is exhausted before reaching t.
func (it *xorIterator) Seek(t int64) (bool, error) {
	if it.err != nil {
		return false, it.err
	}

	for !it.valid || it.t < t {
		ok, err := it.Next()
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}

	return true, nil
}

// At returns the most recently decoded sample. It panics unless the
// preceding Next or Seek succeeded.
func (it *xorIterator) At() (int64, float64) {
	if !it.valid {
		panic("chunkenc: At called without a preceding successful Next")
	}

	return it.t, it.v
}

// Err returns the terminal decode error, if any.
func (it *xorIterator) Err() error {
	return it.err
}

func (it *xorIterator) fail(err error) error {
	it.err = err
	it.valid = false

	return err
}
