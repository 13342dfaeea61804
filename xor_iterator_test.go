package chunkenc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/detailyang/chunkenc/errs"
)

func TestXORIterator_Seek(t *testing.T) {
	c := NewXORChunk()
	defer c.Close()

	appendSamples(t, c, []sample{
		{100, 1.0}, {200, 2.0}, {300, 3.0}, {400, 4.0}, {500, 5.0},
	})

	tests := []struct {
		name   string
		seekTo int64
		wantOK bool
		wantT  int64
		wantV  float64
	}{
		{name: "before first", seekTo: 50, wantOK: true, wantT: 100, wantV: 1.0},
		{name: "exact match", seekTo: 300, wantOK: true, wantT: 300, wantV: 3.0},
		{name: "between samples", seekTo: 301, wantOK: true, wantT: 400, wantV: 4.0},
		{name: "at last", seekTo: 500, wantOK: true, wantT: 500, wantV: 5.0},
		{name: "past last", seekTo: 501, wantOK: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			it := c.Iterator()

			ok, err := it.Seek(tc.seekTo)
			require.NoError(t, err)
			require.Equal(t, tc.wantOK, ok)
			if !tc.wantOK {
				return
			}

			ts, v := it.At()
			require.Equal(t, tc.wantT, ts)
			require.Equal(t, tc.wantV, v)
		})
	}
}

func TestXORIterator_SeekDoesNotRewind(t *testing.T) {
	c := NewXORChunk()
	defer c.Close()

	appendSamples(t, c, []sample{{100, 1.0}, {200, 2.0}, {300, 3.0}})

	it := c.Iterator()
	ok, err := it.Seek(300)
	require.NoError(t, err)
	require.True(t, ok)

	// Seeking backwards stays on the current sample.
	ok, err = it.Seek(100)
	require.NoError(t, err)
	require.True(t, ok)

	ts, _ := it.At()
	require.Equal(t, int64(300), ts)
}

func TestXORIterator_Independent(t *testing.T) {
	c := NewXORChunk()
	defer c.Close()

	appendSamples(t, c, []sample{{1, 1.0}, {2, 2.0}})

	// An iterator is a snapshot: it yields the samples present when it was
	// created, even if the chunk grows afterwards.
	before := c.Iterator()

	appendSamples(t, c, []sample{{3, 3.0}})
	after := c.Iterator()

	require.Len(t, collectSamples(t, before), 2)
	require.Len(t, collectSamples(t, after), 3)

	// Iterators share no cursor state.
	a, b := c.Iterator(), c.Iterator()
	ok, err := a.Next()
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = a.Next()
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = b.Next()
	require.NoError(t, err)
	require.True(t, ok)

	at, _ := a.At()
	bt, _ := b.At()
	require.Equal(t, int64(2), at)
	require.Equal(t, int64(1), bt)
}

func TestXORIterator_TruncatedPayload(t *testing.T) {
	// Header claims one sample but there is no payload behind it.
	c, err := FromXORData([]byte{0x00, 0x01})
	require.NoError(t, err)

	it := c.Iterator()

	ok, err := it.Next()
	require.False(t, ok)
	require.ErrorIs(t, err, errs.ErrUnderrun)

	// The error is sticky.
	ok, err2 := it.Next()
	require.False(t, ok)
	require.Equal(t, err, err2)
	require.Equal(t, err, it.Err())

	ok, err2 = it.Seek(0)
	require.False(t, ok)
	require.Equal(t, err, err2)

	require.Panics(t, func() { it.At() })
}

func TestXORIterator_CorruptControlBits(t *testing.T) {
	c := NewXORChunk(WithoutPool())
	appendSamples(t, c, []sample{{1000, 1.0}, {1010, 2.0}})

	// Flip the value control bit of the second sample from "new window" to
	// "reuse window"; no window exists yet, so decoding must fail rather
	// than read garbage.
	raw := append([]byte(nil), c.Bytes()...)

	// Payload bit layout: 64-bit timestamp, 64-bit value, 64-bit delta,
	// then the value control bits at payload bit 192 and 193.
	bitPos := 192 + 1
	raw[headerSize+bitPos/8] &^= 0x80 >> (bitPos % 8)

	corrupt, err := FromXORData(raw)
	require.NoError(t, err)

	it := corrupt.Iterator()
	ok, err := it.Next()
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = it.Next()
	require.False(t, ok)
	require.ErrorIs(t, err, errs.ErrInvalidControlBits)
	require.ErrorIs(t, it.Err(), errs.ErrInvalidControlBits)
}

func TestXORIterator_AtBeforeNextPanics(t *testing.T) {
	c := NewXORChunk()
	defer c.Close()

	appendSamples(t, c, []sample{{1, 1.0}})

	it := c.Iterator()
	require.Panics(t, func() { it.At() })

	// Exhausting the iterator invalidates At again.
	ok, err := it.Next()
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = it.Next()
	require.NoError(t, err)
	require.False(t, ok)
	require.Panics(t, func() { it.At() })
}
