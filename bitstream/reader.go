package bitstream

import (
	"encoding/binary"

	"github.com/detailyang/chunkenc/errs"
)

// Reader consumes bits from a byte slice, most significant bit first.
//
// It buffers up to 64 bits from the underlying slice for efficient
// extraction; the buffered bits are kept left-aligned so the next bit to
// deliver is always bit 63. A read past the end of the available bits fails
// with errs.ErrUnderrun and leaves the reader in an undefined position, so
// callers must treat the first error as terminal.
//
// Readers never mutate the underlying bytes. Any number of Readers may
// consume the same slice concurrently.
type Reader struct {
	data     []byte
	bytePos  int    // next byte to load from data
	bitBuf   uint64 // left-aligned buffered bits
	bitCount int    // number of valid bits in bitBuf
}

// NewReader creates a Reader positioned at the first bit of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// ReadBit consumes a single bit.
func (r *Reader) ReadBit() (Bit, error) {
	if r.bitCount == 0 && !r.fill() {
		return Zero, errs.ErrUnderrun
	}

	bit := r.bitBuf>>63 == 1
	r.bitBuf <<= 1
	r.bitCount--

	return Bit(bit), nil
}

// ReadByte consumes the next 8 bits as a byte.
func (r *Reader) ReadByte() (byte, error) {
	u, err := r.ReadBits(8)
	if err != nil {
		return 0, err
	}

	return byte(u), nil
}

// ReadBits consumes nbits bits (0..64) and returns them right-aligned.
func (r *Reader) ReadBits(nbits int) (uint64, error) {
	if nbits == 0 {
		return 0, nil
	}

	if nbits <= r.bitCount {
		result := r.bitBuf >> (64 - uint(nbits)) //nolint:gosec // nbits is 1..64
		r.bitBuf <<= uint(nbits)                 //nolint:gosec
		r.bitCount -= nbits

		return result, nil
	}

	var result uint64
	first := true

	for nbits > 0 {
		if r.bitCount == 0 && !r.fill() {
			return 0, errs.ErrUnderrun
		}

		n := nbits
		if n > r.bitCount {
			n = r.bitCount
		}

		chunk := r.bitBuf >> (64 - uint(n)) //nolint:gosec // n is 1..64
		if first {
			result = chunk
			first = false
		} else {
			result = result<<uint(n) | chunk //nolint:gosec
		}

		r.bitBuf <<= uint(n) //nolint:gosec
		r.bitCount -= n
		nbits -= n
	}

	return result, nil
}

// BitsRead reports the number of bits consumed so far, including bits still
// sitting unread in the refill buffer as not consumed.
func (r *Reader) BitsRead() int {
	return r.bytePos*8 - r.bitCount
}

// fill loads up to 8 more bytes from the stream into the bit buffer.
// It reports false when the stream is exhausted.
func (r *Reader) fill() bool {
	if r.bytePos >= len(r.data) {
		return false
	}

	n := len(r.data) - r.bytePos
	if n >= 8 {
		r.bitBuf = binary.BigEndian.Uint64(r.data[r.bytePos : r.bytePos+8])
		r.bytePos += 8
		r.bitCount = 64

		return true
	}

	r.bitBuf = 0
	for i := 0; i < n; i++ {
		r.bitBuf = r.bitBuf<<8 | uint64(r.data[r.bytePos])
		r.bytePos++
	}

	// Left-align partial loads so extraction stays MSB-first.
	r.bitBuf <<= uint(8*(8-n)) //nolint:gosec // n is 1..7
	r.bitCount = 8 * n

	return true
}
