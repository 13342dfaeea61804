// Package bitstream implements the bit-granular stream primitive behind the
// chunk codecs: an append-only Writer packing bits MSB-first into a pooled
// byte buffer, and a Reader consuming them through a 64-bit refill buffer.
//
// Writes that do not land on a byte boundary mutate the last stored byte in
// place, setting bits inside its zero padding. The total number of readable
// bits therefore always equals the number of bits written; only the final
// byte of a stream carries padding. Because of the in-place tail mutation,
// a Writer must not run concurrently with Readers over the same bytes
// without external synchronization.
package bitstream

import "github.com/detailyang/chunkenc/internal/pool"

// Bit is a single bit value.
type Bit bool

const (
	Zero Bit = false
	One  Bit = true
)

// Writer appends bits to a byte buffer, most significant bit first.
//
// The zero Writer is not usable; create one with NewWriter. Writes never
// fail, bounded only by memory.
type Writer struct {
	buf *pool.ByteBuffer
	// free is the number of writable low-order bits left in the last byte
	// of the buffer. 0 means the last byte is full and the next write
	// appends a fresh byte.
	free uint8
}

// NewWriter wraps buf for appending. totalBits is the number of valid bits
// already present in buf (16 for a fresh chunk holding only its header,
// more when resuming over replayed bytes); the remaining low-order bits of
// the final byte are zero padding that subsequent writes fill in place.
func NewWriter(buf *pool.ByteBuffer, totalBits int) *Writer {
	return &Writer{
		buf:  buf,
		free: uint8((8 - totalBits%8) % 8), //nolint:gosec // value is 0..7
	}
}

// WriteBit appends a single bit.
func (w *Writer) WriteBit(bit Bit) {
	if w.free == 0 {
		w.buf.AppendByte(0)
		w.free = 8
	}

	if bit {
		i := w.buf.Len() - 1
		w.buf.B[i] |= 1 << (w.free - 1)
	}

	w.free--
}

// WriteByte appends all 8 bits of b, spilling across the byte boundary when
// the last byte is partially filled.
func (w *Writer) WriteByte(b byte) { //nolint:govet // stdmethods: bit-level writer, never fails
	if w.free == 0 {
		w.buf.AppendByte(b)
		return
	}

	// Fill the tail byte with the high bits of b, then start a new byte
	// with the remainder. The number of free bits is unchanged.
	i := w.buf.Len() - 1
	w.buf.B[i] |= b >> (8 - w.free)
	w.buf.AppendByte(b << w.free)
}

// WriteBits appends the nbits low-order bits of u, most significant first.
// nbits must be in [0, 64].
func (w *Writer) WriteBits(u uint64, nbits int) {
	if nbits == 0 {
		return
	}

	// Left-align the payload so the next bit to emit is always bit 63.
	u <<= 64 - uint(nbits) //nolint:gosec // nbits is 1..64

	for nbits >= 8 {
		w.WriteByte(byte(u >> 56))
		u <<= 8
		nbits -= 8
	}

	for nbits > 0 {
		w.WriteBit(Bit(u>>63 == 1))
		u <<= 1
		nbits--
	}
}
