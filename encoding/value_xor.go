package encoding

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/detailyang/chunkenc/bitstream"
	"github.com/detailyang/chunkenc/errs"
)

// maxLeading is the largest leading-zero count representable in the 5-bit
// field. Larger counts are clamped; the meaningful block then covers the
// extra zero bits, which costs space but never correctness.
const maxLeading = 31

// ValueEncoder compresses a sequence of float64 values into a bit stream by
// XORing each value's IEEE-754 bit pattern with its predecessor's.
//
// The encoder tracks the leading/trailing-zero window of the most recent
// non-zero XOR; when the next XOR fits inside it, only the window's
// meaningful bits are emitted. Values are treated purely as bit patterns:
// NaN payloads and negative zero survive a round trip exactly.
type ValueEncoder struct {
	prevBits uint64
	leading  int
	trailing int
	// blockSize is 64 - leading - trailing for the current window, or 0
	// while no non-zero XOR has been seen yet.
	blockSize int
	count     int
}

// Encode appends the encoding of v to w and advances the encoder state.
func (e *ValueEncoder) Encode(w *bitstream.Writer, v float64) {
	valBits := math.Float64bits(v)

	if e.count == 0 {
		w.WriteBits(valBits, 64)
		e.prevBits = valBits
		e.count++

		return
	}

	xor := valBits ^ e.prevBits
	e.prevBits = valBits
	e.count++

	if xor == 0 {
		w.WriteBit(bitstream.Zero)
		return
	}

	w.WriteBit(bitstream.One)

	leading := bits.LeadingZeros64(xor)
	trailing := bits.TrailingZeros64(xor)
	if leading > maxLeading {
		leading = maxLeading
	}

	if e.blockSize > 0 && leading >= e.leading && trailing >= e.trailing {
		// The XOR fits the previous window: reuse it.
		w.WriteBit(bitstream.Zero)
		w.WriteBits(xor>>uint(e.trailing), e.blockSize) //nolint:gosec // trailing is 0..63

		return
	}

	blockSize := 64 - leading - trailing
	w.WriteBit(bitstream.One)
	w.WriteBits(uint64(leading), 5)             //nolint:gosec // clamped to 0..31
	w.WriteBits(uint64(blockSize-1), 6)         //nolint:gosec // blockSize is 1..64
	w.WriteBits(xor>>uint(trailing), blockSize) //nolint:gosec

	e.leading = leading
	e.trailing = trailing
	e.blockSize = blockSize
}

// Count returns the number of values encoded so far.
func (e *ValueEncoder) Count() int {
	return e.count
}

// ValueDecoder mirrors ValueEncoder, replaying the XOR state machine over a
// bit stream to recover the original values bit-for-bit.
type ValueDecoder struct {
	bits     uint64
	trailing int
	// blockSize is 0 until the stream defines its first window. A reuse
	// control bit before that is a stream a valid encoder cannot produce.
	blockSize int
	count     int
}

// Decode consumes the next encoded value from r and returns it.
//
// It fails with a wrapped errs.ErrUnderrun on truncated data and with
// errs.ErrInvalidControlBits on control sequences no encoder emits. Either
// error leaves the decoder in an undefined state.
func (d *ValueDecoder) Decode(r *bitstream.Reader) (float64, error) {
	if d.count == 0 {
		u, err := r.ReadBits(64)
		if err != nil {
			return 0, fmt.Errorf("read first value: %w", err)
		}
		d.bits = u
		d.count++

		return math.Float64frombits(d.bits), nil
	}

	d.count++

	changed, err := r.ReadBit()
	if err != nil {
		return 0, fmt.Errorf("read value control bit: %w", err)
	}
	if changed == bitstream.Zero {
		return math.Float64frombits(d.bits), nil
	}

	newWindow, err := r.ReadBit()
	if err != nil {
		return 0, fmt.Errorf("read window control bit: %w", err)
	}

	if newWindow == bitstream.One {
		leading, err := r.ReadBits(5)
		if err != nil {
			return 0, fmt.Errorf("read leading zero count: %w", err)
		}

		sz, err := r.ReadBits(6)
		if err != nil {
			return 0, fmt.Errorf("read block size: %w", err)
		}

		blockSize := int(sz) + 1
		trailing := 64 - int(leading) - blockSize
		if trailing < 0 {
			return 0, fmt.Errorf("%w: leading %d with block size %d exceeds 64 bits",
				errs.ErrInvalidControlBits, leading, blockSize)
		}

		d.trailing = trailing
		d.blockSize = blockSize
	} else if d.blockSize == 0 {
		return 0, fmt.Errorf("%w: window reuse before any window was defined",
			errs.ErrInvalidControlBits)
	}

	meaningful, err := r.ReadBits(d.blockSize)
	if err != nil {
		return 0, fmt.Errorf("read meaningful bits: %w", err)
	}

	d.bits ^= meaningful << uint(d.trailing) //nolint:gosec // trailing is 0..63

	return math.Float64frombits(d.bits), nil
}

// Count returns the number of values decoded so far.
func (d *ValueDecoder) Count() int {
	return d.count
}

// ResumeValueEncoder creates an encoder whose state continues where d left
// off. The window's leading-zero count is recovered from the stored block
// size and trailing count.
func ResumeValueEncoder(d *ValueDecoder) *ValueEncoder {
	e := &ValueEncoder{
		prevBits:  d.bits,
		trailing:  d.trailing,
		blockSize: d.blockSize,
		count:     d.count,
	}
	if d.blockSize > 0 {
		e.leading = 64 - d.blockSize - d.trailing
	}

	return e
}
