package encoding

import (
	"fmt"

	"github.com/detailyang/chunkenc/bitstream"
)

// TimestampEncoder compresses a monotonically appended sequence of int64
// timestamps into a bit stream using delta-of-delta encoding.
//
// The encoder is positional: the first Encode call stores the timestamp
// verbatim, the second stores the delta, and later calls store the
// delta-of-delta with a prefix code. Timestamp ordering is the caller's
// responsibility; out-of-order timestamps still round-trip, they just
// compress poorly.
type TimestampEncoder struct {
	prevTS    int64
	prevDelta int64
	count     int
}

// Encode appends the encoding of t to w and advances the encoder state.
func (e *TimestampEncoder) Encode(w *bitstream.Writer, t int64) {
	switch e.count {
	case 0:
		w.WriteBits(uint64(t), 64) //nolint:gosec // bit-pattern store

	case 1:
		delta := t - e.prevTS
		w.WriteBits(uint64(delta), 64) //nolint:gosec // bit-pattern store
		e.prevDelta = delta

	default:
		delta := t - e.prevTS
		dod := delta - e.prevDelta

		switch {
		case dod == 0:
			w.WriteBit(bitstream.Zero)
		case bitRange(dod, 7):
			w.WriteBits(0b10, 2)
			w.WriteBits(uint64(dod), 7) //nolint:gosec // two's complement payload
		case bitRange(dod, 9):
			w.WriteBits(0b110, 3)
			w.WriteBits(uint64(dod), 9) //nolint:gosec
		case bitRange(dod, 12):
			w.WriteBits(0b1110, 4)
			w.WriteBits(uint64(dod), 12) //nolint:gosec
		default:
			w.WriteBits(0b1111, 4)
			w.WriteBits(uint64(dod), 64) //nolint:gosec
		}

		e.prevDelta = delta
	}

	e.prevTS = t
	e.count++
}

// Count returns the number of timestamps encoded so far.
func (e *TimestampEncoder) Count() int {
	return e.count
}

// bitRange reports whether x fits the signed nbits payload tier. The tiers
// are asymmetric: nbits covers [-(2^(nbits-1)-1), 2^(nbits-1)], freeing the
// all-ones negative extreme to keep encode/decode symmetric.
func bitRange(x int64, nbits uint8) bool {
	return -((1 << (nbits - 1)) - 1) <= x && x <= 1<<(nbits-1)
}

// TimestampDecoder mirrors TimestampEncoder, replaying the encoder's state
// machine over a bit stream to recover the original timestamps.
type TimestampDecoder struct {
	ts    int64
	delta int64
	count int
}

// Decode consumes the next encoded timestamp from r and returns it.
// Errors from the underlying stream, including errs.ErrUnderrun on
// truncated data, leave the decoder in an undefined state.
func (d *TimestampDecoder) Decode(r *bitstream.Reader) (int64, error) {
	switch d.count {
	case 0:
		u, err := r.ReadBits(64)
		if err != nil {
			return 0, fmt.Errorf("read first timestamp: %w", err)
		}
		d.ts = int64(u) //nolint:gosec // bit-pattern load

	case 1:
		u, err := r.ReadBits(64)
		if err != nil {
			return 0, fmt.Errorf("read first delta: %w", err)
		}
		d.delta = int64(u) //nolint:gosec // bit-pattern load
		d.ts += d.delta

	default:
		dod, err := d.readDod(r)
		if err != nil {
			return 0, err
		}
		d.delta += dod
		d.ts += d.delta
	}

	d.count++

	return d.ts, nil
}

// readDod reads the prefix code and the matching payload, sign-extending
// the fixed-width tiers.
func (d *TimestampDecoder) readDod(r *bitstream.Reader) (int64, error) {
	// The prefix is a unary run of ones, at most four bits long.
	var ones int
	for ones < 4 {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, fmt.Errorf("read dod prefix: %w", err)
		}
		if bit == bitstream.Zero {
			break
		}
		ones++
	}

	var sz uint8
	switch ones {
	case 0:
		return 0, nil
	case 1:
		sz = 7
	case 2:
		sz = 9
	case 3:
		sz = 12
	case 4:
		u, err := r.ReadBits(64)
		if err != nil {
			return 0, fmt.Errorf("read 64-bit dod: %w", err)
		}

		return int64(u), nil //nolint:gosec // two's complement payload
	}

	u, err := r.ReadBits(int(sz))
	if err != nil {
		return 0, fmt.Errorf("read %d-bit dod: %w", sz, err)
	}

	dod := int64(u) //nolint:gosec // sz <= 12
	if u > 1<<(sz-1) {
		// Values above the positive maximum encode negatives.
		dod -= 1 << sz
	}

	return dod, nil
}

// Count returns the number of timestamps decoded so far.
func (d *TimestampDecoder) Count() int {
	return d.count
}

// ResumeTimestampEncoder creates an encoder whose state continues where d
// left off. Used to rebuild an appender over a chunk's existing samples by
// replaying them through a decoder first.
func ResumeTimestampEncoder(d *TimestampDecoder) *TimestampEncoder {
	return &TimestampEncoder{
		prevTS:    d.ts,
		prevDelta: d.delta,
		count:     d.count,
	}
}
