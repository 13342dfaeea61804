// Package chunkenc implements a compact binary codec for time-series
// samples: ordered pairs of an int64 timestamp and a float64 value.
//
// Samples are packed at bit granularity into chunks of up to 65535 samples.
// Timestamps use delta-of-delta encoding, so evenly spaced samples cost a
// single bit each; values use XOR-of-bit-pattern encoding with
// leading/trailing-zero window reuse, so unchanged values also cost a
// single bit. Typical monitoring data compresses to a couple of bytes per
// sample while iterating back at memory speed.
//
// # Basic Usage
//
// Appending and reading back samples:
//
//	chunk := chunkenc.NewXORChunk()
//	defer chunk.Close()
//
//	app, _ := chunk.Appender()
//	for i := range 10 {
//	    if err := app.Append(int64(1000+i*10), float64(i)*0.5); err != nil {
//	        // Only errs.ErrChunkFull: rotate to a new chunk.
//	    }
//	}
//	app.Release()
//
//	it := chunk.Iterator()
//	for {
//	    ok, err := it.Next()
//	    if err != nil || !ok {
//	        break
//	    }
//	    t, v := it.At()
//	    fmt.Println(t, v)
//	}
//
// Persisting and restoring:
//
//	raw := chunk.Bytes() // 2-byte sample count header + bit-packed payload
//	restored, _ := chunkenc.FromData(format.EncodingXOR, raw)
//
// # Wire Format
//
// Bytes [0..2) hold the sample count as a big-endian uint16; bytes [2..)
// hold the bit-packed samples, most significant bit first within each byte,
// in append order with no padding between samples. Only the final byte of
// the stream carries trailing zero padding. The packages bitstream and
// encoding document the per-sample layout.
//
// # Concurrency
//
// Chunks do no internal locking. Any number of iterators may read a chunk
// concurrently; each one independently sees the samples present when it was
// created. Appending concurrently with iteration requires external
// synchronization, because a write that does not land on a byte boundary
// mutates the stream's last byte in place.
package chunkenc

import (
	"github.com/detailyang/chunkenc/compress"
	"github.com/detailyang/chunkenc/format"
)

// Compress compresses persisted chunk bytes with the given compression
// type. It is a convenience wrapper over the compress package for callers
// archiving Chunk.Bytes.
func Compress(t format.CompressionType, data []byte) ([]byte, error) {
	codec, err := compress.NewCodec(t)
	if err != nil {
		return nil, err
	}

	return codec.Compress(data)
}

// Decompress restores chunk bytes produced by Compress with the same
// compression type.
func Decompress(t format.CompressionType, data []byte) ([]byte, error) {
	codec, err := compress.NewCodec(t)
	if err != nil {
		return nil, err
	}

	return codec.Decompress(data)
}
