// Package errs defines the sentinel errors shared across the chunkenc packages.
//
// Callers match them with errors.Is; packages wrap them with additional
// context using fmt.Errorf("%w: ...", errs.ErrX, ...).
package errs

import "errors"

var (
	// ErrChunkFull is returned by Appender.Append when the chunk already
	// holds the maximum of 65535 samples. The appender is not recoverable;
	// the caller must rotate to a new chunk.
	ErrChunkFull = errors.New("chunk full")

	// ErrAppenderExists is returned by Chunk.Appender when the chunk already
	// has a live appender. No chunk state is mutated.
	ErrAppenderExists = errors.New("appender already exists")

	// ErrUnderrun is returned by bitstream reads that run past the end of
	// the available bits. It indicates a truncated or corrupt stream.
	ErrUnderrun = errors.New("bitstream underrun")

	// ErrInvalidControlBits is returned when a decoder encounters a control
	// bit pattern that a valid encoder cannot produce, such as a window
	// reuse bit before any window has been established.
	ErrInvalidControlBits = errors.New("invalid control bits")

	// ErrInvalidEncoding is returned when an unknown encoding type is
	// requested from a chunk factory.
	ErrInvalidEncoding = errors.New("invalid encoding type")

	// ErrInvalidCompression is returned when an unknown compression type is
	// requested from the compression codec factory.
	ErrInvalidCompression = errors.New("invalid compression type")

	// ErrTooShort is returned when persisted chunk bytes are shorter than
	// the fixed 2-byte sample count header.
	ErrTooShort = errors.New("chunk data too short")
)
