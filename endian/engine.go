// Package endian provides byte order utilities for the chunkenc wire format.
//
// It combines the ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single EndianEngine interface so callers can both
// read fixed-width fields and append them without a scratch buffer.
//
// The chunk wire format is fixed big-endian: the 2-byte sample count header
// and the 64-bit words moved in and out of the bit stream all use
// GetBigEndianEngine(). The little-endian engine exists for callers that
// embed chunk bytes inside little-endian containers of their own.
//
// All returned engines are the stateless standard library byte orders and
// are safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// It is satisfied by binary.BigEndian and binary.LittleEndian, making it
// fully compatible with existing code while providing access to both
// read/write and append operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetBigEndianEngine returns the big-endian engine used by the chunk format.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
