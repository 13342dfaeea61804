// Package encoding implements the two sample codecs that make up the XOR
// chunk format: a delta-of-delta codec for int64 timestamps and an
// XOR-of-bit-pattern codec for float64 values.
//
// Both codecs are stateful and interleave their output into one shared bit
// stream, so an encoder/decoder pair must process samples strictly in append
// order. The chunk appender drives one TimestampEncoder and one ValueEncoder;
// each chunk iterator drives its own independent TimestampDecoder and
// ValueDecoder pair over the same bytes.
//
// # Timestamp encoding
//
// The first timestamp is stored verbatim as 64 bits and the second as a
// literal 64-bit delta. From the third sample on, the difference between
// consecutive deltas (the delta-of-delta) is stored with a variable-width
// prefix code, smallest range first:
//
//	dod == 0            -> '0'
//	-63   <= dod <= 64  -> '10'   + 7-bit two's complement
//	-255  <= dod <= 256 -> '110'  + 9-bit two's complement
//	-2047 <= dod <= 2048-> '1110' + 12-bit two's complement
//	otherwise           -> '1111' + 64-bit two's complement
//
// Evenly spaced samples therefore cost a single bit each.
//
// # Value encoding
//
// The first value's IEEE-754 bit pattern is stored verbatim. Each later
// value is XORed with its predecessor: an XOR of zero costs one '0' bit;
// otherwise a '1' bit is followed by either a '0' bit reusing the previous
// leading/trailing-zero window and its meaningful bits, or a '1' bit with a
// new 5-bit leading-zero count, a 6-bit (length-1) field, and the meaningful
// bits. Leading-zero counts above 31 are clamped to 31 since the field is
// 5 bits wide; the meaningful block then simply includes the extra zero
// bits. Values round-trip bit-exactly, including NaN payloads and the sign
// of negative zero.
package encoding
