// Package format defines the wire-level type identifiers shared by the
// chunkenc packages: the chunk encoding scheme and the optional byte-level
// compression applied to persisted chunk bytes.
package format

type (
	EncodingType    uint8
	CompressionType uint8
)

const (
	// EncodingNone represents an unrecognized or empty encoding.
	EncodingNone EncodingType = 0x0
	// EncodingXOR represents the delta-of-delta timestamp plus XOR value scheme.
	EncodingXOR EncodingType = 0x1

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (e EncodingType) String() string {
	switch e {
	case EncodingXOR:
		return "XOR"
	case EncodingNone:
		return "None"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
