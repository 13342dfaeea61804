package compress

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/detailyang/chunkenc/errs"
	"github.com/detailyang/chunkenc/format"
)

// chunkLikePayload builds bytes with the redundancy profile of encoded
// chunks: long runs of identical headers and padding around short bursts
// of dense bits.
func chunkLikePayload(size int) []byte {
	rng := rand.New(rand.NewSource(7))
	data := make([]byte, size)
	for i := 0; i < size; {
		if rng.Intn(4) == 0 {
			n := rng.Intn(32) + 1
			for j := 0; j < n && i < size; j++ {
				data[i] = byte(rng.Intn(256))
				i++
			}
		} else {
			n := rng.Intn(64) + 16
			b := byte(rng.Intn(4))
			for j := 0; j < n && i < size; j++ {
				data[i] = b
				i++
			}
		}
	}
	return data
}

func TestCodec_Roundtrip(t *testing.T) {
	payloads := map[string][]byte{
		"empty":      {},
		"single":     {0x42},
		"chunk-like": chunkLikePayload(16 * 1024),
	}

	types := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}

	for _, ct := range types {
		codec, err := NewCodec(ct)
		require.NoError(t, err)

		for name, payload := range payloads {
			t.Run(ct.String()+"/"+name, func(t *testing.T) {
				compressed, err := codec.Compress(payload)
				require.NoError(t, err)

				restored, err := codec.Decompress(compressed)
				require.NoError(t, err)
				require.True(t, bytes.Equal(payload, restored))
			})
		}
	}
}

func TestCodec_CompressesRedundantData(t *testing.T) {
	payload := chunkLikePayload(64 * 1024)

	for _, ct := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := NewCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)
			require.Less(t, len(compressed), len(payload))
		})
	}
}

func TestCodec_DecompressCorrupted(t *testing.T) {
	junk := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x01, 0x02, 0x03}

	for _, ct := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := NewCodec(ct)
			require.NoError(t, err)

			_, err = codec.Decompress(junk)
			require.Error(t, err)
		})
	}
}

func TestNewCodec_Invalid(t *testing.T) {
	_, err := NewCodec(format.CompressionType(0xFF))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}

func TestNoOp_PassThrough(t *testing.T) {
	codec := NewNoOpCompressor()
	payload := []byte{1, 2, 3}

	compressed, err := codec.Compress(payload)
	require.NoError(t, err)
	require.Equal(t, payload, compressed)

	restored, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, payload, restored)
}
