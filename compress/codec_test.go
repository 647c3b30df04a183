package compress

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/suvrajeet01/hyperspy/format"
)

// chunkPayload builds a synthetic raw float64 chunk payload with smooth
// structure, the shape of data the signal chunk store actually compresses.
func chunkPayload(n int) []byte {
	rng := rand.New(rand.NewSource(42))
	buf := make([]byte, 0, n*8)
	for i := range n {
		bits := uint64(i*1000) + uint64(rng.Intn(16))
		buf = append(buf,
			byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24),
			byte(bits>>32), byte(bits>>40), byte(bits>>48), byte(bits>>56))
	}

	return buf
}

func TestCodecRoundTrip(t *testing.T) {
	payload := chunkPayload(4096)

	codecs := map[string]Codec{
		"noop": NewNoOpCompressor(),
		"s2":   NewS2Compressor(),
		"lz4":  NewLZ4Compressor(),
		"zstd": NewZstdCompressor(),
	}

	for name, codec := range codecs {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			restored, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.True(t, bytes.Equal(payload, restored))
		})
	}
}

func TestCodecEmptyInput(t *testing.T) {
	codecs := []Codec{
		NewNoOpCompressor(),
		NewS2Compressor(),
		NewLZ4Compressor(),
		NewZstdCompressor(),
	}

	for _, codec := range codecs {
		compressed, err := codec.Compress(nil)
		require.NoError(t, err)
		require.Empty(t, compressed)

		restored, err := codec.Decompress(nil)
		require.NoError(t, err)
		require.Empty(t, restored)
	}
}

func TestCodecFor(t *testing.T) {
	tests := []struct {
		name string
		typ  format.CompressionType
		want Codec
	}{
		{"none", format.CompressionNone, NoOpCompressor{}},
		{"zstd", format.CompressionZstd, ZstdCompressor{}},
		{"s2", format.CompressionS2, S2Compressor{}},
		{"lz4", format.CompressionLZ4, LZ4Compressor{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec, err := CodecFor(tt.typ)
			require.NoError(t, err)
			require.Equal(t, tt.want, codec)
		})
	}

	_, err := CodecFor(format.CompressionType(0xff))
	require.Error(t, err)
}

func TestCodecCompressesStructuredData(t *testing.T) {
	payload := chunkPayload(16384)

	for name, codec := range map[string]Codec{
		"s2":   NewS2Compressor(),
		"lz4":  NewLZ4Compressor(),
		"zstd": NewZstdCompressor(),
	} {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(payload)
			require.NoError(t, err)
			require.Less(t, len(compressed), len(payload))
		})
	}
}
