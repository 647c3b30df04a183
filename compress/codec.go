package compress

import (
	"fmt"

	"github.com/suvrajeet01/hyperspy/format"
)

// Compressor compresses whole payloads: raw float64 chunk grids or fit result
// record blocks.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	//   - Internal buffers may be reused for efficiency
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores payloads previously produced by the matching
// Compressor.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original result.
	//
	// The input must have been compressed with the same algorithm; corrupted
	// or mismatched data yields an error, never a silently truncated payload.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	//   - Internal buffers may be reused for efficiency
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CodecFor returns the codec implementing the given compression type.
//
// Parameters:
//   - typ: Compression type tag from the format package
//
// Returns:
//   - Codec: Codec instance for the type
//   - error: Error if the type is unknown
func CodecFor(typ format.CompressionType) (Codec, error) {
	switch typ {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("unknown compression type: %v", typ)
	}
}
