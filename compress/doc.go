// Package compress provides compression codecs for signal chunk payloads and
// fit result blobs.
//
// Chunk payloads are fixed-width little-endian float64 grids; result blobs
// are fixed-width records of fitted parameter values, errors and statistics.
// Both compress well with general-purpose algorithms, and the chunk store and
// the result codec apply one of the codecs in this package to whole payloads.
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Supported algorithms
//
//   - None (format.CompressionNone): pass-through, zero overhead. Use when the
//     data is held in memory anyway or is incompressible.
//   - Zstd (format.CompressionZstd): best ratio, moderate speed. Use for cold
//     storage of large scan datasets and archived fit results.
//   - S2 (format.CompressionS2): balanced ratio and speed. Good default for
//     chunked stores that are decoded repeatedly during multidimensional fits.
//   - LZ4 (format.CompressionLZ4): fastest decompression. Use when chunk
//     decode latency dominates, e.g. sparse random access across a large scan.
//
// Select a codec from a format tag with CodecFor:
//
//	codec, err := compress.CodecFor(format.CompressionS2)
//	if err != nil {
//	    return err
//	}
//	payload, err := codec.Compress(raw)
//
// # Thread safety
//
// All codec implementations are stateless values or use internal pooling, and
// are safe for concurrent use. A chunked store shared by parallel fit workers
// can therefore share a single codec instance.
package compress
