package compress

// ZstdCompressor provides Zstandard compression, favouring ratio over speed.
//
// Suited to cold storage of large scan datasets and archived fit result
// blobs, where decompression happens infrequently.
//
// Two implementations exist behind build tags: a cgo binding (valyala/gozstd)
// when cgo is available, and a pure-Go fallback (klauspost/compress/zstd)
// otherwise. Both produce interchangeable Zstandard frames.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
