package compress

// NoOpCompressor bypasses data without compression.
//
// Useful when chunk payloads are kept in memory anyway, when measuring codec
// overhead, or when the data is incompressible.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor that bypasses data.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns the input slice as-is, without processing or copying.
//
// Note: The returned slice shares the same underlying memory as the input.
// Callers must not modify the input data afterwards if they plan to use the
// returned slice.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input slice as-is, without processing or copying.
//
// Note: The returned slice shares the same underlying memory as the input.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
