package signal

import (
	"fmt"
	"sync"

	"github.com/suvrajeet01/hyperspy/compress"
	"github.com/suvrajeet01/hyperspy/endian"
	"github.com/suvrajeet01/hyperspy/errs"
	"github.com/suvrajeet01/hyperspy/format"
	"github.com/suvrajeet01/hyperspy/internal/options"
)

// ChunkSource computes or loads the raw float64 data of one chunk on demand.
//
// Chunk index c covers the outermost-dimension rows
// [c*chunkRows, min((c+1)*chunkRows, shape[0])), each row holding the full
// inner block. Implementations must be idempotent and safe for concurrent
// invocation: two workers may compute the same chunk at the same time and
// both results must be identical.
type ChunkSource func(chunk int) ([]float64, error)

// ChunkedStore serves a lazily computed, chunked backing array.
//
// The array is chunked along its outermost (first navigation) dimension.
// Reading a region touches only the chunks overlapping it; decoded chunks are
// memoized in an instance-scoped cache guarded by a mutex, so concurrent
// readers are safe and no global state is involved.
type ChunkedStore struct {
	shape     []int
	strides   []int
	rowElems  int
	chunkRows int
	numChunks int
	source    ChunkSource

	mu        sync.Mutex
	cache     map[int][]float64
	maxCached int // 0 means unlimited
}

var _ Store = (*ChunkedStore)(nil)

// StoreOption is a functional option for ChunkedStore construction.
type StoreOption = options.Option[*ChunkedStore]

// WithMaxCachedChunks bounds the memoization cache to at most n decoded
// chunks. When the bound is hit an arbitrary cached chunk is dropped; a
// dropped chunk is simply recomputed on next access.
func WithMaxCachedChunks(n int) StoreOption {
	return options.New(func(s *ChunkedStore) error {
		if n < 0 {
			return fmt.Errorf("max cached chunks must not be negative, got %d", n)
		}
		s.maxCached = n

		return nil
	})
}

// NewChunkedStore creates a ChunkedStore over the given shape, with chunkRows
// outermost-dimension rows per chunk, pulling chunk data from source.
func NewChunkedStore(shape []int, chunkRows int, source ChunkSource, opts ...StoreOption) (*ChunkedStore, error) {
	if len(shape) == 0 {
		return nil, fmt.Errorf("%w: empty shape", errs.ErrInvalidAxis)
	}
	for i, dim := range shape {
		if dim <= 0 {
			return nil, fmt.Errorf("%w: dimension %d is %d", errs.ErrInvalidAxis, i, dim)
		}
	}
	if chunkRows <= 0 {
		return nil, fmt.Errorf("%w: %d rows per chunk", errs.ErrInvalidChunkShape, chunkRows)
	}
	if source == nil {
		return nil, fmt.Errorf("%w: nil chunk source", errs.ErrInvalidChunkShape)
	}

	s := &ChunkedStore{
		shape:     append([]int(nil), shape...),
		chunkRows: chunkRows,
		source:    source,
		cache:     make(map[int][]float64),
	}
	s.strides = rowMajorStrides(s.shape)
	s.rowElems = s.strides[0]
	s.numChunks = (shape[0] + chunkRows - 1) / chunkRows

	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	return s, nil
}

// NewCompressedChunkStore creates a ChunkedStore over pre-built compressed
// chunk payloads, as produced by BuildChunkPayloads. Each payload is a
// little-endian raw float64 grid compressed with the given compression type;
// payloads are decompressed lazily, one chunk at a time.
func NewCompressedChunkStore(shape []int, chunkRows int, payloads [][]byte, compression format.CompressionType, opts ...StoreOption) (*ChunkedStore, error) {
	codec, err := compress.CodecFor(compression)
	if err != nil {
		return nil, err
	}

	engine := endian.GetLittleEndianEngine()
	source := func(chunk int) ([]float64, error) {
		raw, err := codec.Decompress(payloads[chunk])
		if err != nil {
			return nil, fmt.Errorf("failed to decompress chunk %d: %w", chunk, err)
		}
		if len(raw)%8 != 0 {
			return nil, fmt.Errorf("%w: chunk %d payload is %d bytes", errs.ErrChunkSizeMismatch, chunk, len(raw))
		}

		return endian.DecodeFloat64Slice(engine, raw, len(raw)/8), nil
	}

	s, err := NewChunkedStore(shape, chunkRows, source, opts...)
	if err != nil {
		return nil, err
	}
	if len(payloads) != s.numChunks {
		return nil, fmt.Errorf("%w: %d payloads for %d chunks", errs.ErrInvalidChunkShape, len(payloads), s.numChunks)
	}

	return s, nil
}

// BuildChunkPayloads splits a flat row-major array into chunk payloads of
// chunkRows outermost rows each, serialized little-endian and compressed with
// the given compression type. The inverse of NewCompressedChunkStore's decode
// path.
func BuildChunkPayloads(shape []int, data []float64, chunkRows int, compression format.CompressionType) ([][]byte, error) {
	if len(shape) == 0 || chunkRows <= 0 {
		return nil, fmt.Errorf("%w: shape %v, %d rows per chunk", errs.ErrInvalidChunkShape, shape, chunkRows)
	}
	total := regionSize(shape)
	if total != len(data) {
		return nil, fmt.Errorf("%w: shape %v holds %d elements, data has %d",
			errs.ErrShapeMismatch, shape, total, len(data))
	}

	codec, err := compress.CodecFor(compression)
	if err != nil {
		return nil, err
	}

	engine := endian.GetLittleEndianEngine()
	rowElems := total / shape[0]
	numChunks := (shape[0] + chunkRows - 1) / chunkRows

	payloads := make([][]byte, numChunks)
	for c := range numChunks {
		start := c * chunkRows * rowElems
		end := min(start+chunkRows*rowElems, total)

		raw := endian.AppendFloat64Slice(engine, make([]byte, 0, (end-start)*8), data[start:end])
		payload, err := codec.Compress(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to compress chunk %d: %w", c, err)
		}
		// the noop codec aliases its input; clone so payloads stay independent
		payloads[c] = append([]byte(nil), payload...)
	}

	return payloads, nil
}

// Shape returns a copy of the array shape.
func (s *ChunkedStore) Shape() []int {
	return append([]int(nil), s.shape...)
}

// NumChunks returns the number of chunks along the outermost dimension.
func (s *ChunkedStore) NumChunks() int {
	return s.numChunks
}

// CachedChunks returns the number of chunks currently memoized.
func (s *ChunkedStore) CachedChunks() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.cache)
}

// InvalidateCache drops every memoized chunk, forcing recomputation on next
// access. Call after mutating the data behind the chunk source.
func (s *ChunkedStore) InvalidateCache() {
	s.mu.Lock()
	s.cache = make(map[int][]float64)
	s.mu.Unlock()
}

// ReadRegion implements Store. Only the chunks overlapping the region are
// computed.
func (s *ChunkedStore) ReadRegion(offsets, sizes []int) ([]float64, error) {
	if err := checkRegion(s.shape, offsets, sizes); err != nil {
		return nil, err
	}

	out := make([]float64, regionSize(sizes))
	innerLen := regionSize(sizes[1:])

	for i := range sizes[0] {
		row := offsets[0] + i
		chunk, err := s.chunk(row / s.chunkRows)
		if err != nil {
			return nil, err
		}

		rowStart := (row - (row/s.chunkRows)*s.chunkRows) * s.rowElems
		rowData := chunk[rowStart : rowStart+s.rowElems]
		dst := out[i*innerLen : (i+1)*innerLen]

		if len(s.shape) == 1 {
			dst[0] = rowData[0]
			continue
		}
		copyRegion(rowData, s.shape[1:], s.strides[1:], offsets[1:], sizes[1:], dst, false)
	}

	return out, nil
}

// chunk returns the decoded data of one chunk, computing and memoizing it on
// first access. The source runs outside the lock so concurrent readers can
// decode different chunks in parallel; duplicated computation of the same
// chunk is harmless because sources are idempotent.
func (s *ChunkedStore) chunk(c int) ([]float64, error) {
	s.mu.Lock()
	if data, ok := s.cache[c]; ok {
		s.mu.Unlock()
		return data, nil
	}
	s.mu.Unlock()

	data, err := s.source(c)
	if err != nil {
		return nil, err
	}

	wantRows := min(s.chunkRows, s.shape[0]-c*s.chunkRows)
	if len(data) != wantRows*s.rowElems {
		return nil, fmt.Errorf("%w: chunk %d has %d elements, expected %d",
			errs.ErrChunkSizeMismatch, c, len(data), wantRows*s.rowElems)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cached, ok := s.cache[c]; ok {
		return cached, nil
	}
	if s.maxCached > 0 && len(s.cache) >= s.maxCached {
		for k := range s.cache {
			delete(s.cache, k)
			break
		}
	}
	s.cache[c] = data

	return data, nil
}
