package signal

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/suvrajeet01/hyperspy/errs"
	"github.com/suvrajeet01/hyperspy/format"
)

// countingSource wraps a MemoryStore-backed array as a ChunkSource that
// counts how many times each chunk is computed.
func countingSource(data []float64, shape []int, chunkRows int, calls *atomic.Int64) ChunkSource {
	rowElems := regionSize(shape) / shape[0]

	return func(chunk int) ([]float64, error) {
		calls.Add(1)
		start := chunk * chunkRows * rowElems
		end := min(start+chunkRows*rowElems, len(data))
		out := make([]float64, end-start)
		copy(out, data[start:end])

		return out, nil
	}
}

func TestChunkedStoreLazyRead(t *testing.T) {
	shape := []int{8, 4} // 8 rows, 2 rows per chunk => 4 chunks
	data := seqData(32)
	var calls atomic.Int64

	s, err := NewChunkedStore(shape, 2, countingSource(data, shape, 2, &calls))
	require.NoError(t, err)
	require.Equal(t, 4, s.NumChunks())

	// a single-row read computes exactly one chunk
	got, err := s.ReadRegion([]int{5, 0}, []int{1, 4})
	require.NoError(t, err)
	require.Equal(t, []float64{20, 21, 22, 23}, got)
	require.Equal(t, int64(1), calls.Load())

	// a second read from the same chunk is served from the memo
	_, err = s.ReadRegion([]int{4, 1}, []int{1, 2})
	require.NoError(t, err)
	require.Equal(t, int64(1), calls.Load())

	// a read spanning two chunks computes the second one
	got, err = s.ReadRegion([]int{3, 0}, []int{2, 4})
	require.NoError(t, err)
	require.Equal(t, []float64{12, 13, 14, 15, 16, 17, 18, 19}, got)
	require.Equal(t, int64(3), calls.Load())
}

func TestChunkedStoreUnevenTail(t *testing.T) {
	// 5 rows with 2 rows per chunk leaves a 1-row tail chunk
	shape := []int{5, 3}
	data := seqData(15)
	var calls atomic.Int64

	s, err := NewChunkedStore(shape, 2, countingSource(data, shape, 2, &calls))
	require.NoError(t, err)
	require.Equal(t, 3, s.NumChunks())

	got, err := s.ReadRegion([]int{4, 0}, []int{1, 3})
	require.NoError(t, err)
	require.Equal(t, []float64{12, 13, 14}, got)
}

func TestChunkedStoreFullEqualsMemory(t *testing.T) {
	shape := []int{4, 3, 5}
	data := seqData(60)
	var calls atomic.Int64

	mem, err := NewMemoryStore(shape, data)
	require.NoError(t, err)
	chunked, err := NewChunkedStore(shape, 3, countingSource(data, shape, 3, &calls))
	require.NoError(t, err)

	regions := []struct {
		offsets, sizes []int
	}{
		{[]int{0, 0, 0}, []int{4, 3, 5}},
		{[]int{2, 1, 0}, []int{1, 1, 5}},
		{[]int{1, 0, 2}, []int{2, 3, 2}},
		{[]int{3, 2, 4}, []int{1, 1, 1}},
	}

	for _, r := range regions {
		want, err := mem.ReadRegion(r.offsets, r.sizes)
		require.NoError(t, err)
		got, err := chunked.ReadRegion(r.offsets, r.sizes)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestChunkedStoreCacheBound(t *testing.T) {
	shape := []int{8, 2}
	data := seqData(16)
	var calls atomic.Int64

	s, err := NewChunkedStore(shape, 1, countingSource(data, shape, 1, &calls),
		WithMaxCachedChunks(2))
	require.NoError(t, err)

	for row := range 8 {
		_, err := s.ReadRegion([]int{row, 0}, []int{1, 2})
		require.NoError(t, err)
	}
	require.LessOrEqual(t, s.CachedChunks(), 2)

	t.Run("invalidate forces recompute", func(t *testing.T) {
		before := calls.Load()
		s.InvalidateCache()
		require.Zero(t, s.CachedChunks())

		_, err := s.ReadRegion([]int{0, 0}, []int{1, 2})
		require.NoError(t, err)
		require.Greater(t, calls.Load(), before)
	})

	t.Run("negative bound rejected", func(t *testing.T) {
		_, err := NewChunkedStore(shape, 1, countingSource(data, shape, 1, &calls),
			WithMaxCachedChunks(-1))
		require.Error(t, err)
	})
}

func TestChunkedStoreConcurrentReaders(t *testing.T) {
	shape := []int{16, 8}
	data := seqData(128)
	var calls atomic.Int64

	s, err := NewChunkedStore(shape, 4, countingSource(data, shape, 4, &calls))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for w := range 8 {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for row := range 16 {
				got, err := s.ReadRegion([]int{row, 0}, []int{1, 8})
				if err != nil {
					t.Errorf("worker %d row %d: %v", worker, row, err)
					return
				}
				if got[0] != float64(row*8) {
					t.Errorf("worker %d row %d: got %v", worker, row, got[0])
					return
				}
			}
		}(w)
	}
	wg.Wait()
}

func TestChunkedStoreSourceSizeValidation(t *testing.T) {
	bad := func(chunk int) ([]float64, error) {
		return make([]float64, 3), nil // wrong element count
	}

	s, err := NewChunkedStore([]int{4, 2}, 2, bad)
	require.NoError(t, err)

	_, err = s.ReadRegion([]int{0, 0}, []int{1, 2})
	require.ErrorIs(t, err, errs.ErrChunkSizeMismatch)
}

func TestCompressedChunkStore(t *testing.T) {
	shape := []int{6, 4}
	data := seqData(24)

	for _, compression := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionS2,
		format.CompressionLZ4,
		format.CompressionZstd,
	} {
		t.Run(compression.String(), func(t *testing.T) {
			payloads, err := BuildChunkPayloads(shape, data, 2, compression)
			require.NoError(t, err)
			require.Len(t, payloads, 3)

			s, err := NewCompressedChunkStore(shape, 2, payloads, compression)
			require.NoError(t, err)

			got, err := s.ReadRegion([]int{0, 0}, []int{6, 4})
			require.NoError(t, err)
			require.Equal(t, data, got)
		})
	}

	t.Run("payload count mismatch", func(t *testing.T) {
		payloads, err := BuildChunkPayloads(shape, data, 2, format.CompressionNone)
		require.NoError(t, err)

		_, err = NewCompressedChunkStore(shape, 3, payloads, format.CompressionNone)
		require.ErrorIs(t, err, errs.ErrInvalidChunkShape)
	})
}
