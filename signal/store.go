package signal

import (
	"fmt"

	"github.com/suvrajeet01/hyperspy/errs"
)

// Store is the pull-based contract for the array backing a signal.
//
// Implementations serve rectangular regions of a row-major N-dimensional
// float64 array. Returned slices are newly allocated and owned by the caller;
// a Store never hands out aliases of its internal buffers.
//
// Store implementations must be safe for concurrent reads: multidimensional
// fitting may read disjoint regions from several workers at once.
type Store interface {
	// Shape returns the full array shape, navigation dimensions first.
	Shape() []int

	// ReadRegion copies the rectangular region starting at offsets with the
	// given per-dimension sizes into a fresh row-major slice.
	//
	// Returns errs.ErrDimensionMismatch when offsets or sizes disagree with
	// the array rank, and errs.ErrOutOfBounds when the region does not fit
	// inside the array.
	ReadRegion(offsets, sizes []int) ([]float64, error)
}

// WritableStore extends Store with region write-back, used to store fitted
// model evaluations next to the observed data.
type WritableStore interface {
	Store

	// WriteRegion copies data into the rectangular region starting at
	// offsets with the given per-dimension sizes. len(data) must equal the
	// region element count.
	WriteRegion(offsets, sizes []int, data []float64) error
}

// MemoryStore serves a fully in-memory row-major array.
type MemoryStore struct {
	shape   []int
	strides []int
	data    []float64
}

var _ WritableStore = (*MemoryStore)(nil)

// NewMemoryStore creates a MemoryStore over the given flat row-major data.
//
// The data slice is retained, not copied; the caller hands over ownership.
// Returns errs.ErrShapeMismatch when len(data) disagrees with the shape
// product and errs.ErrInvalidAxis when any dimension is non-positive.
func NewMemoryStore(shape []int, data []float64) (*MemoryStore, error) {
	total := 1
	for i, dim := range shape {
		if dim <= 0 {
			return nil, fmt.Errorf("%w: dimension %d is %d", errs.ErrInvalidAxis, i, dim)
		}
		total *= dim
	}
	if total != len(data) {
		return nil, fmt.Errorf("%w: shape %v holds %d elements, data has %d",
			errs.ErrShapeMismatch, shape, total, len(data))
	}

	s := &MemoryStore{
		shape: append([]int(nil), shape...),
		data:  data,
	}
	s.strides = rowMajorStrides(s.shape)

	return s, nil
}

// Shape returns a copy of the array shape.
func (s *MemoryStore) Shape() []int {
	return append([]int(nil), s.shape...)
}

// ReadRegion implements Store.
func (s *MemoryStore) ReadRegion(offsets, sizes []int) ([]float64, error) {
	if err := checkRegion(s.shape, offsets, sizes); err != nil {
		return nil, err
	}

	out := make([]float64, regionSize(sizes))
	copyRegion(s.data, s.shape, s.strides, offsets, sizes, out, false)

	return out, nil
}

// WriteRegion implements WritableStore.
func (s *MemoryStore) WriteRegion(offsets, sizes []int, data []float64) error {
	if err := checkRegion(s.shape, offsets, sizes); err != nil {
		return err
	}
	if len(data) != regionSize(sizes) {
		return fmt.Errorf("%w: region holds %d elements, data has %d",
			errs.ErrShapeMismatch, regionSize(sizes), len(data))
	}

	copyRegion(s.data, s.shape, s.strides, offsets, sizes, data, true)

	return nil
}

// rowMajorStrides returns the element stride of each dimension.
func rowMajorStrides(shape []int) []int {
	strides := make([]int, len(shape))
	stride := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= shape[i]
	}

	return strides
}

func regionSize(sizes []int) int {
	total := 1
	for _, n := range sizes {
		total *= n
	}

	return total
}

func checkRegion(shape, offsets, sizes []int) error {
	if len(offsets) != len(shape) || len(sizes) != len(shape) {
		return fmt.Errorf("%w: region rank %d/%d, array rank %d",
			errs.ErrDimensionMismatch, len(offsets), len(sizes), len(shape))
	}
	for i := range shape {
		if sizes[i] <= 0 {
			return fmt.Errorf("%w: region size %d on dimension %d", errs.ErrOutOfBounds, sizes[i], i)
		}
		if offsets[i] < 0 || offsets[i]+sizes[i] > shape[i] {
			return fmt.Errorf("%w: region [%d, %d) on dimension %d, size %d",
				errs.ErrOutOfBounds, offsets[i], offsets[i]+sizes[i], i, shape[i])
		}
	}

	return nil
}

// copyRegion walks the region row by row, copying contiguous innermost runs
// between the flat array and the region buffer. When write is true data flows
// from buf into flat, otherwise from flat into buf.
func copyRegion(flat []float64, shape, strides, offsets, sizes []int, buf []float64, write bool) {
	rank := len(shape)
	if rank == 0 {
		return
	}

	runLen := sizes[rank-1]
	outer := regionSize(sizes) / runLen

	idx := make([]int, rank-1)
	bufPos := 0
	for range outer {
		flatPos := offsets[rank-1] * strides[rank-1]
		for d := range rank - 1 {
			flatPos += (offsets[d] + idx[d]) * strides[d]
		}

		if write {
			copy(flat[flatPos:flatPos+runLen], buf[bufPos:bufPos+runLen])
		} else {
			copy(buf[bufPos:bufPos+runLen], flat[flatPos:flatPos+runLen])
		}
		bufPos += runLen

		for d := rank - 2; d >= 0; d-- {
			idx[d]++
			if idx[d] < sizes[d] {
				break
			}
			idx[d] = 0
		}
	}
}
