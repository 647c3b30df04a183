package signal

import (
	"fmt"
	"slices"

	"github.com/suvrajeet01/hyperspy/axes"
	"github.com/suvrajeet01/hyperspy/errs"
)

// Signal binds an axes.Manager to the Store holding the data, exposing
// slicing by navigation position.
//
// The Store's shape must equal navigation_shape + signal_shape as declared by
// the Manager; the invariant is checked at construction and holds for the
// Signal's lifetime because both sides are structurally immutable.
type Signal struct {
	mgr   *axes.Manager
	store Store
}

// New creates a Signal over an existing Store.
//
// Returns errs.ErrShapeMismatch when the store shape disagrees with the
// manager's declared axis sizes.
func New(mgr *axes.Manager, store Store) (*Signal, error) {
	want := mgr.FullShape()
	got := store.Shape()
	if !slices.Equal(want, got) {
		return nil, fmt.Errorf("%w: axes declare %v, store has %v", errs.ErrShapeMismatch, want, got)
	}

	return &Signal{mgr: mgr, store: store}, nil
}

// FromData creates a Signal over an in-memory flat row-major array.
func FromData(mgr *axes.Manager, data []float64) (*Signal, error) {
	store, err := NewMemoryStore(mgr.FullShape(), data)
	if err != nil {
		return nil, err
	}

	return New(mgr, store)
}

// Axes returns the axes manager this signal is bound to.
func (s *Signal) Axes() *axes.Manager {
	return s.mgr
}

// Store returns the backing store.
func (s *Signal) Store() Store {
	return s.store
}

// FullShape returns navigation shape followed by signal shape.
func (s *Signal) FullShape() []int {
	return s.mgr.FullShape()
}

// NavigationShape returns the navigation axis sizes.
func (s *Signal) NavigationShape() []int {
	return s.mgr.NavigationShape()
}

// SignalShape returns the signal axis sizes.
func (s *Signal) SignalShape() []int {
	return s.mgr.SignalShape()
}

// At returns the signal-space array at the given navigation position.
//
// The returned slice is a fresh copy: mutating it never affects the backing
// store or a slice returned for another position. For chunked stores only the
// chunk(s) overlapping the position are computed.
func (s *Signal) At(navIndices []int) ([]float64, error) {
	offsets, sizes, err := s.region(navIndices)
	if err != nil {
		return nil, err
	}

	return s.store.ReadRegion(offsets, sizes)
}

// AtPosition returns the signal slice at the manager's current cursor.
func (s *Signal) AtPosition() ([]float64, error) {
	return s.At(s.mgr.Position())
}

// WriteAt writes a signal-space array back at the given navigation position,
// used to persist fitted model evaluations.
//
// Returns errs.ErrShapeMismatch when len(data) disagrees with the signal
// size, and an error when the backing store is not writable.
func (s *Signal) WriteAt(navIndices []int, data []float64) error {
	if len(data) != s.mgr.SignalSize() {
		return fmt.Errorf("%w: signal holds %d elements, data has %d",
			errs.ErrShapeMismatch, s.mgr.SignalSize(), len(data))
	}

	w, ok := s.store.(WritableStore)
	if !ok {
		return fmt.Errorf("store %T is not writable", s.store)
	}

	offsets, sizes, err := s.region(navIndices)
	if err != nil {
		return err
	}

	return w.WriteRegion(offsets, sizes, data)
}

// region builds the full-rank region covering one navigation position.
func (s *Signal) region(navIndices []int) (offsets, sizes []int, err error) {
	navShape := s.mgr.NavigationShape()
	if len(navIndices) != len(navShape) {
		return nil, nil, fmt.Errorf("%w: got %d indices, navigation dimension is %d",
			errs.ErrDimensionMismatch, len(navIndices), len(navShape))
	}
	for i, idx := range navIndices {
		if idx < 0 || idx >= navShape[i] {
			return nil, nil, fmt.Errorf("%w: index %d on navigation axis %d, size %d",
				errs.ErrOutOfBounds, idx, i, navShape[i])
		}
	}

	sigShape := s.mgr.SignalShape()
	rank := len(navShape) + len(sigShape)

	offsets = make([]int, rank)
	sizes = make([]int, rank)
	for i, idx := range navIndices {
		offsets[i] = idx
		sizes[i] = 1
	}
	for i, dim := range sigShape {
		offsets[len(navShape)+i] = 0
		sizes[len(navShape)+i] = dim
	}

	return offsets, sizes, nil
}
