package model

import (
	"fmt"
	"math"
	"slices"

	"github.com/suvrajeet01/hyperspy/errs"
)

// ResultStore accumulates per-position fit results over a navigation grid.
//
// Storage is preallocated: per navigation position it keeps the fitted
// values and standard errors for every free parameter, the reduced
// chi-squared, and the converged flag. Unfitted or failed entries read back
// as NaN in the map views, so downstream array processing can mask them
// without consulting the flags.
//
// Concurrent Put calls for distinct positions are safe; they touch disjoint
// elements of the backing arrays. Everything else assumes external
// synchronization with writers.
type ResultStore struct {
	navShape []int
	strides  []int
	labels   []string
	size     int

	values    []float64
	stderrs   []float64
	chisq     []float64
	iters     []int
	converged []bool
	fitted    []bool
}

// NewResultStore creates a store for the given navigation shape and
// free-parameter labels. A zero-dimensional navigation shape (single
// position) is expressed by an empty navShape.
func NewResultStore(navShape []int, labels []string) (*ResultStore, error) {
	size := 1
	for _, n := range navShape {
		if n <= 0 {
			return nil, fmt.Errorf("%w: navigation dimension %d", errs.ErrInvalidAxis, n)
		}
		size *= n
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: result store needs at least one parameter label", errs.ErrNoFreeParameters)
	}

	strides := make([]int, len(navShape))
	stride := 1
	for i := len(navShape) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= navShape[i]
	}

	k := len(labels)
	s := &ResultStore{
		navShape:  slices.Clone(navShape),
		strides:   strides,
		labels:    slices.Clone(labels),
		size:      size,
		values:    make([]float64, size*k),
		stderrs:   make([]float64, size*k),
		chisq:     make([]float64, size),
		iters:     make([]int, size),
		converged: make([]bool, size),
		fitted:    make([]bool, size),
	}
	nan := math.NaN()
	for i := range s.values {
		s.values[i] = nan
		s.stderrs[i] = nan
	}
	for i := range s.chisq {
		s.chisq[i] = nan
	}
	return s, nil
}

// NavShape returns the navigation shape the store covers.
func (s *ResultStore) NavShape() []int { return slices.Clone(s.navShape) }

// Labels returns the free-parameter labels in assembly order.
func (s *ResultStore) Labels() []string { return slices.Clone(s.labels) }

// NumParameters returns the free-parameter count per position.
func (s *ResultStore) NumParameters() int { return len(s.labels) }

// Size returns the number of navigation positions.
func (s *ResultStore) Size() int { return s.size }

func (s *ResultStore) flatten(position []int) (int, error) {
	if len(position) != len(s.navShape) {
		return 0, fmt.Errorf("%w: position rank %d, navigation rank %d",
			errs.ErrDimensionMismatch, len(position), len(s.navShape))
	}
	flat := 0
	for i, idx := range position {
		if idx < 0 || idx >= s.navShape[i] {
			return 0, fmt.Errorf("%w: index %d on navigation dimension %d of size %d",
				errs.ErrOutOfBounds, idx, i, s.navShape[i])
		}
		flat += idx * s.strides[i]
	}
	return flat, nil
}

// Put records res at the given navigation position, overwriting any earlier
// entry. The result's value vector must match the store's parameter count.
func (s *ResultStore) Put(position []int, res *FitResult) error {
	flat, err := s.flatten(position)
	if err != nil {
		return err
	}
	k := len(s.labels)
	if len(res.Values) != k {
		return fmt.Errorf("%w: result has %d values, store expects %d",
			errs.ErrDimensionMismatch, len(res.Values), k)
	}

	off := flat * k
	if res.Converged {
		copy(s.values[off:off+k], res.Values)
		if res.StdErrs != nil {
			copy(s.stderrs[off:off+k], res.StdErrs)
		} else {
			fillNaN(s.stderrs[off : off+k])
		}
		s.chisq[flat] = res.ReducedChi2
	} else {
		fillNaN(s.values[off : off+k])
		fillNaN(s.stderrs[off : off+k])
		s.chisq[flat] = math.NaN()
	}
	s.iters[flat] = res.Iterations
	s.converged[flat] = res.Converged
	s.fitted[flat] = true
	return nil
}

// Get returns the stored result at a position. Positions never fitted return
// errs.ErrNotFitted.
func (s *ResultStore) Get(position []int) (*FitResult, error) {
	flat, err := s.flatten(position)
	if err != nil {
		return nil, err
	}
	if !s.fitted[flat] {
		return nil, fmt.Errorf("%w: position %v", errs.ErrNotFitted, position)
	}

	k := len(s.labels)
	off := flat * k
	res := &FitResult{
		Position:    slices.Clone(position),
		Values:      slices.Clone(s.values[off : off+k]),
		StdErrs:     slices.Clone(s.stderrs[off : off+k]),
		ReducedChi2: s.chisq[flat],
		Iterations:  s.iters[flat],
		Converged:   s.converged[flat],
	}
	return res, nil
}

// ParameterIndex returns the column index of a parameter label.
func (s *ResultStore) ParameterIndex(label string) (int, error) {
	for i, l := range s.labels {
		if l == label {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: parameter %q", errs.ErrComponentNotFound, label)
}

// ParameterMap returns the fitted values of one parameter across every
// navigation position in row-major order. Unfitted and non-converged
// positions are NaN.
func (s *ResultStore) ParameterMap(param int) ([]float64, error) {
	return s.column(s.values, param)
}

// StdErrMap returns the standard errors of one parameter across every
// navigation position in row-major order, NaN where unavailable.
func (s *ResultStore) StdErrMap(param int) ([]float64, error) {
	return s.column(s.stderrs, param)
}

func (s *ResultStore) column(src []float64, param int) ([]float64, error) {
	k := len(s.labels)
	if param < 0 || param >= k {
		return nil, fmt.Errorf("%w: parameter index %d, have %d", errs.ErrOutOfBounds, param, k)
	}
	out := make([]float64, s.size)
	for i := range out {
		out[i] = src[i*k+param]
	}
	return out, nil
}

// Chi2Map returns the reduced chi-squared across every navigation position
// in row-major order, NaN where the fit failed or never ran.
func (s *ResultStore) Chi2Map() []float64 {
	return slices.Clone(s.chisq)
}

// ConvergedMap returns the per-position convergence flags in row-major
// order.
func (s *ResultStore) ConvergedMap() []bool {
	return slices.Clone(s.converged)
}

// ConvergedCount returns the number of positions whose fit converged.
func (s *ResultStore) ConvergedCount() int {
	count := 0
	for _, c := range s.converged {
		if c {
			count++
		}
	}
	return count
}

// FittedCount returns the number of positions with any recorded result.
func (s *ResultStore) FittedCount() int {
	count := 0
	for _, f := range s.fitted {
		if f {
			count++
		}
	}
	return count
}

func fillNaN(s []float64) {
	nan := math.NaN()
	for i := range s {
		s[i] = nan
	}
}
