package axes

import (
	"fmt"
	"iter"
	"sync"

	"github.com/suvrajeet01/hyperspy/errs"
)

// Manager aggregates an ordered sequence of axes, partitioned into navigation
// and signal axes, and tracks the current navigation position.
//
// The partition preserves the construction order within each group. Axes with
// Navigate true form the navigation shape (the iteration domain of
// multidimensional fitting); the rest form the per-position signal shape.
type Manager struct {
	mu   sync.Mutex
	axes []*Axis
	nav  []*Axis
	sig  []*Axis
	pos  []int
}

// NewManager creates a Manager from the given axes in order.
//
// A signal with no navigation axes is valid: the navigation domain then
// consists of the single empty position. At least one signal axis is
// required, since every position must yield a signal slice.
func NewManager(list ...*Axis) (*Manager, error) {
	m := &Manager{
		axes: make([]*Axis, 0, len(list)),
	}

	for i, ax := range list {
		if ax == nil {
			return nil, fmt.Errorf("%w: axis %d is nil", errs.ErrInvalidAxis, i)
		}
		m.axes = append(m.axes, ax)
		if ax.Navigate() {
			m.nav = append(m.nav, ax)
		} else {
			m.sig = append(m.sig, ax)
		}
	}

	if len(m.sig) == 0 {
		return nil, fmt.Errorf("%w: at least one signal axis is required", errs.ErrInvalidAxis)
	}

	m.pos = make([]int, len(m.nav))

	return m, nil
}

// Axes returns all axes in construction order.
func (m *Manager) Axes() []*Axis {
	out := make([]*Axis, len(m.axes))
	copy(out, m.axes)

	return out
}

// NavigationAxes returns the ordered navigation axes.
func (m *Manager) NavigationAxes() []*Axis {
	out := make([]*Axis, len(m.nav))
	copy(out, m.nav)

	return out
}

// SignalAxes returns the ordered signal axes.
func (m *Manager) SignalAxes() []*Axis {
	out := make([]*Axis, len(m.sig))
	copy(out, m.sig)

	return out
}

// NavigationShape returns the sizes of the navigation axes in order.
func (m *Manager) NavigationShape() []int {
	return shapeOf(m.nav)
}

// SignalShape returns the sizes of the signal axes in order.
func (m *Manager) SignalShape() []int {
	return shapeOf(m.sig)
}

// FullShape returns navigation shape followed by signal shape, the layout of
// the backing data array.
func (m *Manager) FullShape() []int {
	return append(shapeOf(m.nav), shapeOf(m.sig)...)
}

// NavigationSize returns the total number of navigation positions, the
// product of the navigation axis sizes. A manager without navigation axes has
// exactly one position.
func (m *Manager) NavigationSize() int {
	size := 1
	for _, ax := range m.nav {
		size *= ax.Size()
	}

	return size
}

// SignalSize returns the number of data points in one signal slice.
func (m *Manager) SignalSize() int {
	size := 1
	for _, ax := range m.sig {
		size *= ax.Size()
	}

	return size
}

// AxisValues returns the calibrated coordinate values of the axis at the
// given position in construction order.
func (m *Manager) AxisValues(index int) ([]float64, error) {
	if index < 0 || index >= len(m.axes) {
		return nil, fmt.Errorf("%w: axis index %d, have %d axes", errs.ErrOutOfBounds, index, len(m.axes))
	}

	return m.axes[index].Values(), nil
}

// SignalCoordinates returns the calibrated coordinates of the first signal
// axis, the abscissa a one-dimensional signal model is evaluated against.
func (m *Manager) SignalCoordinates() []float64 {
	return m.sig[0].Values()
}

// SetPosition sets the current navigation position.
//
// The update is atomic: concurrent readers observe either the previous or the
// new tuple, never a partial update. Returns errs.ErrDimensionMismatch when
// the tuple length disagrees with the navigation axis count and
// errs.ErrOutOfBounds when any index exceeds its axis size.
func (m *Manager) SetPosition(indices []int) error {
	if len(indices) != len(m.nav) {
		return fmt.Errorf("%w: got %d indices, navigation dimension is %d",
			errs.ErrDimensionMismatch, len(indices), len(m.nav))
	}
	for i, idx := range indices {
		if idx < 0 || idx >= m.nav[i].Size() {
			return fmt.Errorf("%w: index %d on navigation axis %d, size %d",
				errs.ErrOutOfBounds, idx, i, m.nav[i].Size())
		}
	}

	m.mu.Lock()
	copy(m.pos, indices)
	m.mu.Unlock()

	return nil
}

// Position returns a copy of the current navigation position.
func (m *Manager) Position() []int {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]int, len(m.pos))
	copy(out, m.pos)

	return out
}

// ResetPosition moves the cursor back to the origin.
func (m *Manager) ResetPosition() {
	m.mu.Lock()
	for i := range m.pos {
		m.pos[i] = 0
	}
	m.mu.Unlock()
}

// Step advances the cursor to the next navigation position in row-major
// order (last navigation axis fastest). It returns false once the cursor
// wraps past the final position, leaving it back at the origin.
//
// Step is the sequential convenience over the shared cursor; parallel
// consumers must use Indices instead.
func (m *Manager) Step() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := len(m.pos) - 1
	for k >= 0 {
		m.pos[k]++
		if m.pos[k] < m.nav[k].Size() {
			return true
		}
		m.pos[k] = 0
		k--
	}

	return false
}

// Indices returns a lazy, restartable sequence of every navigation index
// tuple in row-major order (last navigation axis fastest). Each yielded slice
// is a fresh copy the consumer may retain.
//
// The sequence never touches the shared cursor, so it is safe to consume from
// multiple goroutines each holding its own iterator.
func (m *Manager) Indices() iter.Seq[[]int] {
	shape := m.NavigationShape()

	return func(yield func([]int) bool) {
		idx := make([]int, len(shape))
		for {
			out := make([]int, len(idx))
			copy(out, idx)
			if !yield(out) {
				return
			}

			k := len(idx) - 1
			for k >= 0 {
				idx[k]++
				if idx[k] < shape[k] {
					break
				}
				idx[k] = 0
				k--
			}
			if k < 0 {
				return
			}
		}
	}
}

// IndicesFrom returns the tail of the Indices sequence starting at the given
// navigation tuple, inclusive, for resuming an interrupted traversal.
func (m *Manager) IndicesFrom(start []int) (iter.Seq[[]int], error) {
	first, err := m.FlatIndex(start)
	if err != nil {
		return nil, err
	}
	shape := m.NavigationShape()

	return func(yield func([]int) bool) {
		idx := make([]int, len(shape))
		copy(idx, start)
		for flat := first; flat < m.NavigationSize(); flat++ {
			out := make([]int, len(idx))
			copy(out, idx)
			if !yield(out) {
				return
			}

			k := len(idx) - 1
			for k >= 0 {
				idx[k]++
				if idx[k] < shape[k] {
					break
				}
				idx[k] = 0
				k--
			}
		}
	}, nil
}

// FlatIndex converts a navigation index tuple to its row-major flat offset.
func (m *Manager) FlatIndex(indices []int) (int, error) {
	if len(indices) != len(m.nav) {
		return 0, fmt.Errorf("%w: got %d indices, navigation dimension is %d",
			errs.ErrDimensionMismatch, len(indices), len(m.nav))
	}

	flat := 0
	for i, idx := range indices {
		size := m.nav[i].Size()
		if idx < 0 || idx >= size {
			return 0, fmt.Errorf("%w: index %d on navigation axis %d, size %d",
				errs.ErrOutOfBounds, idx, i, size)
		}
		flat = flat*size + idx
	}

	return flat, nil
}

// UnflattenIndex converts a row-major flat offset back to a navigation index
// tuple.
func (m *Manager) UnflattenIndex(flat int) ([]int, error) {
	if flat < 0 || flat >= m.NavigationSize() {
		return nil, fmt.Errorf("%w: flat index %d, navigation size %d",
			errs.ErrOutOfBounds, flat, m.NavigationSize())
	}

	out := make([]int, len(m.nav))
	for i := len(m.nav) - 1; i >= 0; i-- {
		size := m.nav[i].Size()
		out[i] = flat % size
		flat /= size
	}

	return out, nil
}

func shapeOf(list []*Axis) []int {
	shape := make([]int, len(list))
	for i, ax := range list {
		shape[i] = ax.Size()
	}

	return shape
}
