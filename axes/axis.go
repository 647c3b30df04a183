package axes

import (
	"fmt"
	"math"

	"github.com/suvrajeet01/hyperspy/errs"
)

// Def is the construction record for one axis, matching the calibration
// records supplied by file readers: size, offset, scale, units and the
// navigation/signal flag.
type Def struct {
	// Name identifies the axis for labeling; optional.
	Name string
	// Size is the number of points along the axis. Must be positive.
	Size int
	// Offset is the physical coordinate of index 0.
	Offset float64
	// Scale is the physical step between adjacent indices. Must be nonzero.
	// Defaults to 1 when zero-valued and Size is set via New.
	Scale float64
	// Units is the physical unit label, e.g. "eV" or "nm".
	Units string
	// Navigate marks the axis as a navigation axis; false means signal axis.
	Navigate bool
}

// Axis is one calibrated coordinate axis. The index-to-value mapping is
// affine: value = offset + scale*index.
//
// An Axis is immutable after construction except through Recalibrate.
type Axis struct {
	name     string
	size     int
	offset   float64
	scale    float64
	units    string
	navigate bool
}

// New creates an Axis from a Def.
//
// A zero Scale defaults to 1 (uncalibrated index axis). Returns
// errs.ErrInvalidAxis when Size is not positive.
func New(def Def) (*Axis, error) {
	if def.Size <= 0 {
		return nil, fmt.Errorf("%w: size %d must be positive", errs.ErrInvalidAxis, def.Size)
	}

	scale := def.Scale
	if scale == 0 {
		scale = 1.0
	}

	return &Axis{
		name:     def.Name,
		size:     def.Size,
		offset:   def.Offset,
		scale:    scale,
		units:    def.Units,
		navigate: def.Navigate,
	}, nil
}

// Name returns the axis name.
func (a *Axis) Name() string { return a.name }

// Size returns the number of points along the axis.
func (a *Axis) Size() int { return a.size }

// Offset returns the physical coordinate of index 0.
func (a *Axis) Offset() float64 { return a.offset }

// Scale returns the physical step between adjacent indices.
func (a *Axis) Scale() float64 { return a.scale }

// Units returns the physical unit label.
func (a *Axis) Units() string { return a.units }

// Navigate reports whether this is a navigation axis.
func (a *Axis) Navigate() bool { return a.navigate }

// Value returns the physical coordinate of the given index via the affine
// mapping. The mapping is defined for any integer index; no bounds check is
// applied here.
func (a *Axis) Value(index int) float64 {
	return a.offset + a.scale*float64(index)
}

// Index returns the grid index nearest to the given physical value.
//
// Returns errs.ErrOutOfBounds when the rounded index falls outside [0, Size).
// Values exactly on the grid round-trip to their original index.
func (a *Axis) Index(value float64) (int, error) {
	index := int(math.Round((value - a.offset) / a.scale))
	if index < 0 || index >= a.size {
		return 0, fmt.Errorf("%w: value %g maps to index %d, axis size %d",
			errs.ErrOutOfBounds, value, index, a.size)
	}

	return index, nil
}

// Values returns the ordered physical coordinates of every index on the axis.
// The returned slice is newly allocated and owned by the caller.
func (a *Axis) Values() []float64 {
	values := make([]float64, a.size)
	for i := range values {
		values[i] = a.offset + a.scale*float64(i)
	}

	return values
}

// Recalibrate replaces the affine calibration. The size, units and partition
// flag are fixed at construction and cannot change.
//
// Returns errs.ErrInvalidAxis when scale is zero.
func (a *Axis) Recalibrate(offset, scale float64) error {
	if scale == 0 {
		return fmt.Errorf("%w: scale must be nonzero", errs.ErrInvalidAxis)
	}
	a.offset = offset
	a.scale = scale

	return nil
}

// String returns a short human-readable description of the axis.
func (a *Axis) String() string {
	role := "signal"
	if a.navigate {
		role = "navigation"
	}

	return fmt.Sprintf("Axis{%s, size: %d, offset: %g, scale: %g, units: %q, %s}",
		a.name, a.size, a.offset, a.scale, a.units, role)
}
