// Package axes describes the coordinate axes of a multidimensional signal and
// their partition into navigation and signal dimensions.
//
// An Axis maps array indices to calibrated physical coordinates through an
// affine relation value = offset + scale*index. A Manager aggregates an
// ordered set of axes, splits them into navigation axes (scan position) and
// signal axes (the per-position measured quantity), tracks a current
// navigation position, and iterates the navigation domain in row-major order.
//
// # Basic Usage
//
//	x, _ := axes.New(axes.Def{Name: "x", Size: 64, Scale: 0.1, Units: "nm", Navigate: true})
//	y, _ := axes.New(axes.Def{Name: "y", Size: 64, Scale: 0.1, Units: "nm", Navigate: true})
//	e, _ := axes.New(axes.Def{Name: "energy", Size: 1024, Offset: 120.0, Scale: 0.25, Units: "eV"})
//
//	mgr, _ := axes.NewManager(x, y, e)
//	for idx := range mgr.Indices() {
//	    // idx is a fresh []int navigation tuple, row-major order
//	}
//
// # Concurrency
//
// The Manager's current-position cursor is guarded by a mutex so that a
// position update is atomic, but the cursor is a convenience for strictly
// sequential use. Parallel consumers must iterate with Indices (which never
// touches the cursor) and thread explicit index tuples instead.
package axes
