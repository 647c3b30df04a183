// Package pool provides reusable scratch buffers for the fit engine and the
// payload codecs.
//
// Multidimensional fitting evaluates residuals and Jacobian columns once per
// optimizer iteration at every navigation position; pooling the float64 work
// slices keeps those inner loops allocation-free after warmup.
package pool

import "sync"

var (
	float64SlicePool = sync.Pool{
		New: func() any { return &[]float64{} },
	}
	intSlicePool = sync.Pool{
		New: func() any { return &[]int{} },
	}
)

// GetFloat64Slice retrieves and resizes a float64 slice from the pool.
//
// The returned slice has length size; contents are unspecified and must be
// overwritten by the caller. If the pooled slice has insufficient capacity a
// new slice is allocated. The caller must call the returned cleanup function
// (typically with defer) to return the slice to the pool.
//
// Example:
//
//	residuals, cleanup := pool.GetFloat64Slice(len(observed))
//	defer cleanup()
func GetFloat64Slice(size int) ([]float64, func()) {
	ptr, _ := float64SlicePool.Get().(*[]float64)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]float64, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
	}

	return slice, func() { float64SlicePool.Put(ptr) }
}

// GetIntSlice retrieves and resizes an int slice from the pool.
//
// Used for navigation index scratch tuples during multidimensional fitting.
// Same contract as GetFloat64Slice.
func GetIntSlice(size int) ([]int, func()) {
	ptr, _ := intSlicePool.Get().(*[]int)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]int, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
	}

	return slice, func() { intSlicePool.Put(ptr) }
}
