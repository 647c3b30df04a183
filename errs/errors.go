// Package errs defines the sentinel errors shared across the hyperspy packages.
//
// All structural failures (shape or dimension disagreements, invalid axis
// configuration, out-of-bounds navigation indices, twin cycles) are reported
// through these sentinels, usually wrapped with additional context via
// fmt.Errorf("...: %w", ...). Callers match them with errors.Is.
//
// Convergence failure is intentionally absent: a fit that does not converge is
// recorded as data (FitResult.Converged == false), never surfaced as an error.
package errs

import "errors"

// Axis and manager configuration errors.
var (
	// ErrInvalidAxis indicates an axis with a non-positive size or zero scale.
	ErrInvalidAxis = errors.New("invalid axis definition")

	// ErrOutOfBounds indicates a navigation or axis index outside the declared range.
	ErrOutOfBounds = errors.New("index out of bounds")

	// ErrDimensionMismatch indicates a vector or index tuple whose length
	// disagrees with the declared axis or free-parameter count.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrShapeMismatch indicates array data whose shape disagrees with the
	// declared axis sizes.
	ErrShapeMismatch = errors.New("shape mismatch")
)

// Component and parameter configuration errors.
var (
	// ErrCyclicTwin indicates a twin assignment that would close a cycle in
	// the twin reference graph.
	ErrCyclicTwin = errors.New("cyclic twin reference")

	// ErrInvalidBounds indicates a parameter whose initial value violates its
	// declared bounds, or a bound pair with min > max.
	ErrInvalidBounds = errors.New("invalid parameter bounds")

	// ErrTwinned indicates a direct value assignment to a twinned parameter.
	ErrTwinned = errors.New("parameter is twinned")

	// ErrDuplicateComponent indicates two components with the same name in one model.
	ErrDuplicateComponent = errors.New("duplicate component name")

	// ErrComponentNotFound indicates a component name unknown to the model.
	ErrComponentNotFound = errors.New("component not found")

	// ErrNoFreeParameters indicates a fit attempt with an empty free-parameter vector.
	ErrNoFreeParameters = errors.New("model has no free parameters")
)

// Fit result and store errors.
var (
	// ErrNotFitted indicates a result lookup at a position that was never fitted.
	ErrNotFitted = errors.New("position not fitted")

	// ErrNotConfigured indicates a fit attempt on a model with no enabled components.
	ErrNotConfigured = errors.New("model not configured")
)

// Chunked store errors.
var (
	// ErrInvalidChunkShape indicates a chunk size that does not divide cleanly
	// into whole signal blocks.
	ErrInvalidChunkShape = errors.New("invalid chunk shape")

	// ErrChunkSizeMismatch indicates a chunk payload whose decoded length
	// disagrees with the chunk's declared element count.
	ErrChunkSizeMismatch = errors.New("chunk size mismatch")
)

// Result blob codec errors.
var (
	// ErrInvalidMagicNumber indicates a result blob without the expected magic bytes.
	ErrInvalidMagicNumber = errors.New("invalid magic number")

	// ErrInvalidHeaderSize indicates a result blob shorter than its fixed header.
	ErrInvalidHeaderSize = errors.New("invalid header size")

	// ErrInvalidPayloadSize indicates a result payload whose length disagrees
	// with the header's declared record count and width.
	ErrInvalidPayloadSize = errors.New("invalid payload size")

	// ErrUnsupportedVersion indicates a result blob with an unknown format version.
	ErrUnsupportedVersion = errors.New("unsupported format version")

	// ErrHashCollision indicates two distinct parameter labels hashing to the
	// same 64-bit column ID.
	ErrHashCollision = errors.New("parameter label hash collision")
)
