// Package signal wraps the N-dimensional numeric array backing a
// multidimensional dataset and exposes slicing by navigation position.
//
// The backing array is always laid out row-major with the navigation
// dimensions first: shape = navigation_shape + signal_shape. A Store supplies
// the raw data through a pull-based region interface; MemoryStore serves
// in-memory slices and ChunkedStore serves lazily decoded, optionally
// compressed chunks with per-instance memoization.
//
// A Signal binds a Store to an axes.Manager and yields the signal-space
// subarray at any navigation position. Returned slices are always fresh
// copies, so successive positions never alias each other.
//
// # Basic Usage
//
//	mgr, _ := axes.NewManager(y, x, energy)
//	sig, _ := signal.FromData(mgr, data)
//
//	slice, _ := sig.At([]int{3, 7}) // signal at scan position (3, 7)
//
// For out-of-core datasets, back the signal with a chunk source that computes
// or loads regions on demand:
//
//	store, _ := signal.NewChunkedStore(mgr.FullShape(), 16, loadChunk)
//	sig, _ := signal.New(mgr, store)
//
// Only the chunk(s) overlapping a requested position are computed; decoded
// chunks are memoized per store instance.
package signal
