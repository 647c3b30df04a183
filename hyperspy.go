// Package hyperspy provides a multidimensional signal model and a
// model-fitting engine for scientific datasets whose dimensions split into
// navigation axes (where in the dataset) and signal axes (the measured
// curve or image at each position).
//
// A spectrum image, for example, is a 2-d scan grid with a full spectrum at
// every scan position: two navigation axes and one signal axis. The same
// machinery covers single spectra, image stacks and higher-rank datasets.
//
// # Core Features
//
//   - Calibrated axes: physical coordinate = offset + scale * index
//   - Row-major n-dimensional data access with navigation/signal separation
//   - Lazy chunked storage with optional Zstd/S2/LZ4 chunk compression
//   - Component-based model fitting (Gaussian, Lorentzian, polynomial, ...)
//   - Linear least-squares fast path and bounded Levenberg-Marquardt
//   - Grid fitting over every navigation position with worker parallelism
//   - Compact binary serialization of fit-result grids
//
// # Basic Usage
//
// Fitting a Gaussian peak over every position of a spectrum image:
//
//	import (
//	    "github.com/suvrajeet01/hyperspy"
//	    "github.com/suvrajeet01/hyperspy/axes"
//	    "github.com/suvrajeet01/hyperspy/components"
//	)
//
//	sig, _ := hyperspy.NewSpectrumImage(data, 64, 64, axes.Def{
//	    Name: "energy", Size: 1024, Offset: 400.0, Scale: 0.25, Units: "eV",
//	})
//
//	m := hyperspy.NewModel(sig)
//	m.Append(components.NewGaussian("peak", 100, 530, 5))
//
//	store, err := m.MultiFit(ctx)
//	amplitudes, _ := store.ParameterMap(0)  // 64*64 values, NaN where failed
//
// # Package Structure
//
// This package provides convenient top-level constructors for the common
// dataset layouts. For full control use the subpackages directly: axes for
// calibration and navigation, signal for storage backends, model for the
// fitting engine and components for the built-in component families.
package hyperspy

import (
	"github.com/suvrajeet01/hyperspy/axes"
	"github.com/suvrajeet01/hyperspy/internal/hash"
	"github.com/suvrajeet01/hyperspy/model"
	"github.com/suvrajeet01/hyperspy/signal"
)

// NewSpectrum creates a one-dimensional signal with no navigation axes from
// a single measured curve. The axis definition carries the calibration;
// def.Navigate is ignored.
//
// Example:
//
//	sig, err := hyperspy.NewSpectrum(counts, axes.Def{
//	    Name: "energy", Size: len(counts), Offset: 400, Scale: 0.25, Units: "eV",
//	})
func NewSpectrum(data []float64, def axes.Def) (*signal.Signal, error) {
	def.Navigate = false
	ax, err := axes.New(def)
	if err != nil {
		return nil, err
	}
	mgr, err := axes.NewManager(ax)
	if err != nil {
		return nil, err
	}
	return signal.FromData(mgr, data)
}

// NewSpectrumImage creates a signal with two navigation axes (rows, cols)
// and one signal axis: a spectrum at every position of a 2-d scan grid.
// data is row-major with the signal axis fastest; its length must equal
// rows*cols*sigDef.Size.
func NewSpectrumImage(data []float64, rows, cols int, sigDef axes.Def) (*signal.Signal, error) {
	mgr, err := spectrumImageAxes(rows, cols, sigDef)
	if err != nil {
		return nil, err
	}
	return signal.FromData(mgr, data)
}

// NewLazySpectrumImage creates a spectrum image backed by a chunked store
// that materializes data on demand through source, chunking along the row
// axis. Chunks are computed at most once per instance and reads touching
// only some chunks compute only those chunks.
//
// Example:
//
//	source := func(chunk int) ([]float64, error) {
//	    return readRowsFromDisk(chunk*chunkRows, chunkRows)
//	}
//	sig, err := hyperspy.NewLazySpectrumImage(64, 64, sigDef, source, 8)
func NewLazySpectrumImage(rows, cols int, sigDef axes.Def, source signal.ChunkSource, chunkRows int, opts ...signal.StoreOption) (*signal.Signal, error) {
	mgr, err := spectrumImageAxes(rows, cols, sigDef)
	if err != nil {
		return nil, err
	}
	store, err := signal.NewChunkedStore([]int{rows, cols, sigDef.Size}, chunkRows, source, opts...)
	if err != nil {
		return nil, err
	}
	return signal.New(mgr, store)
}

// NewSignal creates a signal from explicit axis definitions, in order, with
// an in-memory store. Navigation axes are the ones whose Def has Navigate
// set; at least one axis must be a signal axis.
func NewSignal(data []float64, defs ...axes.Def) (*signal.Signal, error) {
	list := make([]*axes.Axis, 0, len(defs))
	for _, def := range defs {
		ax, err := axes.New(def)
		if err != nil {
			return nil, err
		}
		list = append(list, ax)
	}
	mgr, err := axes.NewManager(list...)
	if err != nil {
		return nil, err
	}
	return signal.FromData(mgr, data)
}

// NewModel creates an empty model bound to sig. Append components from the
// components package, then Fit one position or MultiFit the whole grid.
func NewModel(sig *signal.Signal) *model.Model {
	return model.New(sig)
}

// ParameterID returns the 64-bit column identifier of a free-parameter
// label, as stored in encoded result blobs. Labels have the form
// "component.parameter".
func ParameterID(label string) uint64 {
	return hash.ID(label)
}

func spectrumImageAxes(rows, cols int, sigDef axes.Def) (*axes.Manager, error) {
	rowAx, err := axes.New(axes.Def{Name: "y", Size: rows, Navigate: true})
	if err != nil {
		return nil, err
	}
	colAx, err := axes.New(axes.Def{Name: "x", Size: cols, Navigate: true})
	if err != nil {
		return nil, err
	}
	sigDef.Navigate = false
	sigAx, err := axes.New(sigDef)
	if err != nil {
		return nil, err
	}
	return axes.NewManager(rowAx, colAx, sigAx)
}
