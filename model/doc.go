// Package model composes parametric components into a summed model function
// and fits it to a signal by least squares, position by position across the
// signal's navigation domain.
//
// A Model owns an ordered list of Components bound to one signal.Signal. The
// active model is the sum of the enabled components evaluated over the signal
// coordinates (the calibrated values of the signal axis for one-dimensional
// signals, flat point indices otherwise). Fitting minimizes the residual
// between the observed signal slice and that sum with respect to the free
// parameters, assembled deterministically by concatenating each enabled
// component's free parameters in component order.
//
// # Lifecycle
//
// A model starts unconfigured; appending a component configures it.
// Re-configuring (adding, removing, enabling, disabling components, changing
// bounds) never invalidates previously produced result stores, but it changes
// the free-parameter vector for subsequent fits.
//
// # Fitting
//
//	m := model.New(sig)
//	m.Append(components.NewGaussian("peak", 1, 0, 1))
//
//	res, err := m.FitAt([]int{3, 7})          // one navigation position
//	store, err := m.MultiFit(ctx)             // every position
//
// When every enabled component is linear in its free parameters the fit is a
// direct linear least-squares solve; otherwise a bounded Levenberg-Marquardt
// iteration runs, with Nelder-Mead available as a derivative-free fallback.
// Failure to converge at a position is recorded in the result store, not
// returned as an error: multidimensional fitting over millions of positions
// must tolerate isolated bad positions.
//
// # Concurrency
//
// A Model instance is not safe for concurrent use; its component parameters
// are shared mutable state. MultiFit with WithWorkers(n) fits positions in
// parallel by cloning the components per worker, which requires the
// always-reset continuation policy and clone-capable components.
package model
