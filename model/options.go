package model

import (
	"fmt"

	"github.com/suvrajeet01/hyperspy/errs"
	"github.com/suvrajeet01/hyperspy/internal/options"
)

// Method selects the optimizer used for a fit.
type Method int

const (
	// MethodAuto solves linearly when the active model is structurally
	// linear and falls back to Levenberg-Marquardt otherwise.
	MethodAuto Method = iota
	// MethodLeastSquares forces the Levenberg-Marquardt iteration even for
	// a linear model.
	MethodLeastSquares
	// MethodNelderMead uses the derivative-free Nelder-Mead simplex, for
	// model functions whose numeric derivatives are unreliable.
	MethodNelderMead
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case MethodAuto:
		return "auto"
	case MethodLeastSquares:
		return "least-squares"
	case MethodNelderMead:
		return "nelder-mead"
	default:
		return "unknown"
	}
}

// Policy controls how parameter values carry over between navigation
// positions during a multidimensional fit.
type Policy int

const (
	// AlwaysReset restores the pre-fit parameter values before every
	// position, making positions independent and order-insensitive.
	AlwaysReset Policy = iota
	// ContinueFromPrevious seeds each position with the previous
	// position's converged values, which speeds up smoothly varying data
	// but makes results depend on traversal order.
	ContinueFromPrevious
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case AlwaysReset:
		return "always-reset"
	case ContinueFromPrevious:
		return "continue-from-previous"
	default:
		return "unknown"
	}
}

const (
	// DefaultTolerance is the relative residual-improvement threshold below
	// which an iterative fit is declared converged.
	DefaultTolerance = 1e-8
	// DefaultMaxIterations caps the optimizer iterations per position.
	DefaultMaxIterations = 300
)

// FitConfig collects the knobs for Fit, FitAt and MultiFit.
type FitConfig struct {
	method   Method
	tol      float64
	maxIter  int
	weights  []float64
	policy   Policy
	workers  int
	keepBest bool
	progress func(position []int, res *FitResult)
}

// FitOption configures a fit.
type FitOption = options.Option[*FitConfig]

func defaultFitConfig() *FitConfig {
	return &FitConfig{
		method:  MethodAuto,
		tol:     DefaultTolerance,
		maxIter: DefaultMaxIterations,
		policy:  AlwaysReset,
		workers: 1,
	}
}

// WithMethod selects the optimizer.
func WithMethod(m Method) FitOption {
	return options.New(func(c *FitConfig) error {
		if m != MethodAuto && m != MethodLeastSquares && m != MethodNelderMead {
			return fmt.Errorf("%w: unknown fit method %d", errs.ErrNotConfigured, int(m))
		}
		c.method = m
		return nil
	})
}

// WithTolerance sets the convergence tolerance. Must be positive.
func WithTolerance(tol float64) FitOption {
	return options.New(func(c *FitConfig) error {
		if tol <= 0 {
			return fmt.Errorf("%w: tolerance %g must be positive", errs.ErrNotConfigured, tol)
		}
		c.tol = tol
		return nil
	})
}

// WithMaxIterations caps the optimizer iterations per position. Must be
// positive.
func WithMaxIterations(n int) FitOption {
	return options.New(func(c *FitConfig) error {
		if n <= 0 {
			return fmt.Errorf("%w: max iterations %d must be positive", errs.ErrNotConfigured, n)
		}
		c.maxIter = n
		return nil
	})
}

// WithWeights supplies per-point weights (typically inverse standard
// deviations) applied to the residual. The length must match the signal
// slice length, which is validated at fit time.
func WithWeights(w []float64) FitOption {
	return options.NoError(func(c *FitConfig) {
		c.weights = w
	})
}

// WithPolicy sets the continuation policy for MultiFit.
func WithPolicy(p Policy) FitOption {
	return options.New(func(c *FitConfig) error {
		if p != AlwaysReset && p != ContinueFromPrevious {
			return fmt.Errorf("%w: unknown continuation policy %d", errs.ErrNotConfigured, int(p))
		}
		c.policy = p
		return nil
	})
}

// WithWorkers sets the number of concurrent fit workers for MultiFit.
// More than one worker requires the AlwaysReset policy and clone-capable
// components.
func WithWorkers(n int) FitOption {
	return options.New(func(c *FitConfig) error {
		if n <= 0 {
			return fmt.Errorf("%w: worker count %d must be positive", errs.ErrNotConfigured, n)
		}
		c.workers = n
		return nil
	})
}

// WithKeepBest makes a non-converged fit leave the best parameter vector the
// optimizer found in the model, instead of restoring the pre-fit values. The
// result still reports Converged false.
func WithKeepBest() FitOption {
	return options.NoError(func(c *FitConfig) {
		c.keepBest = true
	})
}

// WithProgress registers a callback invoked after each position of a
// MultiFit, with the navigation indices and the position's result. The
// callback may be invoked concurrently when workers > 1.
func WithProgress(fn func(position []int, res *FitResult)) FitOption {
	return options.NoError(func(c *FitConfig) {
		c.progress = fn
	})
}
