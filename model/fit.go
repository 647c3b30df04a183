package model

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/suvrajeet01/hyperspy/errs"
	"github.com/suvrajeet01/hyperspy/internal/options"
	"github.com/suvrajeet01/hyperspy/internal/pool"
)

// FitResult holds the outcome of fitting the model at one navigation
// position.
//
// Values follow the model's free-parameter assembly order. StdErrs is nil
// when the parameter covariance could not be estimated (singular normal
// matrix or no residual degrees of freedom). A false Converged is data, not
// an error: the position was fitted but the optimizer did not reach the
// convergence tolerance within its iteration cap, or the position was
// degenerate.
type FitResult struct {
	Position    []int
	Values      []float64
	StdErrs     []float64
	SSR         float64
	Dof         int
	ReducedChi2 float64
	Converged   bool
	Iterations  int
	Method      Method
}

// Fit fits the model at the axes manager's current navigation position.
func (m *Model) Fit(opts ...FitOption) (*FitResult, error) {
	return m.FitAt(m.sig.Axes().Position(), opts...)
}

// FitAt fits the model to the signal slice at the given navigation position.
//
// The model's free parameters are updated to the best values found when the
// fit converges and restored to their pre-fit values otherwise. Structural
// problems (unconfigured model, bad position, mismatched weights) return an
// error; failure to converge does not.
func (m *Model) FitAt(navIndices []int, opts ...FitOption) (*FitResult, error) {
	cfg := defaultFitConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	return m.fitWithConfig(navIndices, cfg)
}

func (m *Model) fitWithConfig(navIndices []int, cfg *FitConfig) (*FitResult, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}

	data, err := m.sig.At(navIndices)
	if err != nil {
		return nil, err
	}
	if cfg.weights != nil && len(cfg.weights) != len(data) {
		return nil, fmt.Errorf("%w: %d weights for %d signal points",
			errs.ErrDimensionMismatch, len(cfg.weights), len(data))
	}

	res := &FitResult{
		Position: slices.Clone(navIndices),
		Dof:      len(data) - len(m.FreeParameters()),
	}

	if !allFinite(data) || (zeroVariance(data) && !m.IsLinear()) {
		// Non-finite points or flat data under a nonlinear model leave the
		// parameters unidentifiable. Record the position as not converged
		// with the pre-fit values untouched.
		res.Values = m.FreeValues()
		res.SSR = math.NaN()
		res.ReducedChi2 = math.NaN()
		res.Method = cfg.method
		m.fitted = true
		return res, nil
	}

	switch {
	case cfg.method == MethodAuto && m.IsLinear():
		m.solveLinear(data, cfg, res)
	case cfg.method == MethodNelderMead:
		m.solveNonlinear(data, cfg, res, true)
	default:
		m.solveNonlinear(data, cfg, res, false)
	}

	m.fitted = true
	return res, nil
}

// solveNonlinear runs the iterative optimizer (Levenberg-Marquardt, or
// Nelder-Mead when simplex is set) and fills res.
func (m *Model) solveNonlinear(data []float64, cfg *FitConfig, res *FitResult, simplex bool) {
	free := m.FreeParameters()
	k := len(free)
	n := len(data)

	initial := m.FreeValues()
	lower := make([]float64, k)
	upper := make([]float64, k)
	for i, p := range free {
		lower[i], upper[i] = p.Bounds()
	}

	buf, release := pool.GetFloat64Slice(n)
	defer release()

	// resid writes the weighted residual model(p) - data into r. Trial
	// vectors arrive already projected into bounds.
	resid := func(p, r []float64) {
		_ = m.SetFreeValues(p)
		m.evaluateInto(buf, m.coords)
		for i := range r {
			r[i] = buf[i] - data[i]
			if cfg.weights != nil {
				r[i] *= cfg.weights[i]
			}
		}
	}

	var (
		best      []float64
		iters     int
		converged bool
	)
	if simplex {
		res.Method = MethodNelderMead
		ssrOf := func(p []float64) float64 {
			r := make([]float64, n)
			resid(p, r)
			return floats.Dot(r, r)
		}
		best, iters, converged = solveNelderMead(ssrOf, initial, lower, upper, cfg.tol, cfg.maxIter)
	} else {
		res.Method = MethodLeastSquares
		best, iters, converged = solveLM(resid, initial, lower, upper, n, cfg.tol, cfg.maxIter)
	}

	r := make([]float64, n)
	resid(best, r)
	ssr := floats.Dot(r, r)

	res.Iterations = iters
	res.Converged = converged
	res.SSR = ssr
	res.ReducedChi2 = math.NaN()
	if res.Dof > 0 {
		res.ReducedChi2 = ssr / float64(res.Dof)
	}

	if converged {
		res.Values = slices.Clone(best)
		if res.Dof > 0 {
			jac := numJacobian(resid, best, lower, upper, n)
			if vars := covarianceDiag(jac, ssr/float64(res.Dof)); vars != nil {
				res.StdErrs = make([]float64, k)
				for i, v := range vars {
					res.StdErrs[i] = math.Sqrt(v)
				}
			}
		}
		_ = m.SetFreeValues(best)
	} else if cfg.keepBest {
		res.Values = slices.Clone(best)
		_ = m.SetFreeValues(best)
	} else {
		res.Values = slices.Clone(initial)
		_ = m.SetFreeValues(initial)
	}
}

func allFinite(s []float64) bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func zeroVariance(s []float64) bool {
	for _, v := range s[1:] {
		if v != s[0] {
			return false
		}
	}
	return true
}

func clampVec(p, lower, upper []float64) []float64 {
	out := slices.Clone(p)
	for i := range out {
		out[i] = math.Min(math.Max(out[i], lower[i]), upper[i])
	}
	return out
}
