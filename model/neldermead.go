package model

import (
	"gonum.org/v1/gonum/optimize"
)

// solveNelderMead minimizes ssrOf with the derivative-free Nelder-Mead
// simplex, projecting every probe into the bound box. Returns the best
// vector found, the major iteration count, and whether the simplex converged
// before hitting the iteration cap.
func solveNelderMead(ssrOf func(p []float64) float64, p0, lower, upper []float64, tol float64, maxIter int) ([]float64, int, bool) {
	problem := optimize.Problem{
		Func: func(p []float64) float64 {
			return ssrOf(clampVec(p, lower, upper))
		},
	}
	settings := &optimize.Settings{
		MajorIterations: maxIter,
		Converger: &optimize.FunctionConverge{
			Relative:   tol,
			Absolute:   0,
			Iterations: 30,
		},
	}

	start := clampVec(p0, lower, upper)
	result, err := optimize.Minimize(problem, start, settings, &optimize.NelderMead{})
	if result == nil {
		return start, 0, false
	}

	best := clampVec(result.X, lower, upper)
	iters := result.Stats.MajorIterations
	converged := err == nil &&
		result.Status != optimize.NotTerminated &&
		result.Status != optimize.IterationLimit &&
		result.Status != optimize.FunctionEvaluationLimit &&
		result.Status != optimize.Failure
	return best, iters, converged
}
