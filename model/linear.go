package model

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// solveLinear fits a structurally linear model by one direct least-squares
// solve.
//
// The design matrix is built by structural probing: the model is evaluated
// with all free parameters at zero for the fixed-contribution baseline, then
// once per free parameter at unit value, and the column is the difference.
// This treats components purely through their Evaluate contract, so any
// component that truthfully declares itself linear participates without
// extra interface surface. Bounds are not enforced on the linear solution.
func (m *Model) solveLinear(data []float64, cfg *FitConfig, res *FitResult) {
	free := m.FreeParameters()
	k := len(free)
	n := len(data)
	saved := m.FreeValues()

	res.Method = MethodAuto
	res.Iterations = 1

	weigh := func(i int, v float64) float64 {
		if cfg.weights != nil {
			return v * cfg.weights[i]
		}
		return v
	}

	probe := make([]float64, k)
	_ = m.SetFreeValues(probe)
	base := m.Evaluate(m.coords)

	design := mat.NewDense(n, k, nil)
	for j := 0; j < k; j++ {
		probe[j] = 1
		_ = m.SetFreeValues(probe)
		col := m.Evaluate(m.coords)
		probe[j] = 0
		for i := 0; i < n; i++ {
			design.Set(i, j, weigh(i, col[i]-base[i]))
		}
	}

	rhs := make([]float64, n)
	for i := range rhs {
		rhs[i] = weigh(i, data[i]-base[i])
	}

	var qr mat.QR
	qr.Factorize(design)
	var sol mat.VecDense
	if err := qr.SolveVecTo(&sol, false, mat.NewVecDense(n, rhs)); err != nil {
		// Rank-deficient design: the position does not determine the
		// parameters. Leave the model untouched and record the failure.
		_ = m.SetFreeValues(saved)
		res.Values = saved
		res.SSR = math.NaN()
		res.ReducedChi2 = math.NaN()
		return
	}

	vals := make([]float64, k)
	for j := range vals {
		vals[j] = sol.AtVec(j)
	}
	_ = m.SetFreeValues(vals)

	r := make([]float64, n)
	fitv := m.Evaluate(m.coords)
	for i := range r {
		r[i] = weigh(i, fitv[i]-data[i])
	}
	ssr := floats.Dot(r, r)

	res.Values = slices.Clone(vals)
	res.Converged = true
	res.SSR = ssr
	res.ReducedChi2 = math.NaN()
	if res.Dof > 0 {
		res.ReducedChi2 = ssr / float64(res.Dof)
		if vars := covarianceDiag(design, ssr/float64(res.Dof)); vars != nil {
			res.StdErrs = make([]float64, k)
			for j, v := range vars {
				res.StdErrs[j] = math.Sqrt(v)
			}
		}
	}
}
