package model

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// residualFunc writes the n weighted residuals at parameter vector p into r.
// Implementations must tolerate any p inside the bound box.
type residualFunc func(p, r []float64)

const (
	lmLambdaInit = 1e-3
	lmLambdaMax  = 1e12
	lmSSRTiny    = 1e-300
	jacStepScale = 1.4901161193847656e-08 // sqrt(machine epsilon)
)

// solveLM minimizes the sum of squared residuals with a damped Gauss-Newton
// (Levenberg-Marquardt) iteration, projecting every trial vector into the
// [lower, upper] box.
//
// Convergence is declared when the relative improvement of the sum of
// squares over one accepted step falls below tol, when the residual vanishes,
// or when the iteration stalls with a negligible gradient at an interior or
// bound-constrained point. Returns the best vector found, the iteration
// count, and the convergence flag.
func solveLM(f residualFunc, p0, lower, upper []float64, n int, tol float64, maxIter int) ([]float64, int, bool) {
	k := len(p0)
	p := clampVec(p0, lower, upper)

	r := make([]float64, n)
	f(p, r)
	ssr := floats.Dot(r, r)
	if math.IsNaN(ssr) || math.IsInf(ssr, 0) {
		return p, 0, false
	}
	if ssr <= lmSSRTiny {
		return p, 0, true
	}

	rt := make([]float64, n)
	lambda := lmLambdaInit

	for iter := 1; iter <= maxIter; iter++ {
		jac := numJacobian(f, p, lower, upper, n)

		var jtj mat.Dense
		jtj.Mul(jac.T(), jac)
		var jtr mat.VecDense
		jtr.MulVec(jac.T(), mat.NewVecDense(n, r))

		improved := false
		for lambda <= lmLambdaMax {
			delta, ok := solveDamped(&jtj, &jtr, lambda, k)
			if !ok {
				lambda *= 10
				continue
			}

			trial := make([]float64, k)
			for j := range trial {
				trial[j] = p[j] - delta.AtVec(j)
			}
			trial = clampVec(trial, lower, upper)

			f(trial, rt)
			trialSSR := floats.Dot(rt, rt)
			if math.IsNaN(trialSSR) || math.IsInf(trialSSR, 0) || trialSSR > ssr {
				lambda *= 10
				continue
			}

			improvement := ssr - trialSSR
			stepNorm := 0.0
			for j := range trial {
				d := trial[j] - p[j]
				stepNorm += d * d
			}
			stepNorm = math.Sqrt(stepNorm)

			p = trial
			copy(r, rt)
			prev := ssr
			ssr = trialSSR
			lambda = math.Max(lambda*0.3, 1e-12)
			improved = true

			if ssr <= lmSSRTiny ||
				improvement <= tol*math.Max(prev, lmSSRTiny) ||
				stepNorm <= tol*(1+floats.Norm(p, 2)) {
				return p, iter, true
			}
			break
		}

		if !improved {
			// No damping level yields progress. A tiny gradient means the
			// iteration sits at a (possibly bound-constrained) minimum;
			// anything else is a genuine failure.
			gnorm := mat.Norm(&jtr, math.Inf(1))
			return p, iter, gnorm <= tol*(1+ssr)
		}
	}

	return p, maxIter, false
}

// solveDamped solves (JᵀJ + lambda*diag(JᵀJ)) delta = Jᵀr via Cholesky.
func solveDamped(jtj *mat.Dense, jtr *mat.VecDense, lambda float64, k int) (*mat.VecDense, bool) {
	sym := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			v := jtj.At(i, j)
			if i == j {
				v += lambda * math.Max(jtj.At(i, i), 1e-12)
			}
			sym.SetSym(i, j, v)
		}
	}

	var ch mat.Cholesky
	if !ch.Factorize(sym) {
		return nil, false
	}
	var delta mat.VecDense
	if err := ch.SolveVecTo(&delta, jtr); err != nil {
		return nil, false
	}
	return &delta, true
}

// numJacobian estimates the n-by-k Jacobian of the residual at p by forward
// differences, stepping backwards where a forward step would leave the bound
// box.
func numJacobian(f residualFunc, p, lower, upper []float64, n int) *mat.Dense {
	k := len(p)
	jac := mat.NewDense(n, k, nil)

	r0 := make([]float64, n)
	f(p, r0)
	rj := make([]float64, n)
	pj := slices.Clone(p)

	for j := 0; j < k; j++ {
		h := jacStepScale * math.Max(math.Abs(p[j]), 1)
		if p[j]+h > upper[j] {
			h = -h
		}
		if p[j]+h < lower[j] {
			// Degenerate box: bounds pin the parameter, column stays zero.
			continue
		}

		pj[j] = p[j] + h
		f(pj, rj)
		pj[j] = p[j]

		inv := 1 / h
		for i := 0; i < n; i++ {
			jac.Set(i, j, (rj[i]-r0[i])*inv)
		}
	}
	// Leave the model at the expansion point, not the last probe.
	f(p, r0)
	return jac
}

// covarianceDiag returns the diagonal of sigma2*(JᵀJ)⁻¹, the parameter
// variance estimate at the solution, or nil when the normal matrix is
// singular beyond recovery. A rank-revealing SVD pseudo-inverse backs up the
// Cholesky path so near-degenerate parameter combinations still yield errors
// for the well-determined directions.
func covarianceDiag(jac *mat.Dense, sigma2 float64) []float64 {
	if math.IsNaN(sigma2) || math.IsInf(sigma2, 0) || sigma2 < 0 {
		return nil
	}
	n, k := jac.Dims()
	if n < k {
		return nil
	}

	var jtj mat.Dense
	jtj.Mul(jac.T(), jac)
	sym := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			sym.SetSym(i, j, jtj.At(i, j))
		}
	}

	var ch mat.Cholesky
	if ch.Factorize(sym) {
		var inv mat.SymDense
		if err := ch.InverseTo(&inv); err == nil {
			out := make([]float64, k)
			for j := range out {
				out[j] = sigma2 * inv.At(j, j)
			}
			if allFinite(out) {
				return out
			}
		}
	}

	var svd mat.SVD
	if !svd.Factorize(jac, mat.SVDThin) {
		return nil
	}
	s := svd.Values(nil)
	var v mat.Dense
	svd.VTo(&v)

	rcond := float64(n) * 2.220446049250313e-16 * s[0]
	out := make([]float64, k)
	for j := 0; j < k; j++ {
		var sum float64
		for l := 0; l < len(s); l++ {
			if s[l] <= rcond {
				continue
			}
			q := v.At(j, l) / s[l]
			sum += q * q
		}
		out[j] = sigma2 * sum
	}
	if !allFinite(out) {
		return nil
	}
	return out
}
