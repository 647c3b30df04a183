package components

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suvrajeet01/hyperspy/model"
)

func TestGaussianEvaluate(t *testing.T) {
	g := NewGaussian("peak", 2, 1, 0.5)

	out := g.Evaluate([]float64{1})
	require.Len(t, out, 1)
	assert.InDelta(t, 2.0, out[0], 1e-12, "peak value at the centre")

	out = g.Evaluate([]float64{1.5})
	assert.InDelta(t, 2*math.Exp(-0.5), out[0], 1e-12, "one sigma off centre")

	// Symmetric about the centre.
	out = g.Evaluate([]float64{0, 2})
	assert.InDelta(t, out[0], out[1], 1e-12)

	assert.False(t, g.Linear())
	assert.Equal(t, "peak", g.Name())
}

func TestGaussianZeroSigma(t *testing.T) {
	g := NewGaussian("peak", 2, 0, 0)
	assert.Equal(t, []float64{0, 0}, g.Evaluate([]float64{0, 1}))
}

func TestGaussianSigmaBound(t *testing.T) {
	g := NewGaussian("peak", 1, 0, 1)
	min, _ := g.Sigma().Bounds()
	assert.Equal(t, 0.0, min)
}

func TestLorentzianEvaluate(t *testing.T) {
	l := NewLorentzian("peak", 3, 2, 0.5)

	// Peak value at the centre is A / (pi * gamma).
	out := l.Evaluate([]float64{2})
	assert.InDelta(t, 3/(math.Pi*0.5), out[0], 1e-12)

	// Half maximum at centre +- gamma.
	out = l.Evaluate([]float64{2.5, 1.5})
	assert.InDelta(t, 3/(math.Pi*0.5)/2, out[0], 1e-12)
	assert.InDelta(t, out[0], out[1], 1e-12)

	assert.False(t, l.Linear())
}

func TestOffsetEvaluate(t *testing.T) {
	o := NewOffset("bg", 4.5)
	assert.Equal(t, []float64{4.5, 4.5, 4.5}, o.Evaluate([]float64{0, 1, 2}))
	assert.True(t, o.Linear())
}

func TestPolynomialEvaluate(t *testing.T) {
	// 1 + 2x + 3x²
	p := NewPolynomial("poly", 1, 2, 3)
	assert.Equal(t, 2, p.Degree())

	out := p.Evaluate([]float64{0, 1, 2})
	assert.InDelta(t, 1.0, out[0], 1e-12)
	assert.InDelta(t, 6.0, out[1], 1e-12)
	assert.InDelta(t, 17.0, out[2], 1e-12)

	assert.True(t, p.Linear())
	assert.Equal(t, "c0", p.Coefficient(0).Name())
	assert.Equal(t, "c2", p.Coefficient(2).Name())
}

func TestPolynomialEmptyCoefficients(t *testing.T) {
	p := NewPolynomial("poly")
	assert.Equal(t, 0, p.Degree())
	assert.Equal(t, []float64{0}, p.Evaluate([]float64{5}))
}

func TestPowerLawEvaluate(t *testing.T) {
	p := NewPowerLaw("bg", 100, 2)

	out := p.Evaluate([]float64{1, 2, 10})
	assert.InDelta(t, 100.0, out[0], 1e-12)
	assert.InDelta(t, 25.0, out[1], 1e-12)
	assert.InDelta(t, 1.0, out[2], 1e-12)

	// At or left of the origin the value is zero, not a singularity.
	out = p.Evaluate([]float64{0, -1})
	assert.Equal(t, []float64{0, 0}, out)

	assert.False(t, p.Linear())
	assert.False(t, p.Origin().Free(), "origin is fixed by default")
}

func TestExponentialEvaluate(t *testing.T) {
	e := NewExponential("decay", 4, 2)

	out := e.Evaluate([]float64{0, 2})
	assert.InDelta(t, 4.0, out[0], 1e-12)
	assert.InDelta(t, 4/math.E, out[1], 1e-12)

	assert.False(t, e.Linear())
}

func TestExponentialZeroTau(t *testing.T) {
	e := NewExponential("decay", 4, 0)
	assert.Equal(t, []float64{0, 0}, e.Evaluate([]float64{0, 1}))
}

func TestCloneIndependence(t *testing.T) {
	comps := []model.Cloneable{
		NewGaussian("g", 1, 2, 3),
		NewLorentzian("l", 1, 2, 3),
		NewOffset("o", 1),
		NewPolynomial("p", 1, 2),
		NewPowerLaw("pw", 1, 2),
		NewExponential("e", 1, 2),
	}

	x := []float64{0.5, 1.5, 2.5}
	for _, c := range comps {
		clone := c.Clone()
		assert.Equal(t, c.Name(), clone.Name())
		assert.Equal(t, c.Linear(), clone.Linear())
		assert.Equal(t, c.Evaluate(x), clone.Evaluate(x))

		orig := c.Parameters()
		copied := clone.Parameters()
		require.Equal(t, len(orig), len(copied))
		for i := range orig {
			assert.Equal(t, orig[i].Name(), copied[i].Name())
			assert.Equal(t, orig[i].Free(), copied[i].Free())

			// Mutating the clone must not touch the original.
			if copied[i].Free() {
				require.NoError(t, copied[i].SetValue(orig[i].Value()+99))
				assert.NotEqual(t, orig[i].Value(), copied[i].Value())
			}
		}
	}
}

func TestFitPeakOnBackground(t *testing.T) {
	// Gaussian on a constant background, the bread-and-butter case.
	x := make([]float64, 25)
	for i := range x {
		x[i] = float64(i)
	}
	truth := NewGaussian("peak", 6, 12, 2)
	curve := truth.Evaluate(x)
	data := make([]float64, len(x))
	for i := range data {
		data[i] = curve[i] + 1.5
	}

	m := newLineModel(t, data)
	require.NoError(t, m.Append(NewGaussian("peak", 5, 11, 3)))
	require.NoError(t, m.Append(NewOffset("bg", 1)))

	res, err := m.FitAt(nil)
	require.NoError(t, err)

	require.True(t, res.Converged)
	assert.Equal(t, []string{"peak.amplitude", "peak.centre", "peak.sigma", "bg.offset"}, m.ParameterLabels())
	assert.InDelta(t, 6.0, res.Values[0], 1e-3)
	assert.InDelta(t, 12.0, res.Values[1], 1e-3)
	assert.InDelta(t, 2.0, res.Values[2], 1e-3)
	assert.InDelta(t, 1.5, res.Values[3], 1e-3)
}

func TestFitPolynomialLinearPath(t *testing.T) {
	data := make([]float64, 9)
	for i := range data {
		v := float64(i)
		data[i] = 2 - v + 0.5*v*v
	}
	m := newLineModel(t, data)
	require.NoError(t, m.Append(NewPolynomial("poly", 0, 0, 0)))
	require.True(t, m.IsLinear())

	res, err := m.FitAt(nil)
	require.NoError(t, err)

	require.True(t, res.Converged)
	assert.Equal(t, 1, res.Iterations)
	assert.InDelta(t, 2.0, res.Values[0], 1e-9)
	assert.InDelta(t, -1.0, res.Values[1], 1e-9)
	assert.InDelta(t, 0.5, res.Values[2], 1e-9)
}
