package components

import (
	"math"

	"github.com/suvrajeet01/hyperspy/model"
)

// Gaussian is the normalized bell curve A * exp(-(x-centre)² / (2 sigma²)).
//
// Parameters in declaration order: amplitude, centre, sigma. Sigma is
// bounded below at zero to keep the width physical.
type Gaussian struct {
	name      string
	amplitude *model.Parameter
	centre    *model.Parameter
	sigma     *model.Parameter
	params    []*model.Parameter
}

// NewGaussian creates a Gaussian component with the given initial values.
func NewGaussian(name string, amplitude, centre, sigma float64) *Gaussian {
	g := &Gaussian{
		name:      name,
		amplitude: model.NewParameter("amplitude", amplitude),
		centre:    model.NewParameter("centre", centre),
		sigma:     model.NewParameter("sigma", sigma),
	}
	_ = g.sigma.SetBounds(0, math.Inf(1))
	g.params = []*model.Parameter{g.amplitude, g.centre, g.sigma}
	return g
}

// Name returns the component name.
func (g *Gaussian) Name() string { return g.name }

// Parameters returns amplitude, centre and sigma, in that order.
func (g *Gaussian) Parameters() []*model.Parameter { return g.params }

// Amplitude returns the amplitude parameter.
func (g *Gaussian) Amplitude() *model.Parameter { return g.amplitude }

// Centre returns the centre parameter.
func (g *Gaussian) Centre() *model.Parameter { return g.centre }

// Sigma returns the width parameter.
func (g *Gaussian) Sigma() *model.Parameter { return g.sigma }

// Evaluate computes the curve over x with the current parameter values.
func (g *Gaussian) Evaluate(x []float64) []float64 {
	a := g.amplitude.Value()
	c := g.centre.Value()
	s := g.sigma.Value()

	out := make([]float64, len(x))
	if s == 0 {
		return out
	}
	inv := 1 / (2 * s * s)
	for i, v := range x {
		d := v - c
		out[i] = a * math.Exp(-d*d*inv)
	}
	return out
}

// Linear reports false: the output is nonlinear in centre and sigma.
func (g *Gaussian) Linear() bool { return false }

// Clone returns an independent deep copy.
func (g *Gaussian) Clone() model.Component {
	c := NewGaussian(g.name, 0, 0, 0)
	copyParams(c.params, g.params)
	return c
}
