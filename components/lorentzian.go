package components

import (
	"math"

	"github.com/suvrajeet01/hyperspy/model"
)

// Lorentzian is the Cauchy peak A/π * gamma / ((x-centre)² + gamma²), with
// gamma the half width at half maximum.
//
// Parameters in declaration order: amplitude, centre, gamma. Gamma is
// bounded below at zero.
type Lorentzian struct {
	name      string
	amplitude *model.Parameter
	centre    *model.Parameter
	gamma     *model.Parameter
	params    []*model.Parameter
}

// NewLorentzian creates a Lorentzian component with the given initial
// values.
func NewLorentzian(name string, amplitude, centre, gamma float64) *Lorentzian {
	l := &Lorentzian{
		name:      name,
		amplitude: model.NewParameter("amplitude", amplitude),
		centre:    model.NewParameter("centre", centre),
		gamma:     model.NewParameter("gamma", gamma),
	}
	_ = l.gamma.SetBounds(0, math.Inf(1))
	l.params = []*model.Parameter{l.amplitude, l.centre, l.gamma}
	return l
}

// Name returns the component name.
func (l *Lorentzian) Name() string { return l.name }

// Parameters returns amplitude, centre and gamma, in that order.
func (l *Lorentzian) Parameters() []*model.Parameter { return l.params }

// Amplitude returns the amplitude parameter.
func (l *Lorentzian) Amplitude() *model.Parameter { return l.amplitude }

// Centre returns the centre parameter.
func (l *Lorentzian) Centre() *model.Parameter { return l.centre }

// Gamma returns the half-width parameter.
func (l *Lorentzian) Gamma() *model.Parameter { return l.gamma }

// Evaluate computes the peak over x with the current parameter values.
func (l *Lorentzian) Evaluate(x []float64) []float64 {
	a := l.amplitude.Value()
	c := l.centre.Value()
	g := l.gamma.Value()

	out := make([]float64, len(x))
	if g == 0 {
		return out
	}
	scale := a * g / math.Pi
	for i, v := range x {
		d := v - c
		out[i] = scale / (d*d + g*g)
	}
	return out
}

// Linear reports false: the output is nonlinear in centre and gamma.
func (l *Lorentzian) Linear() bool { return false }

// Clone returns an independent deep copy.
func (l *Lorentzian) Clone() model.Component {
	c := NewLorentzian(l.name, 0, 0, 0)
	copyParams(c.params, l.params)
	return c
}
