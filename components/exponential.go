package components

import (
	"math"

	"github.com/suvrajeet01/hyperspy/model"
)

// Exponential is the decay A * exp(-x / tau).
//
// Parameters in declaration order: amplitude, tau. Tau is bounded below at
// zero; a zero tau evaluates to zero everywhere instead of overflowing.
type Exponential struct {
	name      string
	amplitude *model.Parameter
	tau       *model.Parameter
	params    []*model.Parameter
}

// NewExponential creates an exponential decay with the given initial values.
func NewExponential(name string, amplitude, tau float64) *Exponential {
	e := &Exponential{
		name:      name,
		amplitude: model.NewParameter("amplitude", amplitude),
		tau:       model.NewParameter("tau", tau),
	}
	_ = e.tau.SetBounds(0, math.Inf(1))
	e.params = []*model.Parameter{e.amplitude, e.tau}
	return e
}

// Name returns the component name.
func (e *Exponential) Name() string { return e.name }

// Parameters returns amplitude and tau, in that order.
func (e *Exponential) Parameters() []*model.Parameter { return e.params }

// Amplitude returns the amplitude parameter.
func (e *Exponential) Amplitude() *model.Parameter { return e.amplitude }

// Tau returns the decay-constant parameter.
func (e *Exponential) Tau() *model.Parameter { return e.tau }

// Evaluate computes the decay over x with the current parameter values.
func (e *Exponential) Evaluate(x []float64) []float64 {
	a := e.amplitude.Value()
	tau := e.tau.Value()

	out := make([]float64, len(x))
	if tau == 0 {
		return out
	}
	inv := 1 / tau
	for i, v := range x {
		out[i] = a * math.Exp(-v*inv)
	}
	return out
}

// Linear reports false: the output is nonlinear in tau.
func (e *Exponential) Linear() bool { return false }

// Clone returns an independent deep copy.
func (e *Exponential) Clone() model.Component {
	c := NewExponential(e.name, 0, 0)
	copyParams(c.params, e.params)
	return c
}
