package components

import (
	"math"

	"github.com/suvrajeet01/hyperspy/model"
)

// PowerLaw is the decaying background A * (x - origin)^(-r), the classic
// spectroscopy background model. Points at or left of the origin evaluate to
// zero rather than a singularity.
//
// Parameters in declaration order: amplitude, exponent, origin. The origin
// is fixed by default since it is rarely fitted.
type PowerLaw struct {
	name      string
	amplitude *model.Parameter
	exponent  *model.Parameter
	origin    *model.Parameter
	params    []*model.Parameter
}

// NewPowerLaw creates a power-law component with the given initial amplitude
// and exponent and the origin fixed at zero.
func NewPowerLaw(name string, amplitude, exponent float64) *PowerLaw {
	p := &PowerLaw{
		name:      name,
		amplitude: model.NewParameter("amplitude", amplitude),
		exponent:  model.NewParameter("exponent", exponent),
		origin:    model.NewParameter("origin", 0),
	}
	p.origin.SetFree(false)
	p.params = []*model.Parameter{p.amplitude, p.exponent, p.origin}
	return p
}

// Name returns the component name.
func (p *PowerLaw) Name() string { return p.name }

// Parameters returns amplitude, exponent and origin, in that order.
func (p *PowerLaw) Parameters() []*model.Parameter { return p.params }

// Amplitude returns the amplitude parameter.
func (p *PowerLaw) Amplitude() *model.Parameter { return p.amplitude }

// Exponent returns the decay exponent parameter.
func (p *PowerLaw) Exponent() *model.Parameter { return p.exponent }

// Origin returns the origin parameter.
func (p *PowerLaw) Origin() *model.Parameter { return p.origin }

// Evaluate computes the background over x with the current parameter values.
func (p *PowerLaw) Evaluate(x []float64) []float64 {
	a := p.amplitude.Value()
	r := p.exponent.Value()
	x0 := p.origin.Value()

	out := make([]float64, len(x))
	for i, v := range x {
		if v <= x0 {
			continue
		}
		out[i] = a * math.Pow(v-x0, -r)
	}
	return out
}

// Linear reports false: the output is nonlinear in the exponent.
func (p *PowerLaw) Linear() bool { return false }

// Clone returns an independent deep copy.
func (p *PowerLaw) Clone() model.Component {
	c := NewPowerLaw(p.name, 0, 0)
	copyParams(c.params, p.params)
	return c
}
