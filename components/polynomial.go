package components

import (
	"fmt"

	"github.com/suvrajeet01/hyperspy/model"
)

// Polynomial is the power series c0 + c1*x + ... + cn*xⁿ.
//
// Parameters are the coefficients in ascending-power order, named "c0",
// "c1" and so on. The component is linear, so an all-polynomial model fits
// through the direct least-squares path.
type Polynomial struct {
	name   string
	params []*model.Parameter
}

// NewPolynomial creates a polynomial from its coefficients in
// ascending-power order. At least one coefficient is required; a single
// coefficient degenerates to a constant.
func NewPolynomial(name string, coeffs ...float64) *Polynomial {
	if len(coeffs) == 0 {
		coeffs = []float64{0}
	}
	p := &Polynomial{name: name}
	for i, c := range coeffs {
		p.params = append(p.params, model.NewParameter(fmt.Sprintf("c%d", i), c))
	}
	return p
}

// Name returns the component name.
func (p *Polynomial) Name() string { return p.name }

// Parameters returns the coefficients in ascending-power order.
func (p *Polynomial) Parameters() []*model.Parameter { return p.params }

// Degree returns the polynomial degree.
func (p *Polynomial) Degree() int { return len(p.params) - 1 }

// Coefficient returns the parameter for the xⁱ term.
func (p *Polynomial) Coefficient(i int) *model.Parameter { return p.params[i] }

// Evaluate computes the series over x by Horner's rule with the current
// coefficient values.
func (p *Polynomial) Evaluate(x []float64) []float64 {
	coeffs := make([]float64, len(p.params))
	for i, c := range p.params {
		coeffs[i] = c.Value()
	}

	out := make([]float64, len(x))
	for i, v := range x {
		acc := coeffs[len(coeffs)-1]
		for j := len(coeffs) - 2; j >= 0; j-- {
			acc = acc*v + coeffs[j]
		}
		out[i] = acc
	}
	return out
}

// Linear reports true: the output is linear in every coefficient.
func (p *Polynomial) Linear() bool { return true }

// Clone returns an independent deep copy.
func (p *Polynomial) Clone() model.Component {
	c := NewPolynomial(p.name, make([]float64, len(p.params))...)
	copyParams(c.params, p.params)
	return c
}
