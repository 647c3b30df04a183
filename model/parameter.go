package model

import (
	"fmt"
	"math"

	"github.com/suvrajeet01/hyperspy/errs"
)

// TwinFunc maps a twin target's resolved value to the dependent parameter's
// value. The identity function is used when nil is passed to SetTwin.
type TwinFunc func(float64) float64

// Parameter is a single scalar degree of freedom of a component.
//
// A parameter carries a current value, optional box bounds, a free flag that
// controls whether the optimizer may vary it, and an optional twin link that
// slaves its value to another parameter through a TwinFunc. Twinned
// parameters are excluded from the free-parameter vector regardless of their
// free flag, and their value is resolved through the twin chain on every
// read.
type Parameter struct {
	name  string
	value float64
	min   float64
	max   float64
	free  bool
	twin  *Parameter
	fn    TwinFunc
}

// NewParameter creates a free, unbounded parameter with the given initial
// value.
func NewParameter(name string, value float64) *Parameter {
	return &Parameter{
		name:  name,
		value: value,
		min:   math.Inf(-1),
		max:   math.Inf(1),
		free:  true,
	}
}

// Name returns the parameter name.
func (p *Parameter) Name() string { return p.name }

// Value returns the parameter's effective value. For a twinned parameter the
// twin chain is walked to its root and the twin functions are applied along
// the way, so the value always reflects the current state of the chain.
func (p *Parameter) Value() float64 {
	if p.twin == nil {
		return p.value
	}
	v := p.twin.Value()
	if p.fn != nil {
		v = p.fn(v)
	}
	return v
}

// SetValue assigns the stored value. Twinned parameters reject direct
// assignment with errs.ErrTwinned since their value is derived.
func (p *Parameter) SetValue(v float64) error {
	if p.twin != nil {
		return fmt.Errorf("%w: parameter %q is twinned to %q", errs.ErrTwinned, p.name, p.twin.name)
	}
	p.value = v
	return nil
}

// Bounds returns the lower and upper bound. Unbounded sides are ±Inf.
func (p *Parameter) Bounds() (min, max float64) { return p.min, p.max }

// SetBounds sets the box constraint for the parameter. min must not exceed
// max; NaN on either side is rejected. Use ±Inf to leave a side open.
func (p *Parameter) SetBounds(min, max float64) error {
	if math.IsNaN(min) || math.IsNaN(max) || min > max {
		return fmt.Errorf("%w: parameter %q bounds [%g, %g]", errs.ErrInvalidBounds, p.name, min, max)
	}
	p.min = min
	p.max = max
	return nil
}

// Free reports whether the optimizer may vary this parameter. A twinned
// parameter is never free.
func (p *Parameter) Free() bool { return p.free && p.twin == nil }

// SetFree marks the parameter as free or fixed.
func (p *Parameter) SetFree(free bool) { p.free = free }

// Twin returns the twin target, or nil when the parameter is independent.
func (p *Parameter) Twin() *Parameter { return p.twin }

// SetTwin slaves this parameter to target: its value becomes fn applied to
// target's resolved value. A nil fn means identity. Linking is rejected with
// errs.ErrCyclicTwin when it would close a cycle, including self-twinning.
func (p *Parameter) SetTwin(target *Parameter, fn TwinFunc) error {
	for q := target; q != nil; q = q.twin {
		if q == p {
			return fmt.Errorf("%w: twinning %q to %q", errs.ErrCyclicTwin, p.name, target.name)
		}
	}
	p.twin = target
	p.fn = fn
	return nil
}

// ClearTwin removes the twin link. The stored value becomes the chain's last
// resolved value, so the parameter keeps its effective value at the moment of
// unlinking.
func (p *Parameter) ClearTwin() {
	if p.twin == nil {
		return
	}
	p.value = p.Value()
	p.twin = nil
	p.fn = nil
}

// clone copies name, value, bounds and free flag. Twin links are not copied;
// callers that need twins intact must rebuild them on the cloned set.
func (p *Parameter) clone() *Parameter {
	return &Parameter{
		name:  p.name,
		value: p.Value(),
		min:   p.min,
		max:   p.max,
		free:  p.free,
	}
}

// clamp projects v into the parameter's bounds.
func (p *Parameter) clamp(v float64) float64 {
	if v < p.min {
		return p.min
	}
	if v > p.max {
		return p.max
	}
	return v
}

// chainRoot returns the final, non-twinned parameter of the twin chain.
func (p *Parameter) chainRoot() *Parameter {
	q := p
	for q.twin != nil {
		q = q.twin
	}
	return q
}
