package model

import (
	"fmt"

	"github.com/suvrajeet01/hyperspy/errs"
	"github.com/suvrajeet01/hyperspy/signal"
)

// State describes a model's lifecycle stage.
type State int

const (
	// Unconfigured means the model has no enabled component and cannot fit.
	Unconfigured State = iota
	// Configured means at least one component is enabled.
	Configured
	// Fitted means at least one fit has produced a result since construction.
	Fitted
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Unconfigured:
		return "unconfigured"
	case Configured:
		return "configured"
	case Fitted:
		return "fitted"
	default:
		return "unknown"
	}
}

type modelEntry struct {
	comp    Component
	enabled bool
}

// Model is an ordered collection of components bound to one signal.
//
// The zero value is not usable; construct with New. A Model is not safe for
// concurrent use.
type Model struct {
	sig     *signal.Signal
	entries []modelEntry
	coords  []float64
	fitted  bool
	results *ResultStore
}

// New creates an empty model bound to sig.
//
// For a signal with a single signal axis the model function is evaluated
// against that axis's calibrated coordinates. Signals with more signal axes
// are evaluated against the flat point index of the row-major signal slice.
func New(sig *signal.Signal) *Model {
	mgr := sig.Axes()
	var coords []float64
	if len(mgr.SignalAxes()) == 1 {
		coords = mgr.SignalCoordinates()
	} else {
		coords = make([]float64, mgr.SignalSize())
		for i := range coords {
			coords[i] = float64(i)
		}
	}
	return &Model{sig: sig, coords: coords}
}

// Signal returns the signal the model is bound to.
func (m *Model) Signal() *signal.Signal { return m.sig }

// Coordinates returns the coordinate array the model function is evaluated
// against. The returned slice is shared; callers must not modify it.
func (m *Model) Coordinates() []float64 { return m.coords }

// State reports the model's lifecycle stage.
func (m *Model) State() State {
	switch {
	case m.fitted:
		return Fitted
	case len(m.enabled()) > 0:
		return Configured
	default:
		return Unconfigured
	}
}

// Append adds a component at the end of the model, enabled. Component names
// must be unique within a model; a duplicate is rejected with
// errs.ErrDuplicateComponent.
func (m *Model) Append(c Component) error {
	for _, e := range m.entries {
		if e.comp.Name() == c.Name() {
			return fmt.Errorf("%w: %q", errs.ErrDuplicateComponent, c.Name())
		}
	}
	m.entries = append(m.entries, modelEntry{comp: c, enabled: true})
	return nil
}

// Remove deletes the named component, preserving the order of the rest.
func (m *Model) Remove(name string) error {
	for i, e := range m.entries {
		if e.comp.Name() == name {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", errs.ErrComponentNotFound, name)
}

// Component returns the named component.
func (m *Model) Component(name string) (Component, error) {
	for _, e := range m.entries {
		if e.comp.Name() == name {
			return e.comp, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", errs.ErrComponentNotFound, name)
}

// Components returns all components in insertion order, enabled or not.
func (m *Model) Components() []Component {
	out := make([]Component, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.comp
	}
	return out
}

// Enable marks the named component as part of the active model.
func (m *Model) Enable(name string) error { return m.setEnabled(name, true) }

// Disable removes the named component from the active model without
// discarding it or its parameter values.
func (m *Model) Disable(name string) error { return m.setEnabled(name, false) }

// Enabled reports whether the named component is part of the active model.
func (m *Model) Enabled(name string) (bool, error) {
	for _, e := range m.entries {
		if e.comp.Name() == name {
			return e.enabled, nil
		}
	}
	return false, fmt.Errorf("%w: %q", errs.ErrComponentNotFound, name)
}

func (m *Model) setEnabled(name string, enabled bool) error {
	for i, e := range m.entries {
		if e.comp.Name() == name {
			m.entries[i].enabled = enabled
			return nil
		}
	}
	return fmt.Errorf("%w: %q", errs.ErrComponentNotFound, name)
}

// enabled returns the enabled components in insertion order.
func (m *Model) enabled() []Component {
	var out []Component
	for _, e := range m.entries {
		if e.enabled {
			out = append(out, e.comp)
		}
	}
	return out
}

// FreeParameters returns the free, non-twinned parameters of every enabled
// component, concatenated in component insertion order with each component's
// declaration order preserved. This ordering defines the layout of the
// vectors exchanged with the optimizer and of fit results.
func (m *Model) FreeParameters() []*Parameter {
	var free []*Parameter
	for _, c := range m.enabled() {
		free = append(free, freeParameters(c)...)
	}
	return free
}

// FreeValues returns the current values of the free parameters in assembly
// order.
func (m *Model) FreeValues() []float64 {
	free := m.FreeParameters()
	vals := make([]float64, len(free))
	for i, p := range free {
		vals[i] = p.Value()
	}
	return vals
}

// SetFreeValues assigns vals to the free parameters in assembly order.
// Setting then extracting yields the identical vector.
func (m *Model) SetFreeValues(vals []float64) error {
	free := m.FreeParameters()
	if len(vals) != len(free) {
		return fmt.Errorf("%w: model has %d free parameters, got %d values",
			errs.ErrDimensionMismatch, len(free), len(vals))
	}
	for i, p := range free {
		if err := p.SetValue(vals[i]); err != nil {
			return err
		}
	}
	return nil
}

// ParameterLabels returns "component.parameter" labels for the free
// parameters in assembly order.
func (m *Model) ParameterLabels() []string {
	var labels []string
	for _, c := range m.enabled() {
		for _, p := range freeParameters(c) {
			labels = append(labels, c.Name()+"."+p.Name())
		}
	}
	return labels
}

// Evaluate computes the sum of the enabled components over x using the
// current parameter values. Twin links resolve through the live chain on
// every call.
func (m *Model) Evaluate(x []float64) []float64 {
	out := make([]float64, len(x))
	for _, c := range m.enabled() {
		y := c.Evaluate(x)
		for i := range out {
			out[i] += y[i]
		}
	}
	return out
}

// EvalAt evaluates the active model over the signal coordinates and returns
// it alongside the observed slice at the given navigation position, for
// inspecting fit quality.
func (m *Model) EvalAt(navIndices []int) (modeled, observed []float64, err error) {
	observed, err = m.sig.At(navIndices)
	if err != nil {
		return nil, nil, err
	}
	return m.Evaluate(m.coords), observed, nil
}

// evaluateInto is Evaluate without the output allocation, for the optimizer
// inner loop.
func (m *Model) evaluateInto(dst, x []float64) {
	for i := range dst {
		dst[i] = 0
	}
	for _, c := range m.enabled() {
		y := c.Evaluate(x)
		for i := range dst {
			dst[i] += y[i]
		}
	}
}

// IsLinear reports whether the active model can be fitted by a direct linear
// least-squares solve: every enabled component declares itself linear and no
// parameter of an enabled component is twinned to a free parameter, since
// such a link couples the component output to the optimization vector
// through an arbitrary function.
func (m *Model) IsLinear() bool {
	comps := m.enabled()
	if len(comps) == 0 {
		return false
	}
	for _, c := range comps {
		if !c.Linear() {
			return false
		}
		for _, p := range c.Parameters() {
			if p.Twin() != nil && p.chainRoot().Free() {
				return false
			}
		}
	}
	return true
}

// Results returns the result store produced by the most recent MultiFit, or
// nil when no multidimensional fit has run.
func (m *Model) Results() *ResultStore { return m.results }

// validate checks that the model is ready to fit: at least one enabled
// component, at least one free parameter, and every free parameter's value
// inside its bounds.
func (m *Model) validate() error {
	if len(m.enabled()) == 0 {
		return fmt.Errorf("%w: model has no enabled components", errs.ErrNotConfigured)
	}
	free := m.FreeParameters()
	if len(free) == 0 {
		return fmt.Errorf("%w: all parameters fixed or twinned", errs.ErrNoFreeParameters)
	}
	for _, p := range free {
		min, max := p.Bounds()
		if v := p.Value(); v < min || v > max {
			return fmt.Errorf("%w: parameter %q value %g outside [%g, %g]",
				errs.ErrInvalidBounds, p.Name(), v, min, max)
		}
	}
	return nil
}

// clone deep-copies the model's enabled components for an independent fit
// worker. Every enabled component must implement Cloneable and no enabled
// component may carry twin links, because twins cannot be rebuilt across
// component boundaries on copies.
func (m *Model) clone() (*Model, error) {
	clone := New(m.sig)
	for _, e := range m.entries {
		if !e.enabled {
			continue
		}
		cc, ok := e.comp.(Cloneable)
		if !ok {
			return nil, fmt.Errorf("%w: component %q does not support cloning, required for parallel fitting",
				errs.ErrNotConfigured, e.comp.Name())
		}
		for _, p := range e.comp.Parameters() {
			if p.Twin() != nil {
				return nil, fmt.Errorf("%w: component %q has twinned parameter %q, parallel fitting requires untwinned parameters",
					errs.ErrNotConfigured, e.comp.Name(), p.Name())
			}
		}
		if err := clone.Append(cc.Clone()); err != nil {
			return nil, err
		}
	}
	return clone, nil
}
