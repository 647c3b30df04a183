package model

// Component is one additive term of a model function.
//
// Evaluate computes the component over the given coordinate array using the
// current effective values of its parameters, so twin links and fixed values
// take effect without any extra plumbing. Parameters must return the same
// slice ordering on every call; that ordering defines the component's
// contribution to the model's free-parameter vector.
//
// Linear reports whether the component's output is linear in every one of
// its free parameters. The model uses it to route an all-linear fit through
// a direct least-squares solve instead of an iterative optimizer.
type Component interface {
	Name() string
	Parameters() []*Parameter
	Evaluate(x []float64) []float64
	Linear() bool
}

// Cloneable is implemented by components that can produce an independent
// deep copy of themselves. Parallel multidimensional fitting clones the model
// per worker and therefore requires every enabled component to be Cloneable.
type Cloneable interface {
	Component
	Clone() Component
}

// freeParameters returns c's free, non-twinned parameters in declaration
// order.
func freeParameters(c Component) []*Parameter {
	var free []*Parameter
	for _, p := range c.Parameters() {
		if p.Free() {
			free = append(free, p)
		}
	}
	return free
}

// FreeParameters returns c's free, non-twinned parameters in declaration
// order, the per-component slice of the model's assembly order.
func FreeParameters(c Component) []*Parameter {
	return freeParameters(c)
}
