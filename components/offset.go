package components

import "github.com/suvrajeet01/hyperspy/model"

// Offset is a constant background term.
type Offset struct {
	name   string
	offset *model.Parameter
	params []*model.Parameter
}

// NewOffset creates a constant component with the given initial value.
func NewOffset(name string, offset float64) *Offset {
	o := &Offset{
		name:   name,
		offset: model.NewParameter("offset", offset),
	}
	o.params = []*model.Parameter{o.offset}
	return o
}

// Name returns the component name.
func (o *Offset) Name() string { return o.name }

// Parameters returns the single offset parameter.
func (o *Offset) Parameters() []*model.Parameter { return o.params }

// Offset returns the offset parameter.
func (o *Offset) Offset() *model.Parameter { return o.offset }

// Evaluate fills the output with the current offset value.
func (o *Offset) Evaluate(x []float64) []float64 {
	v := o.offset.Value()
	out := make([]float64, len(x))
	for i := range out {
		out[i] = v
	}
	return out
}

// Linear reports true.
func (o *Offset) Linear() bool { return true }

// Clone returns an independent deep copy.
func (o *Offset) Clone() model.Component {
	c := NewOffset(o.name, 0)
	copyParams(c.params, o.params)
	return c
}
