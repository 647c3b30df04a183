package components

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/suvrajeet01/hyperspy/axes"
	"github.com/suvrajeet01/hyperspy/model"
	"github.com/suvrajeet01/hyperspy/signal"
)

// newLineModel builds a model over a one-dimensional signal sampled at
// coordinates 0..len(data)-1 with no navigation axes.
func newLineModel(t *testing.T, data []float64) *model.Model {
	t.Helper()

	ax, err := axes.New(axes.Def{Name: "x", Size: len(data)})
	require.NoError(t, err)
	mgr, err := axes.NewManager(ax)
	require.NoError(t, err)
	sig, err := signal.FromData(mgr, data)
	require.NoError(t, err)

	return model.New(sig)
}
