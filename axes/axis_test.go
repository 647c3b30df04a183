package axes

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/suvrajeet01/hyperspy/errs"
)

func TestNewAxis(t *testing.T) {
	t.Run("valid definition", func(t *testing.T) {
		ax, err := New(Def{Name: "energy", Size: 1024, Offset: 120.0, Scale: 0.25, Units: "eV"})
		require.NoError(t, err)
		require.Equal(t, "energy", ax.Name())
		require.Equal(t, 1024, ax.Size())
		require.Equal(t, 120.0, ax.Offset())
		require.Equal(t, 0.25, ax.Scale())
		require.Equal(t, "eV", ax.Units())
		require.False(t, ax.Navigate())
	})

	t.Run("zero scale defaults to one", func(t *testing.T) {
		ax, err := New(Def{Size: 10})
		require.NoError(t, err)
		require.Equal(t, 1.0, ax.Scale())
	})

	t.Run("non-positive size rejected", func(t *testing.T) {
		for _, size := range []int{0, -1} {
			_, err := New(Def{Size: size})
			require.ErrorIs(t, err, errs.ErrInvalidAxis)
		}
	})
}

func TestAxisAffineMapping(t *testing.T) {
	ax, err := New(Def{Size: 100, Offset: -5.0, Scale: 0.5})
	require.NoError(t, err)

	t.Run("value follows offset plus scale times index", func(t *testing.T) {
		require.Equal(t, -5.0, ax.Value(0))
		require.Equal(t, -4.5, ax.Value(1))
		require.Equal(t, 44.5, ax.Value(99))
	})

	t.Run("on-grid values round-trip", func(t *testing.T) {
		for _, i := range []int{0, 1, 17, 50, 99} {
			got, err := ax.Index(ax.Value(i))
			require.NoError(t, err)
			require.Equal(t, i, got)
		}
	})

	t.Run("off-grid values round to nearest", func(t *testing.T) {
		got, err := ax.Index(-4.8) // between index 0 (-5.0) and 1 (-4.5)
		require.NoError(t, err)
		require.Equal(t, 0, got)
	})

	t.Run("out of range value rejected", func(t *testing.T) {
		_, err := ax.Index(100.0)
		require.ErrorIs(t, err, errs.ErrOutOfBounds)

		_, err = ax.Index(-10.0)
		require.ErrorIs(t, err, errs.ErrOutOfBounds)
	})
}

func TestAxisNegativeScale(t *testing.T) {
	// Descending axes appear in energy-loss data taken with reversed dispersion.
	ax, err := New(Def{Size: 10, Offset: 9.0, Scale: -1.0})
	require.NoError(t, err)

	require.Equal(t, 9.0, ax.Value(0))
	require.Equal(t, 0.0, ax.Value(9))

	idx, err := ax.Index(5.0)
	require.NoError(t, err)
	require.Equal(t, 4, idx)
}

func TestAxisValues(t *testing.T) {
	ax, err := New(Def{Size: 4, Offset: 1.0, Scale: 2.0})
	require.NoError(t, err)
	require.Equal(t, []float64{1, 3, 5, 7}, ax.Values())

	// returned slice is caller-owned
	vals := ax.Values()
	vals[0] = -100
	require.Equal(t, []float64{1, 3, 5, 7}, ax.Values())
}

func TestAxisRecalibrate(t *testing.T) {
	ax, err := New(Def{Size: 10, Scale: 1.0})
	require.NoError(t, err)

	require.NoError(t, ax.Recalibrate(2.0, 0.5))
	require.Equal(t, 2.0, ax.Value(0))
	require.Equal(t, 2.5, ax.Value(1))

	require.ErrorIs(t, ax.Recalibrate(0, 0), errs.ErrInvalidAxis)
}
