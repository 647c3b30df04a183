package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// fitConfig mimics the option targets in the model package.
type fitConfig struct {
	Tolerance  float64
	MaxIter    int
	Method     string
	lastOption string
}

func (c *fitConfig) setMaxIter(n int) error {
	if n <= 0 {
		return errors.New("iteration cap must be positive")
	}
	c.MaxIter = n
	c.lastOption = "setMaxIter"

	return nil
}

func TestOption_New(t *testing.T) {
	cfg := &fitConfig{}

	t.Run("creates option that can return error", func(t *testing.T) {
		opt := New(func(c *fitConfig) error {
			return c.setMaxIter(500)
		})

		err := opt.apply(cfg)
		require.NoError(t, err)
		require.Equal(t, 500, cfg.MaxIter)
		require.Equal(t, "setMaxIter", cfg.lastOption)
	})

	t.Run("propagates errors from option function", func(t *testing.T) {
		opt := New(func(c *fitConfig) error {
			return c.setMaxIter(0)
		})

		err := opt.apply(cfg)
		require.Error(t, err)
		require.Contains(t, err.Error(), "iteration cap")
	})
}

func TestOption_NoError(t *testing.T) {
	cfg := &fitConfig{}

	opt := NoError(func(c *fitConfig) {
		c.Method = "lm"
	})

	require.NoError(t, opt.apply(cfg))
	require.Equal(t, "lm", cfg.Method)
}

func TestOption_Apply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		cfg := &fitConfig{}

		err := Apply(cfg,
			NoError(func(c *fitConfig) { c.Tolerance = 1e-8 }),
			New(func(c *fitConfig) error { return c.setMaxIter(300) }),
		)
		require.NoError(t, err)
		require.Equal(t, 1e-8, cfg.Tolerance)
		require.Equal(t, 300, cfg.MaxIter)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &fitConfig{}

		err := Apply(cfg,
			New(func(c *fitConfig) error { return c.setMaxIter(-1) }),
			NoError(func(c *fitConfig) { c.Method = "never-reached" }),
		)
		require.Error(t, err)
		require.Empty(t, cfg.Method)
	})

	t.Run("no options is a no-op", func(t *testing.T) {
		cfg := &fitConfig{}
		require.NoError(t, Apply(cfg))
	})
}
