package model

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/suvrajeet01/hyperspy/errs"
	"github.com/suvrajeet01/hyperspy/internal/options"
)

// MultiFit fits the model at every navigation position of its signal in
// row-major order and returns the populated result store.
//
// Per-position convergence failures are recorded in the store, never
// returned as an error; the run continues. Context cancellation is honored
// between positions: the partially populated store is returned together with
// the context's error, and every entry already present is valid.
//
// The default AlwaysReset policy restores the pre-call parameter values
// before each position, so the outcome is independent of traversal order.
// WithPolicy(ContinueFromPrevious) seeds each position with the last
// converged values instead. WithWorkers(n) fits positions concurrently on n
// goroutines; that requires AlwaysReset and enabled components implementing
// Cloneable, since each worker fits on its own parameter copies.
func (m *Model) MultiFit(ctx context.Context, opts ...FitOption) (*ResultStore, error) {
	cfg := defaultFitConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	if cfg.workers > 1 && cfg.policy != AlwaysReset {
		return nil, fmt.Errorf("%w: %d workers with %s policy, parallel fitting requires always-reset",
			errs.ErrNotConfigured, cfg.workers, cfg.policy)
	}

	mgr := m.sig.Axes()
	store, err := NewResultStore(mgr.NavigationShape(), m.ParameterLabels())
	if err != nil {
		return nil, err
	}

	if cfg.workers > 1 {
		err = m.multiFitParallel(ctx, cfg, store)
	} else {
		err = m.multiFitSequential(ctx, cfg, store)
	}

	m.results = store
	if store.FittedCount() > 0 {
		m.fitted = true
	}
	return store, err
}

func (m *Model) multiFitSequential(ctx context.Context, cfg *FitConfig, store *ResultStore) error {
	initial := m.FreeValues()
	seed := slices.Clone(initial)

	for pos := range m.sig.Axes().Indices() {
		if err := ctx.Err(); err != nil {
			return err
		}

		if cfg.policy == AlwaysReset {
			seed = initial
		}
		if err := m.SetFreeValues(seed); err != nil {
			return err
		}

		res, err := m.fitWithConfig(pos, cfg)
		if err != nil {
			return err
		}
		if err := store.Put(pos, res); err != nil {
			return err
		}
		if cfg.progress != nil {
			cfg.progress(pos, res)
		}
		if cfg.policy == ContinueFromPrevious && res.Converged {
			seed = res.Values
		}
	}
	return nil
}

// multiFitParallel shards the flat navigation range across workers. Each
// worker fits on a cloned model, so no parameter state is shared; the store
// writes land on disjoint positions and need no locking.
func (m *Model) multiFitParallel(ctx context.Context, cfg *FitConfig, store *ResultStore) error {
	mgr := m.sig.Axes()
	size := mgr.NavigationSize()
	workers := cfg.workers
	if workers > size {
		workers = size
	}
	initial := m.FreeValues()

	clones := make([]*Model, workers)
	for w := range clones {
		clone, err := m.clone()
		if err != nil {
			return err
		}
		clones[w] = clone
	}

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		clone := clones[w]
		first := w
		g.Go(func() error {
			for flat := first; flat < size; flat += workers {
				if err := gctx.Err(); err != nil {
					return err
				}
				pos, err := mgr.UnflattenIndex(flat)
				if err != nil {
					return err
				}
				if err := clone.SetFreeValues(initial); err != nil {
					return err
				}
				res, err := clone.fitWithConfig(pos, cfg)
				if err != nil {
					return err
				}
				if err := store.Put(pos, res); err != nil {
					return err
				}
				if cfg.progress != nil {
					cfg.progress(pos, res)
				}
			}
			return nil
		})
	}
	return g.Wait()
}
