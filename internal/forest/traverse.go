package forest

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	aggregate "github.com/hanpama/rcforest/internal/aggregate"
	callid "github.com/hanpama/rcforest/internal/callid"
	eventbus "github.com/hanpama/rcforest/internal/eventbus"
	events "github.com/hanpama/rcforest/internal/events"
	point "github.com/hanpama/rcforest/internal/point"
)

// visitFunc produces the result of tree i for one traversal.
type visitFunc[R any] func(i int) (R, error)

// Fold visits the trees in order with a visitor from factory, combines the
// per-tree results left to right with combine, starting from the first
// tree's result, and returns finish of the total. An empty forest yields
// finish of the zero R.
func Fold[P, R, S any](ctx context.Context, f *Forest[P], p []float64, factory VisitorFactory[R], combine func(R, R) R, finish func(R) S) (S, error) {
	var zero S
	if factory == nil || combine == nil || finish == nil {
		return zero, fmt.Errorf("%w: fold needs factory, combine and finish", ErrInvalidArgument)
	}
	q, err := f.prepare(p)
	if err != nil {
		return zero, err
	}
	return run(ctx, f, events.VariantFold, 1, func(visited *atomic.Int64) (S, error) {
		return fold(len(f.trees), singleVisit(f, q, factory, visited), combine, finish)
	})
}

// FoldMulti is Fold with multi-visitors, letting each tree explore several
// paths before it reports its result.
func FoldMulti[P, R, S any](ctx context.Context, f *Forest[P], p []float64, factory MultiVisitorFactory[R], combine func(R, R) R, finish func(R) S) (S, error) {
	var zero S
	if factory == nil || combine == nil || finish == nil {
		return zero, fmt.Errorf("%w: fold needs factory, combine and finish", ErrInvalidArgument)
	}
	q, err := f.prepare(p)
	if err != nil {
		return zero, err
	}
	return run(ctx, f, events.VariantFoldMulti, 1, func(visited *atomic.Int64) (S, error) {
		return fold(len(f.trees), multiVisit(f, q, factory, visited), combine, finish)
	})
}

// Collect visits every tree with a visitor from factory and reduces the
// results with c. Trees are visited concurrently, bounded by the forest's
// parallelism, so c's Combine must be associative.
func Collect[P, R, A, S any](ctx context.Context, f *Forest[P], p []float64, factory VisitorFactory[R], c aggregate.Collector[R, A, S]) (S, error) {
	var zero S
	if factory == nil || c == nil {
		return zero, fmt.Errorf("%w: collect needs factory and collector", ErrInvalidArgument)
	}
	q, err := f.prepare(p)
	if err != nil {
		return zero, err
	}
	workers := f.workers()
	return run(ctx, f, events.VariantCollect, workers, func(visited *atomic.Int64) (S, error) {
		return collect(ctx, len(f.trees), workers, singleVisit(f, q, factory, visited), c)
	})
}

// CollectMulti is Collect with multi-visitors.
func CollectMulti[P, R, A, S any](ctx context.Context, f *Forest[P], p []float64, factory MultiVisitorFactory[R], c aggregate.Collector[R, A, S]) (S, error) {
	var zero S
	if factory == nil || c == nil {
		return zero, fmt.Errorf("%w: collect needs factory and collector", ErrInvalidArgument)
	}
	q, err := f.prepare(p)
	if err != nil {
		return zero, err
	}
	workers := f.workers()
	return run(ctx, f, events.VariantCollectMulti, workers, func(visited *atomic.Int64) (S, error) {
		return collect(ctx, len(f.trees), workers, multiVisit(f, q, factory, visited), c)
	})
}

// Converge visits the trees in order, feeding each result to acc, and stops
// as soon as acc reports convergence. The answer is finish(acc.Value()); it
// depends only on the trees visited, which for a fixed forest state are
// always the same ones.
func Converge[P, R, S any](ctx context.Context, f *Forest[P], p []float64, factory VisitorFactory[R], acc aggregate.ConvergingAccumulator[R], finish func(R) S) (S, error) {
	var zero S
	if factory == nil || acc == nil || finish == nil {
		return zero, fmt.Errorf("%w: converge needs factory, accumulator and finish", ErrInvalidArgument)
	}
	q, err := f.prepare(p)
	if err != nil {
		return zero, err
	}
	return run(ctx, f, events.VariantConverge, 1, func(visited *atomic.Int64) (S, error) {
		visit := singleVisit(f, q, factory, visited)
		for i := range f.trees {
			r, err := visit(i)
			if err != nil {
				return zero, err
			}
			acc.Accept(r)
			if acc.IsConverged() {
				break
			}
		}
		return finish(acc.Value()), nil
	})
}

func (f *Forest[P]) prepare(p []float64) ([]float64, error) {
	if err := point.CheckDimensions(p, f.opts.Dimensions); err != nil {
		return nil, err
	}
	return point.Canonicalize(p), nil
}

func (f *Forest[P]) workers() int {
	return max(1, min(f.opts.Parallelism, len(f.trees)))
}

// run wraps one traversal with call id and start/finish events.
func run[P, S any](ctx context.Context, f *Forest[P], variant string, workers int, body func(visited *atomic.Int64) (S, error)) (S, error) {
	ctx, _ = callid.NewContext(ctx)
	start := time.Now()
	eventbus.Publish(ctx, events.TraversalStart{Variant: variant, Trees: len(f.trees), Workers: workers})

	var visited atomic.Int64
	s, err := body(&visited)
	if err != nil {
		var zero S
		s = zero
	}

	eventbus.Publish(ctx, events.TraversalFinish{
		Variant:  variant,
		Trees:    len(f.trees),
		Visited:  int(visited.Load()),
		Err:      err,
		Duration: time.Since(start),
	})
	return s, err
}

func singleVisit[P, R any](f *Forest[P], q []float64, factory VisitorFactory[R], visited *atomic.Int64) visitFunc[R] {
	return func(i int) (R, error) {
		var zero R
		t := f.trees[i]
		v, err := factory(t)
		if err != nil {
			return zero, fmt.Errorf("%w: tree %d: visitor factory: %w", ErrTraversal, i, err)
		}
		if v == nil {
			return zero, fmt.Errorf("%w: tree %d: visitor factory returned nil", ErrTraversal, i)
		}
		if err := t.Traverse(q, v); err != nil {
			return zero, fmt.Errorf("%w: tree %d: %w", ErrTraversal, i, err)
		}
		visited.Add(1)
		return v.Result(), nil
	}
}

func multiVisit[P, R any](f *Forest[P], q []float64, factory MultiVisitorFactory[R], visited *atomic.Int64) visitFunc[R] {
	return func(i int) (R, error) {
		var zero R
		t := f.trees[i]
		v, err := factory(t)
		if err != nil {
			return zero, fmt.Errorf("%w: tree %d: visitor factory: %w", ErrTraversal, i, err)
		}
		if v == nil {
			return zero, fmt.Errorf("%w: tree %d: visitor factory returned nil", ErrTraversal, i)
		}
		if err := t.TraverseMulti(q, v); err != nil {
			return zero, fmt.Errorf("%w: tree %d: %w", ErrTraversal, i, err)
		}
		visited.Add(1)
		return v.Result(), nil
	}
}

func fold[R, S any](n int, visit visitFunc[R], combine func(R, R) R, finish func(R) S) (S, error) {
	var zero S
	var acc R
	for i := 0; i < n; i++ {
		r, err := visit(i)
		if err != nil {
			return zero, err
		}
		if i == 0 {
			acc = r
		} else {
			acc = combine(acc, r)
		}
	}
	return finish(acc), nil
}

// collect folds contiguous chunks of trees on separate workers, then merges
// the partial values in chunk order.
func collect[R, A, S any](ctx context.Context, n, workers int, visit visitFunc[R], c aggregate.Collector[R, A, S]) (S, error) {
	var zero S
	if workers <= 1 || n <= 1 {
		acc := c.Empty()
		for i := 0; i < n; i++ {
			r, err := visit(i)
			if err != nil {
				return zero, err
			}
			acc = c.Accumulate(acc, r)
		}
		return c.Finish(acc), nil
	}

	// gctx is cancelled when a sibling chunk fails, never by the caller.
	partials := make([]A, workers)
	g, gctx := errgroup.WithContext(context.WithoutCancel(ctx))
	for w := 0; w < workers; w++ {
		lo, hi := w*n/workers, (w+1)*n/workers
		g.Go(func() error {
			acc := c.Empty()
			for i := lo; i < hi; i++ {
				if gctx.Err() != nil {
					return nil
				}
				r, err := visit(i)
				if err != nil {
					return err
				}
				acc = c.Accumulate(acc, r)
			}
			partials[w] = acc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return zero, err
	}

	acc := partials[0]
	for _, p := range partials[1:] {
		acc = c.Combine(acc, p)
	}
	return c.Finish(acc), nil
}
