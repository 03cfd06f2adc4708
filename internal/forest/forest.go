package forest

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	callid "github.com/hanpama/rcforest/internal/callid"
	eventbus "github.com/hanpama/rcforest/internal/eventbus"
	events "github.com/hanpama/rcforest/internal/events"
	point "github.com/hanpama/rcforest/internal/point"
)

// Forest is the execution core of a tree ensemble. P is the token type shared
// by the coordinator and the trees.
type Forest[P any] struct {
	trees []Tree[P]
	coord Coordinator[P]
	opts  *Options
}

// New creates a forest over trees, which are visited in the given order. The
// slice is copied; trees may not be nil.
func New[P any](coord Coordinator[P], trees []Tree[P], opts ...Option) (*Forest[P], error) {
	if coord == nil {
		return nil, fmt.Errorf("%w: nil coordinator", ErrInvalidArgument)
	}
	for i, t := range trees {
		if t == nil {
			return nil, fmt.Errorf("%w: nil tree at index %d", ErrInvalidArgument, i)
		}
	}
	o := defaultOptions()
	for _, f := range opts {
		f(o)
	}
	if o.Parallelism < 1 {
		o.Parallelism = 1
	}
	return &Forest[P]{
		trees: append([]Tree[P](nil), trees...),
		coord: coord,
		opts:  o,
	}, nil
}

// Len returns the number of trees.
func (f *Forest[P]) Len() int { return len(f.trees) }

// Dimensions returns the configured point length, 0 if unchecked.
func (f *Forest[P]) Dimensions() int { return f.opts.Dimensions }

// Parallelism returns the worker bound used by concurrent fan-outs.
func (f *Forest[P]) Parallelism() int { return f.opts.Parallelism }

// TotalUpdates returns the coordinator's count of completed updates.
func (f *Forest[P]) TotalUpdates() int64 { return f.coord.TotalUpdates() }

// Update submits p to every tree. p is not modified.
func (f *Forest[P]) Update(ctx context.Context, p []float64) (err error) {
	if err := point.CheckDimensions(p, f.opts.Dimensions); err != nil {
		return err
	}

	ctx, _ = callid.NewContext(ctx)
	start := time.Now()
	eventbus.Publish(ctx, events.UpdateStart{Trees: len(f.trees), Parallel: f.opts.ParallelUpdate})
	defer func() {
		eventbus.Publish(ctx, events.UpdateFinish{
			Trees:        len(f.trees),
			TotalUpdates: f.coord.TotalUpdates(),
			Err:          err,
			Duration:     time.Since(start),
		})
	}()

	token, err := f.coord.InitUpdate(point.Canonicalize(p))
	if err != nil {
		return fmt.Errorf("%w: init update: %w", ErrCoordinator, err)
	}

	outcomes := make([]P, len(f.trees))
	if f.opts.ParallelUpdate && len(f.trees) > 1 {
		err = f.updateParallel(token, outcomes)
	} else {
		err = f.updateSequential(token, outcomes)
	}
	if err != nil {
		return err
	}

	if err := f.coord.CompleteUpdate(outcomes); err != nil {
		return fmt.Errorf("%w: complete update: %w", ErrCoordinator, err)
	}
	return nil
}

func (f *Forest[P]) updateSequential(token P, outcomes []P) error {
	for i, t := range f.trees {
		out, err := t.Update(token)
		if err != nil {
			return fmt.Errorf("%w: tree %d: %w", ErrTreeUpdate, i, err)
		}
		outcomes[i] = out
	}
	return nil
}

// updateParallel writes each outcome into its tree's slot so the slice keeps
// tree order regardless of completion order.
func (f *Forest[P]) updateParallel(token P, outcomes []P) error {
	var g errgroup.Group
	g.SetLimit(f.opts.Parallelism)
	for i, t := range f.trees {
		g.Go(func() error {
			out, err := t.Update(token)
			if err != nil {
				return fmt.Errorf("%w: tree %d: %w", ErrTreeUpdate, i, err)
			}
			outcomes[i] = out
			return nil
		})
	}
	return g.Wait()
}
