package forest

import "runtime"

// Options configures a Forest.
//
// Defaults:
//   - Dimensions:     0 (point length is not checked)
//   - Parallelism:    runtime.GOMAXPROCS(0)
//   - ParallelUpdate: false
//
// Parallelism bounds the workers used by Collect and, when ParallelUpdate is
// set, by Update. ParallelUpdate must only be enabled when every tree's
// Update is safe to run concurrently with its siblings' for the same token.
type Options struct {
	Dimensions     int
	Parallelism    int
	ParallelUpdate bool
}

// Option mutates Options.
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{Parallelism: runtime.GOMAXPROCS(0)}
}

func WithDimensions(n int) Option      { return func(o *Options) { o.Dimensions = n } }
func WithParallelism(n int) Option     { return func(o *Options) { o.Parallelism = n } }
func WithParallelUpdate(b bool) Option { return func(o *Options) { o.ParallelUpdate = b } }
