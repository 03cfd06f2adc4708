package aggregate

import "math"

// Collector folds per-tree results of type R into an intermediate value A and
// turns the final A into S.
//
// Accumulate and Combine may modify and return their first argument; a forest
// only ever passes values it obtained from Empty, Accumulate or Combine. They
// must not retain or modify r.
type Collector[R, A, S any] interface {
	Empty() A
	Accumulate(acc A, r R) A
	Combine(a, b A) A
	Finish(acc A) S
}

// Funcs adapts four plain functions to a Collector.
type Funcs[R, A, S any] struct {
	EmptyFn      func() A
	AccumulateFn func(A, R) A
	CombineFn    func(A, A) A
	FinishFn     func(A) S
}

var _ Collector[float64, float64, float64] = Funcs[float64, float64, float64]{}

func (f Funcs[R, A, S]) Empty() A                { return f.EmptyFn() }
func (f Funcs[R, A, S]) Accumulate(acc A, r R) A { return f.AccumulateFn(acc, r) }
func (f Funcs[R, A, S]) Combine(a, b A) A        { return f.CombineFn(a, b) }
func (f Funcs[R, A, S]) Finish(acc A) S          { return f.FinishFn(acc) }

// MeanState is the running state of Mean.
type MeanState struct {
	Sum   float64
	Count int
}

type mean struct{}

// Mean averages scalar per-tree results. An empty forest averages to 0.
func Mean() Collector[float64, MeanState, float64] { return mean{} }

func (mean) Empty() MeanState { return MeanState{} }

func (mean) Accumulate(acc MeanState, r float64) MeanState {
	acc.Sum += r
	acc.Count++
	return acc
}

func (mean) Combine(a, b MeanState) MeanState {
	return MeanState{Sum: a.Sum + b.Sum, Count: a.Count + b.Count}
}

func (mean) Finish(acc MeanState) float64 {
	if acc.Count == 0 {
		return 0
	}
	return acc.Sum / float64(acc.Count)
}

type maximum struct{}

// Max keeps the largest scalar per-tree result. An empty forest yields -Inf.
func Max() Collector[float64, float64, float64] { return maximum{} }

func (maximum) Empty() float64                    { return math.Inf(-1) }
func (maximum) Accumulate(acc, r float64) float64 { return math.Max(acc, r) }
func (maximum) Combine(a, b float64) float64      { return math.Max(a, b) }
func (maximum) Finish(acc float64) float64        { return acc }

// VectorState is the running state of VectorMean.
type VectorState struct {
	Sum   []float64
	Count int
}

type vectorMean struct {
	dims int
}

// VectorMean averages vector-valued per-tree results element-wise, as used
// for attribution and imputation. Results shorter than dims contribute to
// their leading coordinates only; extra coordinates are ignored. An empty
// forest yields a zero vector of length dims.
func VectorMean(dims int) Collector[[]float64, VectorState, []float64] {
	return vectorMean{dims: dims}
}

func (v vectorMean) Empty() VectorState {
	return VectorState{Sum: make([]float64, v.dims)}
}

func (v vectorMean) Accumulate(acc VectorState, r []float64) VectorState {
	for i := 0; i < len(acc.Sum) && i < len(r); i++ {
		acc.Sum[i] += r[i]
	}
	acc.Count++
	return acc
}

func (v vectorMean) Combine(a, b VectorState) VectorState {
	for i := 0; i < len(a.Sum) && i < len(b.Sum); i++ {
		a.Sum[i] += b.Sum[i]
	}
	a.Count += b.Count
	return a
}

func (v vectorMean) Finish(acc VectorState) []float64 {
	out := make([]float64, len(acc.Sum))
	if acc.Count == 0 {
		return out
	}
	for i, s := range acc.Sum {
		out[i] = s / float64(acc.Count)
	}
	return out
}
