package aggregate

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func fold[R, A, S any](c Collector[R, A, S], rs ...R) S {
	acc := c.Empty()
	for _, r := range rs {
		acc = c.Accumulate(acc, r)
	}
	return c.Finish(acc)
}

func TestMean(t *testing.T) {
	require.Equal(t, 0.0, fold(Mean()))
	require.InDelta(t, 0.5, fold(Mean(), 0.2, 0.9, 0.4), 1e-12)

	c := Mean()
	a := c.Accumulate(c.Accumulate(c.Empty(), 1), 2)
	b := c.Accumulate(c.Empty(), 6)
	require.Equal(t, 3.0, c.Finish(c.Combine(a, b)))
}

func TestMax(t *testing.T) {
	require.True(t, math.IsInf(fold(Max()), -1))
	require.Equal(t, 0.9, fold(Max(), 0.2, 0.9, 0.5))
	c := Max()
	require.Equal(t, 4.0, c.Combine(4, -1))
}

func TestVectorMean(t *testing.T) {
	c := VectorMean(3)
	if diff := cmp.Diff([]float64{0, 0, 0}, fold(c)); diff != "" {
		t.Fatalf("empty mismatch (-want +got):\n%s", diff)
	}

	in := []float64{1, 2, 3}
	got := fold(c, in, []float64{3, 2, 1}, []float64{2})
	if diff := cmp.Diff([]float64{2, 4.0 / 3, 4.0 / 3}, got); diff != "" {
		t.Fatalf("mean mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{1, 2, 3}, in); diff != "" {
		t.Fatalf("input modified (-want +got):\n%s", diff)
	}

	left := c.Accumulate(c.Empty(), []float64{1, 1, 1})
	right := c.Accumulate(c.Accumulate(c.Empty(), []float64{2, 2, 2}), []float64{3, 3, 3})
	if diff := cmp.Diff([]float64{2, 2, 2}, c.Finish(c.Combine(left, right))); diff != "" {
		t.Fatalf("combine mismatch (-want +got):\n%s", diff)
	}
}

func TestFuncs(t *testing.T) {
	c := Funcs[int, []int, int]{
		EmptyFn:      func() []int { return nil },
		AccumulateFn: func(acc []int, r int) []int { return append(acc, r) },
		CombineFn:    func(a, b []int) []int { return append(a, b...) },
		FinishFn:     func(acc []int) int { return len(acc) },
	}
	require.Equal(t, 3, fold[int, []int, int](c, 7, 8, 9))
}
