package forest_test

import (
	"context"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	aggregate "github.com/hanpama/rcforest/internal/aggregate"
	coordinator "github.com/hanpama/rcforest/internal/coordinator"
	forest "github.com/hanpama/rcforest/internal/forest"
)

func newSequencedForest(t *testing.T, scores []float64, opts ...forest.Option) (*forest.Forest[*coordinator.Update], []*forest.MockTree[*coordinator.Update], *coordinator.Sequencer) {
	t.Helper()
	seq := coordinator.NewSequencer()
	mocks := make([]*forest.MockTree[*coordinator.Update], len(scores))
	trees := make([]forest.Tree[*coordinator.Update], len(scores))
	for i, s := range scores {
		mocks[i] = forest.NewMockTree[*coordinator.Update](s)
		mocks[i].UpdateFn = func(u *coordinator.Update) (*coordinator.Update, error) { return u.Accept(), nil }
		trees[i] = mocks[i]
	}
	f, err := forest.New[*coordinator.Update](seq, trees, opts...)
	require.NoError(t, err)
	return f, mocks, seq
}

func TestEndToEnd_UpdateThreeTrees(t *testing.T) {
	f, trees, seq := newSequencedForest(t, []float64{0, 0, 0}, forest.WithDimensions(3))
	require.Equal(t, int64(0), f.TotalUpdates())

	require.NoError(t, f.Update(context.Background(), []float64{1.0, math.Copysign(0, -1), 3.0}))

	first := trees[0].Tokens()
	require.Len(t, first, 1)
	for i, tr := range trees {
		got := tr.Tokens()
		require.Len(t, got, 1, "tree %d", i)
		require.Same(t, first[0], got[0], "tree %d received a different token", i)
	}
	if diff := cmp.Diff([]float64{1, 0, 3}, first[0].Point); diff != "" {
		t.Fatalf("token point mismatch (-want +got):\n%s", diff)
	}
	require.False(t, math.Signbit(first[0].Point[1]))
	require.Equal(t, int64(1), first[0].Seq)

	require.Equal(t, int64(1), f.TotalUpdates())
	require.Equal(t, int64(3), seq.TotalAccepted())
}

func TestEndToEnd_ParallelUpdateWithPointStore(t *testing.T) {
	store := coordinator.NewPointStore()
	const n = 4
	mocks := make([]*forest.MockTree[*coordinator.Update], n)
	trees := make([]forest.Tree[*coordinator.Update], n)
	for i := range mocks {
		// even trees keep everything, odd trees keep nothing
		mocks[i] = forest.NewMockTree[*coordinator.Update](0)
		mocks[i].UpdateFn = func(u *coordinator.Update) (*coordinator.Update, error) {
			if i%2 == 0 {
				return u.Accept(), nil
			}
			return u.Decline(), nil
		}
		trees[i] = mocks[i]
	}
	f, err := forest.New[*coordinator.Update](store, trees, forest.WithParallelUpdate(true), forest.WithParallelism(n))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, f.Update(context.Background(), []float64{float64(i)}))
	}
	require.Equal(t, int64(5), f.TotalUpdates())
	require.Equal(t, 5, store.Size())
	require.Equal(t, 2, store.Refs(3))
}

func TestEndToEnd_FoldMaxScore(t *testing.T) {
	f, _, _ := newSequencedForest(t, []float64{0.2, 0.9, 0.5})
	got, err := forest.Fold(context.Background(), f, []float64{0}, forest.NewValueVisitor, math.Max,
		func(r float64) float64 { return r })
	require.NoError(t, err)
	require.Equal(t, 0.9, got)

	mean, err := forest.Collect(context.Background(), f, []float64{0}, forest.NewValueVisitor, aggregate.Mean())
	require.NoError(t, err)
	require.InDelta(t, 1.6/3, mean, 1e-12)
}
