package forest

import "testing"

// newMockForest builds a forest of MockTrees, one leaf value per tree, with a
// coordinator numbering updates from 1.
func newMockForest(t *testing.T, values []float64, opts ...Option) (*Forest[int], []*MockTree[int], *MockCoordinator[int]) {
	t.Helper()
	coord := NewMockCoordinator(func([]float64) (int, error) { return 0, nil })
	coord.TokenFn = func([]float64) (int, error) { return int(coord.TotalUpdates()) + 1, nil }

	mocks := make([]*MockTree[int], len(values))
	trees := make([]Tree[int], len(values))
	for i, v := range values {
		mocks[i] = NewMockTree[int](v)
		trees[i] = mocks[i]
	}
	f, err := New[int](coord, trees, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return f, mocks, coord
}
