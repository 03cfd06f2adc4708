package forest

import (
	"sync"
	"sync/atomic"
)

// MockNode is a node of a MockTree path. Value is what ValueVisitor reads at
// the leaf.
type MockNode struct {
	Leaf  bool
	M     int
	Value float64
}

func (n MockNode) IsLeaf() bool { return n.Leaf }
func (n MockNode) Mass() int    { return n.M }

// MockUpdater decides a MockTree's outcome for a token.
type MockUpdater[P any] func(token P) (P, error)

// MockTree implements Tree with fixed traversal paths and a pluggable update.
// Paths[0] is the path followed by Traverse; TraverseMulti additionally
// explores every further path whose first node triggers the visitor.
type MockTree[P any] struct {
	Paths       [][]MockNode
	UpdateFn    MockUpdater[P]
	TraverseErr error

	mu         sync.Mutex
	tokens     []P
	traversals atomic.Int64
}

var _ Tree[int] = (*MockTree[int])(nil)

// NewMockTree returns a tree whose single path is one leaf holding value.
// Update echoes the token.
func NewMockTree[P any](value float64) *MockTree[P] {
	return &MockTree[P]{
		Paths:    [][]MockNode{{{Leaf: true, M: 1, Value: value}}},
		UpdateFn: func(token P) (P, error) { return token, nil },
	}
}

func (t *MockTree[P]) Update(token P) (P, error) {
	t.mu.Lock()
	t.tokens = append(t.tokens, token)
	t.mu.Unlock()
	return t.UpdateFn(token)
}

func (t *MockTree[P]) Traverse(point []float64, v NodeVisitor) error {
	t.traversals.Add(1)
	if t.TraverseErr != nil {
		return t.TraverseErr
	}
	if len(t.Paths) > 0 {
		walk(v, t.Paths[0])
	}
	return nil
}

func (t *MockTree[P]) TraverseMulti(point []float64, v MultiNodeVisitor) error {
	t.traversals.Add(1)
	if t.TraverseErr != nil {
		return t.TraverseErr
	}
	if len(t.Paths) == 0 {
		return nil
	}
	walk(v, t.Paths[0])
	for _, path := range t.Paths[1:] {
		if len(path) == 0 || !v.Trigger(path[0]) {
			continue
		}
		branch := v.Copy()
		walk(branch, path)
		v.Combine(branch)
	}
	return nil
}

func walk(v NodeVisitor, path []MockNode) {
	for depth, n := range path {
		if n.Leaf {
			v.AcceptLeaf(n, depth)
			return
		}
		v.Accept(n, depth)
	}
}

func (t *MockTree[P]) Mass() int {
	if len(t.Paths) == 0 || len(t.Paths[0]) == 0 {
		return 0
	}
	return t.Paths[0][0].M
}

// Tokens returns the tokens passed to Update, in call order.
func (t *MockTree[P]) Tokens() []P {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]P(nil), t.tokens...)
}

// Traversals counts Traverse and TraverseMulti calls.
func (t *MockTree[P]) Traversals() int { return int(t.traversals.Load()) }

// MockCoordinator implements Coordinator recording every call. Tokens are
// produced by TokenFn.
type MockCoordinator[P any] struct {
	TokenFn     func(point []float64) (P, error)
	CompleteErr error

	mu       sync.Mutex
	points   [][]float64
	outcomes [][]P
	total    atomic.Int64
}

var _ Coordinator[int] = (*MockCoordinator[int])(nil)

func NewMockCoordinator[P any](tokenFn func(point []float64) (P, error)) *MockCoordinator[P] {
	return &MockCoordinator[P]{TokenFn: tokenFn}
}

func (c *MockCoordinator[P]) InitUpdate(point []float64) (P, error) {
	c.mu.Lock()
	c.points = append(c.points, point)
	c.mu.Unlock()
	return c.TokenFn(point)
}

// CompleteUpdate records outcomes and counts the update unless CompleteErr
// is set.
func (c *MockCoordinator[P]) CompleteUpdate(outcomes []P) error {
	c.mu.Lock()
	c.outcomes = append(c.outcomes, outcomes)
	c.mu.Unlock()
	if c.CompleteErr != nil {
		return c.CompleteErr
	}
	c.total.Add(1)
	return nil
}

func (c *MockCoordinator[P]) TotalUpdates() int64 { return c.total.Load() }

// Points returns the points given to InitUpdate.
func (c *MockCoordinator[P]) Points() [][]float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]float64(nil), c.points...)
}

// Outcomes returns the outcome slices given to CompleteUpdate.
func (c *MockCoordinator[P]) Outcomes() [][]P {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]P(nil), c.outcomes...)
}

// ValueVisitor reports the Value of the leaf it reaches.
type ValueVisitor struct {
	value float64
}

func (v *ValueVisitor) Accept(Node, int) {}

func (v *ValueVisitor) AcceptLeaf(n Node, _ int) {
	if mn, ok := n.(MockNode); ok {
		v.value = mn.Value
	}
}

func (v *ValueVisitor) Result() float64 { return v.value }

// NewValueVisitor is a VisitorFactory for ValueVisitor.
func NewValueVisitor(Traversable) (Visitor[float64], error) { return &ValueVisitor{}, nil }

// LeafSumVisitor is a multi-visitor summing the Values of all leaves it
// reaches. It triggers on every node whose Mass is at least Threshold.
type LeafSumVisitor struct {
	Threshold int
	sum       float64
}

func (v *LeafSumVisitor) Accept(Node, int) {}

func (v *LeafSumVisitor) AcceptLeaf(n Node, _ int) {
	if mn, ok := n.(MockNode); ok {
		v.sum += mn.Value
	}
}

func (v *LeafSumVisitor) Trigger(n Node) bool { return n.Mass() >= v.Threshold }

func (v *LeafSumVisitor) Copy() MultiNodeVisitor { return &LeafSumVisitor{Threshold: v.Threshold} }

func (v *LeafSumVisitor) Combine(other MultiNodeVisitor) {
	if o, ok := other.(*LeafSumVisitor); ok {
		v.sum += o.sum
	}
}

func (v *LeafSumVisitor) Result() float64 { return v.sum }

// CountingFactory wraps a VisitorFactory and counts its invocations.
type CountingFactory[R any] struct {
	Factory VisitorFactory[R]
	calls   atomic.Int64
}

func (c *CountingFactory[R]) New(t Traversable) (Visitor[R], error) {
	c.calls.Add(1)
	return c.Factory(t)
}

func (c *CountingFactory[R]) Calls() int { return int(c.calls.Load()) }
