package forest

// Node is the view of a tree node offered to visitors.
type Node interface {
	IsLeaf() bool
	// Mass is the number of sampled points below the node.
	Mass() int
}

// NodeVisitor is called by a tree while it walks from the root towards the
// leaf selected by the query point. Accept is called for internal nodes and
// AcceptLeaf for the leaf; depth is 0 at the root.
type NodeVisitor interface {
	Accept(n Node, depth int)
	AcceptLeaf(n Node, depth int)
}

// Visitor is a NodeVisitor that yields a per-tree result once the walk ends.
type Visitor[R any] interface {
	NodeVisitor
	Result() R
}

// MultiNodeVisitor may follow several paths in one tree. When Trigger returns
// true at a node the tree explores both children: it walks one branch with
// the visitor, the other with a Copy, and folds the copy back with Combine.
type MultiNodeVisitor interface {
	NodeVisitor
	Trigger(n Node) bool
	Copy() MultiNodeVisitor
	Combine(other MultiNodeVisitor)
}

// MultiVisitor is a MultiNodeVisitor that yields a per-tree result.
type MultiVisitor[R any] interface {
	MultiNodeVisitor
	Result() R
}

// Traversable is the read-only side of a tree.
type Traversable interface {
	Traverse(point []float64, v NodeVisitor) error
	TraverseMulti(point []float64, v MultiNodeVisitor) error
	Mass() int
}

// Tree is a member of the forest. Update receives the token produced by the
// coordinator and returns the tree's outcome; declining the point is a
// normal outcome, not an error.
type Tree[P any] interface {
	Traversable
	Update(token P) (P, error)
}

// Coordinator owns the forest-wide update state.
//
//   - InitUpdate is called once per point before any tree sees it and must
//     not change global state.
//   - CompleteUpdate is called once after every tree returned, with the
//     outcomes in tree order.
//   - TotalUpdates counts completed updates and must be safe to call
//     concurrently with the other methods.
type Coordinator[P any] interface {
	InitUpdate(point []float64) (P, error)
	CompleteUpdate(outcomes []P) error
	TotalUpdates() int64
}

// VisitorFactory builds the visitor for one tree of one traversal.
type VisitorFactory[R any] func(t Traversable) (Visitor[R], error)

// MultiVisitorFactory builds the multi-visitor for one tree of one traversal.
type MultiVisitorFactory[R any] func(t Traversable) (MultiVisitor[R], error)
