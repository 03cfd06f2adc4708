// Package aggregate defines the strategies a forest uses to combine per-tree
// traversal results into one answer.
//
// Two contracts live here:
//
//   - Collector: an accumulate/combine/finish triple with an explicit empty
//     value. A forest may split its trees into chunks, fold each chunk from
//     Empty with Accumulate, merge the partial values with Combine and call
//     Finish once. Combine must be associative and must not depend on which
//     chunk a tree landed in; this is not checked at runtime.
//   - ConvergingAccumulator: a sequential fold that can report convergence
//     after any tree, letting the forest skip the remaining trees.
//
// The plain pairwise fold (binary operator plus finisher) needs no type of
// its own; it is expressed as two function values at the call site.
package aggregate
