// Package forest drives an ensemble of independent space-partitioning trees:
// it fans every incoming point out to all trees for update, and fans query
// points out for read-only traversal whose per-tree results are combined into
// one forest-level answer.
//
// # Overview
//
// The package owns two things: an ordered, fixed collection of trees and an
// update Coordinator. Everything a tree does internally (cut selection,
// bounding boxes, sampling and eviction) and everything a visitor computes
// (anomaly score, density, imputation, attribution) lives behind the
// interfaces in contract.go.
//
// # Update
//
// Forest.Update performs, in order:
//  1. Validate dimensionality; invalid input fails before any tree is touched.
//  2. Canonicalize the point into a fresh copy (negative zero becomes +0).
//  3. Ask the coordinator for one token via InitUpdate.
//  4. Hand that same token to every tree. Outcomes are stored by tree index,
//     so the slice given to CompleteUpdate is in tree order even when trees
//     were updated concurrently (WithParallelUpdate).
//  5. Call CompleteUpdate once with the full outcome slice.
//
// A tree error aborts the call before CompleteUpdate; trees updated earlier
// keep their new state. There is no rollback across trees.
//
// # Traversal
//
// Go methods cannot declare type parameters, so traversals are package-level
// functions taking the forest as an argument:
//
//	Fold          visitor per tree, binary combine in tree order, finisher
//	Collect       visitor per tree, aggregate.Collector, concurrent
//	Converge      visitor per tree, aggregate.ConvergingAccumulator, early stop
//	FoldMulti     multi-visitor variant of Fold
//	CollectMulti  multi-visitor variant of Collect
//
// For every variant a fresh visitor is built for each (call, tree) pair by
// the caller's factory, and the point drives the tree's traversal to a leaf
// (Visitor) or to a set of leaves (MultiVisitor).
//
// Fold and Converge visit trees sequentially in collection order; their
// results are repeatable for a fixed forest state. Collect splits the trees
// into contiguous chunks, one per worker, folds each chunk from
// Collector.Empty and merges the partial values with Collector.Combine in
// chunk order. Combine must be associative; a collector that is not will
// produce results that depend on the parallelism setting.
//
// Empty forests are not an error: Fold returns finish(zero R), Collect
// returns Finish(Empty()) and Converge returns finish(acc.Value()).
//
// # Concurrency
//
// The forest holds no locks. Many traversals may run at once. Update must not
// run concurrently with another Update on the same forest; whether it may
// overlap a traversal is up to the Tree implementation.
//
// # Observability
//
// Update and every traversal publish start/finish events from package events
// through the process-wide eventbus, with a callid in the context so that
// subscribers can pair them.
package forest
