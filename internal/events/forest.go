// Package events defines the payloads a forest publishes on the event bus.
package events

import "time"

// UpdateStart is emitted before a point is fanned out to the trees.
type UpdateStart struct {
	Trees    int
	Parallel bool
}

// UpdateFinish is emitted after an update returns, successfully or not.
type UpdateFinish struct {
	Trees int
	// TotalUpdates is the coordinator's counter after the call.
	TotalUpdates int64
	Err          error
	Duration     time.Duration
}

// Traversal variant names carried by TraversalStart and TraversalFinish.
const (
	VariantFold         = "fold"
	VariantCollect      = "collect"
	VariantConverge     = "converge"
	VariantFoldMulti    = "fold_multi"
	VariantCollectMulti = "collect_multi"
)

// TraversalStart is emitted before the first tree of a traversal is visited.
type TraversalStart struct {
	Variant string
	Trees   int
	Workers int
}

// TraversalFinish is emitted when a traversal returns.
type TraversalFinish struct {
	Variant string
	Trees   int
	// Visited is the number of trees whose visitor produced a result. It is
	// below Trees when a converging traversal stopped early or an error
	// aborted the call.
	Visited  int
	Err      error
	Duration time.Duration
}
