// Package callid attaches an identifier to the context of one forest call so
// that start and finish events of the same call can be paired.
package callid

import (
	"context"
	"sync/atomic"
)

type key struct{}

var last atomic.Uint64

// NewContext returns a copy of parent carrying a fresh call ID, and the ID.
// IDs are unique within the process.
func NewContext(parent context.Context) (context.Context, uint64) {
	id := last.Add(1)
	return context.WithValue(parent, key{}, id), id
}

// FromContext extracts the call ID from ctx.
func FromContext(ctx context.Context) (uint64, bool) {
	id, ok := ctx.Value(key{}).(uint64)
	return id, ok
}
