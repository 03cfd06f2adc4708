package coordinator

import (
	"sync/atomic"

	"github.com/hanpama/rcforest/internal/forest"
)

// Sequencer numbers points and counts updates. It keeps no point data.
type Sequencer struct {
	total    atomic.Int64
	accepted atomic.Int64
}

var _ forest.Coordinator[*Update] = (*Sequencer)(nil)

func NewSequencer() *Sequencer { return &Sequencer{} }

// InitUpdate wraps point in a token numbered after the current total. It
// does not change any counter.
func (s *Sequencer) InitUpdate(point []float64) (*Update, error) {
	return &Update{Seq: s.total.Load() + 1, Point: point}, nil
}

// CompleteUpdate counts one update and the number of trees that kept it.
// Nil outcomes are treated as declines.
func (s *Sequencer) CompleteUpdate(outcomes []*Update) error {
	var n int64
	for _, o := range outcomes {
		if o != nil && o.Accepted {
			n++
		}
	}
	s.accepted.Add(n)
	s.total.Add(1)
	return nil
}

func (s *Sequencer) TotalUpdates() int64 { return s.total.Load() }

// TotalAccepted is the number of (point, tree) pairs in which the tree kept
// the point, summed over all updates.
func (s *Sequencer) TotalAccepted() int64 { return s.accepted.Load() }
