package coordinator

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/hanpama/rcforest/internal/forest"
)

// ErrUnknownPoint reports an eviction of a sequence number the store does not
// hold.
var ErrUnknownPoint = errors.New("coordinator: unknown point")

type storedPoint struct {
	point []float64
	refs  int
}

// PointStore keeps one copy of every point that at least one tree sampled,
// reference counted by the number of trees holding it. Trees exchange
// sequence numbers; the store resolves them to coordinates.
type PointStore struct {
	total atomic.Int64

	mu     sync.RWMutex
	points map[int64]*storedPoint
}

var _ forest.Coordinator[*Update] = (*PointStore)(nil)

func NewPointStore() *PointStore {
	return &PointStore{points: make(map[int64]*storedPoint)}
}

// InitUpdate wraps point in a token numbered after the current total. The
// store is not touched until CompleteUpdate.
func (s *PointStore) InitUpdate(point []float64) (*Update, error) {
	return &Update{Seq: s.total.Load() + 1, Point: point}, nil
}

// CompleteUpdate stores the point if any tree kept it and releases one
// reference for every eviction. The update is counted even when an eviction
// names an unknown point; the first such error is returned after all
// outcomes were applied.
func (s *PointStore) CompleteUpdate(outcomes []*Update) error {
	defer s.total.Add(1)

	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	for _, o := range outcomes {
		if o == nil || !o.Accepted {
			continue
		}
		if sp, ok := s.points[o.Seq]; ok {
			sp.refs++
		} else {
			s.points[o.Seq] = &storedPoint{point: o.Point, refs: 1}
		}
	}
	for _, o := range outcomes {
		if o == nil || !o.HasEvicted {
			continue
		}
		if err := s.release(o.Evicted); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (s *PointStore) release(seq int64) error {
	sp, ok := s.points[seq]
	if !ok {
		return fmt.Errorf("%w: seq %d", ErrUnknownPoint, seq)
	}
	sp.refs--
	if sp.refs <= 0 {
		delete(s.points, seq)
	}
	return nil
}

func (s *PointStore) TotalUpdates() int64 { return s.total.Load() }

// Point returns the stored coordinates for seq. The slice must not be
// modified.
func (s *PointStore) Point(seq int64) ([]float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sp, ok := s.points[seq]
	if !ok {
		return nil, false
	}
	return sp.point, true
}

// Refs returns how many trees currently hold seq.
func (s *PointStore) Refs(seq int64) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sp, ok := s.points[seq]; ok {
		return sp.refs
	}
	return 0
}

// Size is the number of distinct points held.
func (s *PointStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.points)
}
