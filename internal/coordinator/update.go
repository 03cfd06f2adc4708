// Package coordinator provides update coordinators for a forest: the
// component that derives one token per incoming point before the trees see
// it, and reconciles global state once every tree has answered.
package coordinator

// Update is both the token handed to every tree and the outcome each tree
// returns. Trees must treat Point as read-only.
type Update struct {
	// Seq is the 1-based sequence number of the point in the stream.
	Seq int64
	// Point is the canonicalized point.
	Point []float64

	// Accepted is set on an outcome when the tree's sampler kept the point.
	Accepted bool
	// Evicted is the sequence number of the point the tree dropped to make
	// room, valid only when HasEvicted is set.
	Evicted    int64
	HasEvicted bool
}

// Accept returns an outcome recording that the tree kept u.
func (u *Update) Accept() *Update {
	return &Update{Seq: u.Seq, Point: u.Point, Accepted: true}
}

// AcceptEvicting returns an outcome recording that the tree kept u and
// dropped the point with sequence number evicted.
func (u *Update) AcceptEvicting(evicted int64) *Update {
	return &Update{Seq: u.Seq, Point: u.Point, Accepted: true, Evicted: evicted, HasEvicted: true}
}

// Decline returns an outcome recording that the tree ignored u.
func (u *Update) Decline() *Update {
	return &Update{Seq: u.Seq, Point: u.Point}
}
