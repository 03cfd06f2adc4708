package aggregate

import "math"

// ConvergingAccumulator is a sequential fold over per-tree results that can
// decide, after each accepted result, that no further trees need to be
// visited. IsConverged must only read state.
type ConvergingAccumulator[R any] interface {
	Accept(r R)
	IsConverged() bool
	Accepted() int
	Value() R
}

// Counting sums scalar results and converges after a fixed number of them.
type Counting struct {
	limit    int
	accepted int
	sum      float64
}

var _ ConvergingAccumulator[float64] = (*Counting)(nil)

// NewCounting returns an accumulator that converges once limit values were
// accepted. A limit of zero or less never converges.
func NewCounting(limit int) *Counting { return &Counting{limit: limit} }

func (c *Counting) Accept(r float64) {
	c.sum += r
	c.accepted++
}

func (c *Counting) IsConverged() bool { return c.limit > 0 && c.accepted >= c.limit }
func (c *Counting) Accepted() int     { return c.accepted }
func (c *Counting) Value() float64    { return c.sum }

// StdErr tracks the running mean of scalar results with Welford's method and
// converges when the standard error of that mean drops to precision or
// below. It never converges before minAccepted values and always converges
// at maxAccepted values (if maxAccepted > 0).
type StdErr struct {
	precision   float64
	minAccepted int
	maxAccepted int

	accepted int
	mean     float64
	m2       float64
}

var _ ConvergingAccumulator[float64] = (*StdErr)(nil)

// NewStdErr returns a StdErr accumulator. minAccepted is raised to 2 since a
// single value has no spread.
func NewStdErr(precision float64, minAccepted, maxAccepted int) *StdErr {
	if minAccepted < 2 {
		minAccepted = 2
	}
	return &StdErr{precision: precision, minAccepted: minAccepted, maxAccepted: maxAccepted}
}

func (s *StdErr) Accept(r float64) {
	s.accepted++
	delta := r - s.mean
	s.mean += delta / float64(s.accepted)
	s.m2 += delta * (r - s.mean)
}

func (s *StdErr) IsConverged() bool {
	if s.maxAccepted > 0 && s.accepted >= s.maxAccepted {
		return true
	}
	if s.accepted < s.minAccepted {
		return false
	}
	return s.StandardError() <= s.precision
}

// StandardError is the sample standard deviation divided by sqrt(n), or +Inf
// with fewer than two values.
func (s *StdErr) StandardError() float64 {
	if s.accepted < 2 {
		return math.Inf(1)
	}
	variance := s.m2 / float64(s.accepted-1)
	return math.Sqrt(variance / float64(s.accepted))
}

func (s *StdErr) Accepted() int { return s.accepted }

// Value returns the running mean.
func (s *StdErr) Value() float64 { return s.mean }
