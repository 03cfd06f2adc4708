// Package point holds the helpers that prepare an input vector before it is
// handed to the trees of a forest.
package point

import (
	"errors"
	"fmt"
)

// ErrDimensionMismatch reports a point whose length differs from the
// dimensionality the forest was configured with.
var ErrDimensionMismatch = errors.New("point: dimension mismatch")

// Canonicalize returns a copy of p in which every coordinate equal to zero is
// stored as positive zero. Negative zero compares equal to zero but carries a
// different sign bit, which would otherwise leak into hashing and cut
// placement. p itself is never modified.
func Canonicalize(p []float64) []float64 {
	out := make([]float64, len(p))
	copy(out, p)
	for i, v := range out {
		if v == 0 {
			out[i] = 0
		}
	}
	return out
}

// CheckDimensions verifies that p has exactly dims coordinates. A dims value
// of zero or less disables the check.
func CheckDimensions(p []float64, dims int) error {
	if dims > 0 && len(p) != dims {
		return fmt.Errorf("%w: got %d coordinates, want %d", ErrDimensionMismatch, len(p), dims)
	}
	return nil
}
