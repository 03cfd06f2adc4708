package point

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCanonicalize_NegativeZero(t *testing.T) {
	in := []float64{1.0, math.Copysign(0, -1), 3.0}
	got := Canonicalize(in)

	if diff := cmp.Diff([]float64{1.0, 0.0, 3.0}, got); diff != "" {
		t.Fatalf("Canonicalize mismatch (-want +got):\n%s", diff)
	}
	if math.Signbit(got[1]) {
		t.Fatalf("expected positive zero at index 1")
	}
	if !math.Signbit(in[1]) {
		t.Fatalf("input was mutated: sign bit cleared at index 1")
	}
}

func TestCanonicalize_LeavesOtherValues(t *testing.T) {
	in := []float64{-1.5, 0, 2.25, math.Inf(-1), math.SmallestNonzeroFloat64, -math.SmallestNonzeroFloat64}
	got := Canonicalize(in)
	if len(got) != len(in) {
		t.Fatalf("length changed: got %d want %d", len(got), len(in))
	}
	for i := range in {
		if math.Float64bits(got[i]) != math.Float64bits(in[i]) {
			t.Fatalf("index %d changed: got %v want %v", i, got[i], in[i])
		}
	}
}

func TestCanonicalize_ReturnsCopy(t *testing.T) {
	in := []float64{4, 5}
	got := Canonicalize(in)
	got[0] = 99
	if in[0] != 4 {
		t.Fatalf("output aliases input")
	}
}

func TestCanonicalize_Empty(t *testing.T) {
	got := Canonicalize(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestCheckDimensions(t *testing.T) {
	if err := CheckDimensions([]float64{1, 2, 3}, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := CheckDimensions([]float64{1, 2}, 0); err != nil {
		t.Fatalf("dims=0 should disable the check, got %v", err)
	}
	err := CheckDimensions([]float64{1, 2}, 3)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}
