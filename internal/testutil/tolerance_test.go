package testutil

import (
	"math"
	"testing"
)

func TestMaxAbsDiff(t *testing.T) {
	d, err := MaxAbsDiff([]float64{1, 2, 3}, []float64{1, 2.5, 2})
	if err != nil {
		t.Fatal(err)
	}
	if d != 1 {
		t.Fatalf("MaxAbsDiff = %v, want 1", d)
	}
	if _, err := MaxAbsDiff([]float64{1}, nil); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestRequireHelpersAcceptMatches(t *testing.T) {
	RequireSliceNearlyEqual(t, []float64{1, math.NaN()}, []float64{1 + 1e-13, math.NaN()}, 1e-12)
	RequireComplexNearlyEqual(t, []complex128{1i, 2}, []complex128{1i, 2 + 1e-13i}, 1e-12)
	RequireFinite(t, []float64{0, -1, 1e300})
	RequireAllNaN(t, []float64{math.NaN(), math.NaN()})
}
