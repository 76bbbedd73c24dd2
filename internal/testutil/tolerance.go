package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t unless got and want have the same
// length and agree element-wise within eps (absolute tolerance). On
// failure it reports the worst-diverging index.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	worst := -1
	worstDiff := 0.0
	for i := range got {
		if d := math.Abs(got[i] - want[i]); d > worstDiff {
			worst = i
			worstDiff = d
		}
	}
	if worstDiff > eps {
		t.Fatalf("series diverge at index %d: got %v, want %v (|diff| %v > eps %v)",
			worst, got[worst], want[worst], worstDiff, eps)
	}
}

// RequireFinite fails t if data contains a NaN or Inf sample.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("non-finite sample %v at index %d", v, i)
		}
	}
}
