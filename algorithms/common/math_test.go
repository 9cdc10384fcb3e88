package common

import (
	"math"
	"testing"
)

func TestMedian(t *testing.T) {
	if got := Median([]float64{3, 1, 2}); got != 2 {
		t.Fatalf("odd median: got %v, want 2", got)
	}
	if got := Median([]float64{4, 1, 3, 2}); got != 2.5 {
		t.Fatalf("even median: got %v, want 2.5", got)
	}
	if got := Median(nil); got != 0 {
		t.Fatalf("empty median: got %v, want 0", got)
	}

	// Input must not be reordered
	data := []float64{3, 1, 2}
	Median(data)
	if data[0] != 3 || data[1] != 1 || data[2] != 2 {
		t.Fatalf("median mutated its input: %v", data)
	}
}

func TestRMS(t *testing.T) {
	if got := RMS([]float64{3, -4}); math.Abs(got-math.Sqrt(12.5)) > 1e-12 {
		t.Fatalf("got %v", got)
	}
	if got := RMS(nil); got != 0 {
		t.Fatalf("empty RMS: got %v, want 0", got)
	}
}

func TestStandardDeviation(t *testing.T) {
	data := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	if got := StandardDeviation(data); math.Abs(got-2.138089935) > 1e-6 {
		t.Fatalf("sample stddev: got %v", got)
	}
	if got := StandardDeviation([]float64{1}); got != 0 {
		t.Fatalf("single-element stddev: got %v, want 0", got)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(1.5, 0, 1); got != 1 {
		t.Fatalf("got %v", got)
	}
	if got := Clamp(-0.5, 0, 1); got != 0 {
		t.Fatalf("got %v", got)
	}
	if got := Clamp(0.5, 0, 1); got != 0.5 {
		t.Fatalf("got %v", got)
	}
}
