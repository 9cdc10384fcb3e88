package pitch

import (
	"math"
	"testing"
)

func TestSmootherSeedsOnFirstAccept(t *testing.T) {
	s := NewSmoother(0.2, 0.5)

	out := s.Update(Estimate{Frequency: 200, Confidence: 0.9, Voiced: true})
	if !out.Voiced || out.Frequency != 200 {
		t.Fatalf("expected first accepted frequency verbatim, got %+v", out)
	}
}

func TestSmootherEMA(t *testing.T) {
	s := NewSmoother(0.2, 0.5)

	s.Update(Estimate{Frequency: 100, Confidence: 0.9, Voiced: true})
	out := s.Update(Estimate{Frequency: 200, Confidence: 0.9, Voiced: true})

	if math.Abs(out.Frequency-120.0) > 1e-9 {
		t.Fatalf("expected 100 + 0.2*(200-100) = 120, got %v", out.Frequency)
	}
}

func TestSmootherHoldsOnRejectedTicks(t *testing.T) {
	s := NewSmoother(0.2, 0.5)

	s.Update(Estimate{Frequency: 150, Confidence: 0.9, Voiced: true})

	// Low confidence and unvoiced ticks must not move the value
	s.Update(Estimate{Frequency: 999, Confidence: 0.1, Voiced: true})
	s.Update(Estimate{})

	value, ok := s.Value()
	if !ok || value != 150 {
		t.Fatalf("expected smoothed value held at 150, got %v (ok=%v)", value, ok)
	}

	s.Reset()
	if _, ok := s.Value(); ok {
		t.Fatalf("expected no value after reset")
	}
}
