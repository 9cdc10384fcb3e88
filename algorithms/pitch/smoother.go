package pitch

// Smoother maintains an exponential moving average over accepted frequency
// estimates. Rejected ticks (unvoiced or low confidence) leave the smoothed
// value untouched; forgetting it is the stability engine's call, via Reset.
type Smoother struct {
	alpha         float64
	minConfidence float64

	value  float64
	primed bool
}

// NewSmoother creates a smoother with the given EMA factor and
// confidence floor
func NewSmoother(alpha, minConfidence float64) *Smoother {
	return &Smoother{alpha: alpha, minConfidence: minConfidence}
}

// SetAlpha updates the EMA factor
func (s *Smoother) SetAlpha(alpha float64) {
	s.alpha = alpha
}

// SetMinConfidence updates the confidence floor
func (s *Smoother) SetMinConfidence(minConfidence float64) {
	s.minConfidence = minConfidence
}

// Update feeds one gated estimate through the smoother and returns the
// smoothed estimate. When the input is rejected the previous smoothed
// frequency is carried forward on the returned estimate, flagged unvoiced.
func (s *Smoother) Update(est Estimate) Estimate {
	if !est.Voiced || est.Confidence < s.minConfidence {
		out := est
		out.Voiced = false
		if s.primed {
			out.Frequency = s.value
		}
		return out
	}

	if !s.primed {
		s.value = est.Frequency
		s.primed = true
	} else {
		s.value += s.alpha * (est.Frequency - s.value)
	}

	return Estimate{
		Frequency:  s.value,
		Confidence: est.Confidence,
		Voiced:     true,
	}
}

// Value returns the current smoothed frequency and whether one exists
func (s *Smoother) Value() (float64, bool) {
	return s.value, s.primed
}

// Reset clears the smoothed value
func (s *Smoother) Reset() {
	s.value = 0
	s.primed = false
}
