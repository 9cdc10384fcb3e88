package pitch

import (
	"fmt"

	"github.com/RyanBlaney/sonido-vocal/algorithms/common"
)

// Estimate is the per-frame output of the frequency estimator
type Estimate struct {
	Frequency  float64 `json:"frequency"`  // Estimated fundamental (Hz), valid only when Voiced
	Confidence float64 `json:"confidence"` // Confidence score (0-1)
	Voiced     bool    `json:"voiced"`     // False when no periodic pitch was found
}

// EstimatorParams contains parameters for frequency estimation
type EstimatorParams struct {
	SampleRate float64 `json:"sample_rate"`

	// Frequency range constraints
	MinFreq float64 `json:"min_freq"` // Minimum frequency (Hz)
	MaxFreq float64 `json:"max_freq"` // Maximum frequency (Hz)

	// UseFFT switches the autocorrelation kernel to the FFT fast path.
	// The direct scan is the reference behavior; results agree to within
	// floating point rounding.
	UseFFT bool `json:"use_fft"`
}

// DefaultEstimatorParams returns estimator defaults for a singing voice
func DefaultEstimatorParams(sampleRate float64) EstimatorParams {
	return EstimatorParams{
		SampleRate: sampleRate,
		MinFreq:    55.0,   // Low male voice
		MaxFreq:    1000.0, // High female voice
	}
}

// Estimator estimates the fundamental frequency of a single audio frame
// using time-domain autocorrelation.
//
// References:
// - Rabiner, L.R. (1977). "On the use of autocorrelation analysis for pitch detection"
//
// The estimator is deliberately time-domain and O(N*L) per frame: at the
// frame sizes used (a few thousand samples) the simple scan is fast enough
// and its tie-break behavior (lowest lag wins) is easy to reason about.
type Estimator struct {
	params EstimatorParams

	// Scratch buffer for the mean-subtracted frame
	centered []float64
}

// NewEstimator creates an estimator with default voice-range parameters
func NewEstimator(sampleRate float64) (*Estimator, error) {
	return NewEstimatorWithParams(DefaultEstimatorParams(sampleRate))
}

// NewEstimatorWithParams creates an estimator with custom parameters
func NewEstimatorWithParams(params EstimatorParams) (*Estimator, error) {
	if params.SampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %v", params.SampleRate)
	}
	if params.MinFreq <= 0 || params.MaxFreq <= params.MinFreq {
		return nil, fmt.Errorf("invalid frequency range [%v, %v]", params.MinFreq, params.MaxFreq)
	}
	return &Estimator{params: params}, nil
}

// Params returns the current parameters
func (e *Estimator) Params() EstimatorParams {
	return e.params
}

// varianceEpsilon marks a frame as near-silent or pure DC
const varianceEpsilon = 1e-9

// Estimate analyzes one audio frame and returns a pitch estimate.
// Silent or DC frames yield an unvoiced estimate with zero confidence.
func (e *Estimator) Estimate(frame []float64) Estimate {
	n := len(frame)
	if n == 0 {
		return Estimate{}
	}

	if cap(e.centered) < n {
		e.centered = make([]float64, n)
	}
	centered := e.centered[:n]

	mean := common.Mean(frame)
	variance := 0.0
	for i, s := range frame {
		c := s - mean
		centered[i] = c
		variance += c * c
	}

	if variance < varianceEpsilon {
		return Estimate{}
	}

	minLag := int(e.params.SampleRate / e.params.MaxFreq)
	maxLag := int(e.params.SampleRate / e.params.MinFreq)
	if minLag < 1 {
		minLag = 1
	}
	if maxLag > n-1 {
		maxLag = n - 1
	}
	if minLag > maxLag {
		return Estimate{}
	}

	var correlations []float64
	if e.params.UseFFT {
		correlations = autocorrFFT(centered, minLag, maxLag)
	} else {
		correlations = autocorrDirect(centered, minLag, maxLag)
	}

	// Highest positive correlation wins; ties keep the lowest lag
	bestCorr := 0.0
	bestLag := -1
	for i, corr := range correlations {
		if corr > bestCorr {
			bestCorr = corr
			bestLag = minLag + i
		}
	}

	if bestLag < 0 {
		return Estimate{}
	}

	// Per-sample correlation at the best lag against per-sample variance,
	// so confidence stays comparable across the lag range: a pure periodic
	// signal scores near 1 whether its period is short or long
	confidence := common.Clamp(
		(bestCorr/float64(n-bestLag))/(variance/float64(n)), 0.0, 1.0)

	return Estimate{
		Frequency:  e.params.SampleRate / float64(bestLag),
		Confidence: confidence,
		Voiced:     true,
	}
}
