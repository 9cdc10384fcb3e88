// Package vocal is the product surface of the library: a per-frame vocal
// pitch tracker for the live path and batch melody/segment/vibrato
// analysis over a finished recording.
package vocal

import (
	"fmt"

	"github.com/RyanBlaney/sonido-vocal/algorithms/melody"
	"github.com/RyanBlaney/sonido-vocal/algorithms/pitch"
	"github.com/RyanBlaney/sonido-vocal/algorithms/vibrato"
)

// Config aggregates every tunable of the pipeline. A caller (for example
// a sensitivity control in a UI) may re-apply a modified Config between
// ticks via Tracker.SetConfig.
type Config struct {
	SampleRate float64 `json:"sample_rate"`

	// Live path
	RMSFloor       float64               `json:"rms_floor"`       // Signal gate
	SmoothingAlpha float64               `json:"smoothing_alpha"` // EMA factor
	MinConfidence  float64               `json:"min_confidence"`  // Shared confidence floor
	Estimator      pitch.EstimatorParams `json:"estimator"`
	Stability      pitch.StabilityParams `json:"stability"`

	// Batch path
	Quantizer melody.QuantizerParams `json:"quantizer"`
	Segmenter melody.SegmenterParams `json:"segmenter"`
	Analyzer  vibrato.AnalyzerParams `json:"analyzer"`
}

// DefaultConfig returns pipeline defaults for the given sample rate
func DefaultConfig(sampleRate float64) *Config {
	minConfidence := 0.5

	stability := pitch.DefaultStabilityParams()
	stability.MinConfidence = minConfidence

	quantizer := melody.DefaultQuantizerParams()
	quantizer.MinConfidence = minConfidence

	segmenter := melody.DefaultSegmenterParams()
	segmenter.MinConfidence = minConfidence

	return &Config{
		SampleRate:     sampleRate,
		RMSFloor:       0.01,
		SmoothingAlpha: 0.2,
		MinConfidence:  minConfidence,
		Estimator:      pitch.DefaultEstimatorParams(sampleRate),
		Stability:      stability,
		Quantizer:      quantizer,
		Segmenter:      segmenter,
		Analyzer:       vibrato.DefaultAnalyzerParams(),
	}
}

// Validate checks the full configuration for contract violations
func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %v", c.SampleRate)
	}
	if c.RMSFloor < 0 {
		return fmt.Errorf("rms floor must be non-negative, got %v", c.RMSFloor)
	}
	if c.SmoothingAlpha <= 0 || c.SmoothingAlpha > 1 {
		return fmt.Errorf("smoothing alpha must be in (0, 1], got %v", c.SmoothingAlpha)
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("min confidence must be in [0, 1], got %v", c.MinConfidence)
	}
	if err := c.Stability.Validate(); err != nil {
		return err
	}
	if err := c.Quantizer.Validate(); err != nil {
		return err
	}
	if err := c.Segmenter.Validate(); err != nil {
		return err
	}
	return c.Analyzer.Validate()
}
