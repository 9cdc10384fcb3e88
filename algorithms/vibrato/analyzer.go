// Package vibrato computes post-hoc vibrato and pitch-stability statistics
// over a finished recording, plus a rule-based practice verdict.
package vibrato

import (
	"fmt"
	"sort"

	"github.com/RyanBlaney/sonido-vocal/algorithms/common"
	"github.com/RyanBlaney/sonido-vocal/capture"
)

// Verdict is the single feedback category picked by the rule classifier
type Verdict string

const (
	VerdictInsufficient  Verdict = "insufficient_samples"
	VerdictLowConfidence Verdict = "low_confidence"
	VerdictLowStability  Verdict = "low_stability"
	VerdictNoVibrato     Verdict = "no_vibrato"
	VerdictWeakVibrato   Verdict = "weak_vibrato"
	VerdictSlowVibrato   Verdict = "slow_vibrato"
	VerdictFastVibrato   Verdict = "fast_vibrato"
	VerdictGood          Verdict = "good"
)

// Stats holds the vibrato measurements of one recording
type Stats struct {
	RateHz     float64 `json:"rate_hz"`
	DepthCents float64 `json:"depth_cents"`
	Crossings  int     `json:"crossings"`
	Detected   bool    `json:"detected"`
}

// Report is the aggregate analysis of one recording
type Report struct {
	SampleCount    int     `json:"sample_count"`    // Frames with a locked note
	VoicedRatio    float64 `json:"voiced_ratio"`    // Locked frames over all frames
	MeanConfidence float64 `json:"mean_confidence"` // Over locked frames
	CentsStdDev    float64 `json:"cents_std_dev"`
	StabilityScore float64 `json:"stability_score"` // 0-100, higher is steadier
	Vibrato        Stats   `json:"vibrato"`
	Verdict        Verdict `json:"verdict"`
}

// AnalyzerParams contains thresholds for analysis and classification
type AnalyzerParams struct {
	MinSamples    int     `json:"min_samples"`     // Valid points required for any analysis
	DeadZoneCents float64 `json:"dead_zone_cents"` // Crossings inside this band are noise
	MinRateHz     float64 `json:"min_rate_hz"`     // Vibrato rate window
	MaxRateHz     float64 `json:"max_rate_hz"`
	MinDepthCents float64 `json:"min_depth_cents"`
	MinCrossings  int     `json:"min_crossings"`
	LowConfidence float64 `json:"low_confidence"` // Verdict threshold
	LowStability  float64 `json:"low_stability"`  // Verdict threshold (score)
}

// DefaultAnalyzerParams returns analyzer defaults
func DefaultAnalyzerParams() AnalyzerParams {
	return AnalyzerParams{
		MinSamples:    10,
		DeadZoneCents: 2.0,
		MinRateHz:     3.0,
		MaxRateHz:     8.0,
		MinDepthCents: 6.0,
		MinCrossings:  4,
		LowConfidence: 0.6,
		LowStability:  40.0,
	}
}

// Validate checks the parameters for contract violations
func (p AnalyzerParams) Validate() error {
	if p.MinSamples < 2 {
		return fmt.Errorf("min samples must be at least 2, got %d", p.MinSamples)
	}
	if p.DeadZoneCents < 0 || p.MinDepthCents < 0 || p.MinCrossings < 0 {
		return fmt.Errorf("analyzer thresholds must be non-negative: %+v", p)
	}
	if p.MinRateHz < 0 || p.MaxRateHz < p.MinRateHz {
		return fmt.Errorf("invalid rate window [%v, %v]", p.MinRateHz, p.MaxRateHz)
	}
	return nil
}

// Analyze runs the analyzer with default parameters
func Analyze(frames []capture.RecordedFrame) Report {
	report, _ := AnalyzeWithParams(frames, DefaultAnalyzerParams())
	return report
}

// AnalyzeWithParams computes vibrato and stability statistics over the
// cents trace of a finished recording. Recordings with too few locked
// frames get an insufficient-data report rather than an error.
//
// Ingestion order is not assumed chronological; frames are sorted by
// timestamp first. The input slice is not modified.
func AnalyzeWithParams(frames []capture.RecordedFrame, params AnalyzerParams) (Report, error) {
	if err := params.Validate(); err != nil {
		return Report{Verdict: VerdictInsufficient}, err
	}

	sorted := make([]capture.RecordedFrame, len(frames))
	copy(sorted, frames)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].T < sorted[j].T })

	var (
		cents []float64
		times []float64
		confs []float64
	)
	for _, f := range sorted {
		if f.HasNote() {
			cents = append(cents, f.Cents)
			times = append(times, f.T)
			confs = append(confs, f.Confidence)
		}
	}

	report := Report{SampleCount: len(cents)}
	if len(frames) > 0 {
		report.VoicedRatio = float64(len(cents)) / float64(len(frames))
	}
	if len(cents) < params.MinSamples {
		report.Verdict = VerdictInsufficient
		return report, nil
	}

	report.MeanConfidence = common.Mean(confs)
	report.CentsStdDev = common.StandardDeviation(cents)
	report.StabilityScore = common.Clamp(100.0-(report.CentsStdDev/25.0)*100.0, 0.0, 100.0)

	report.Vibrato = measureVibrato(cents, times, params)
	report.Verdict = classify(report, params)
	return report, nil
}

// measureVibrato counts dead-zone filtered zero crossings of the
// mean-centered cents trace and converts them to a rate and depth
func measureVibrato(cents, times []float64, params AnalyzerParams) Stats {
	mean := common.Mean(cents)

	crossings := 0
	side := 0 // -1 below the dead zone, +1 above, 0 not yet committed
	for _, c := range cents {
		v := c - mean
		switch {
		case v > params.DeadZoneCents:
			if side == -1 {
				crossings++
			}
			side = 1
		case v < -params.DeadZoneCents:
			if side == 1 {
				crossings++
			}
			side = -1
		}
	}

	stats := Stats{
		DepthCents: common.StandardDeviation(cents),
		Crossings:  crossings,
	}

	duration := times[len(times)-1] - times[0]
	if duration <= 0 {
		return stats
	}
	stats.RateHz = float64(crossings) / (2.0 * duration)

	stats.Detected = stats.RateHz >= params.MinRateHz &&
		stats.RateHz <= params.MaxRateHz &&
		stats.DepthCents >= params.MinDepthCents &&
		crossings >= params.MinCrossings

	return stats
}

// classify picks one feedback category. Rules are evaluated in fixed
// priority order; the first match wins.
func classify(report Report, params AnalyzerParams) Verdict {
	v := report.Vibrato
	switch {
	case report.MeanConfidence < params.LowConfidence:
		return VerdictLowConfidence
	case report.StabilityScore < params.LowStability:
		return VerdictLowStability
	case v.Crossings < params.MinCrossings || v.RateHz == 0:
		return VerdictNoVibrato
	case v.DepthCents < params.MinDepthCents:
		return VerdictWeakVibrato
	case v.RateHz < params.MinRateHz:
		return VerdictSlowVibrato
	case v.RateHz > params.MaxRateHz:
		return VerdictFastVibrato
	default:
		return VerdictGood
	}
}
