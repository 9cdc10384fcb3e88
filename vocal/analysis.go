package vocal

import (
	"github.com/RyanBlaney/sonido-vocal/algorithms/melody"
	"github.com/RyanBlaney/sonido-vocal/algorithms/vibrato"
	"github.com/RyanBlaney/sonido-vocal/capture"
)

// Batch analysis surface. Each function is a pure view over a frame
// buffer: safe to invoke repeatedly, empty input degrades to empty
// output or an insufficient-data report.

// QuantizeMelody compresses a recorded frame buffer into melody events
// on the configured fixed grid
func (t *Tracker) QuantizeMelody(frames []capture.RecordedFrame) ([]melody.Event, error) {
	return melody.Quantize(frames, t.config.Quantizer)
}

// BuildSegments produces the contiguous sung runs used for scrolling
// visualization
func (t *Tracker) BuildSegments(frames []capture.RecordedFrame) ([]melody.Segment, error) {
	return melody.BuildSegments(frames, t.config.Segmenter)
}

// Analyze computes vibrato and stability statistics with the configured
// thresholds
func (t *Tracker) Analyze(frames []capture.RecordedFrame) (vibrato.Report, error) {
	return vibrato.AnalyzeWithParams(frames, t.config.Analyzer)
}
