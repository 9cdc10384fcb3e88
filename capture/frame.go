// Package capture holds the recorded-frame data model shared between the
// live tracking path and the batch analysis algorithms, plus the
// append-only recorder that buffers one recording session.
package capture

// RecordedFrame is one sampled point of a recording session. Frames are
// immutable once appended and are consumed only by the batch-path
// algorithms after the recording has stopped.
type RecordedFrame struct {
	T          float64 `json:"t"`          // Seconds since recording start
	Frequency  float64 `json:"frequency"`  // Smoothed frequency (Hz), valid only when Voiced
	Confidence float64 `json:"confidence"` // Estimator confidence (0-1)
	MIDI       int     `json:"midi"`       // Locked MIDI note, -1 when no note was locked
	Cents      float64 `json:"cents"`      // Deviation from target, valid only when MIDI >= 0
	Voiced     bool    `json:"voiced"`     // Whether a pitch estimate existed this frame
}

// HasNote reports whether a stable note was locked when this frame
// was sampled
func (f RecordedFrame) HasNote() bool {
	return f.MIDI >= 0
}
