// Package melody derives musical structure from a recorded frame buffer:
// a fixed-grid quantized melody and the contiguous sung segments used for
// scrolling visualization.
package melody

import (
	"fmt"
	"math"
	"sort"

	"github.com/RyanBlaney/sonido-vocal/algorithms/common"
	"github.com/RyanBlaney/sonido-vocal/algorithms/pitch"
	"github.com/RyanBlaney/sonido-vocal/capture"
)

// Rest marks an event bucket with no voted note
const Rest = -1

// Event is one run-length-compressed melody event. Adjacent events in a
// quantized sequence never share the same MIDI value.
type Event struct {
	MIDI     int     `json:"midi"` // Voted note, Rest for unvoiced stretches
	Duration float64 `json:"duration"`
}

// QuantizerParams contains parameters for melody quantization
type QuantizerParams struct {
	StepSeconds   float64 `json:"step_seconds"`   // Fixed grid step
	MinConfidence float64 `json:"min_confidence"` // Frames below this are ignored
}

// DefaultQuantizerParams returns quantizer defaults
func DefaultQuantizerParams() QuantizerParams {
	return QuantizerParams{
		StepSeconds:   0.1,
		MinConfidence: 0.5,
	}
}

// Validate checks the parameters for contract violations
func (p QuantizerParams) Validate() error {
	if p.StepSeconds <= 0 {
		return fmt.Errorf("step seconds must be positive, got %v", p.StepSeconds)
	}
	if p.MinConfidence < 0 || p.MinConfidence > 1 {
		return fmt.Errorf("min confidence must be in [0, 1], got %v", p.MinConfidence)
	}
	return nil
}

// Quantize buckets a recorded frame buffer onto a fixed time grid,
// majority-votes a MIDI note per bucket and run-length-compresses adjacent
// identical buckets into events. The result is a coarse piano-roll
// approximation of what was sung, independent of note-onset timing.
//
// Ingestion order is not assumed chronological; frames are sorted by
// timestamp first. The input slice is not modified.
func Quantize(frames []capture.RecordedFrame, params QuantizerParams) ([]Event, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(frames) == 0 {
		return []Event{}, nil
	}

	sorted := make([]capture.RecordedFrame, len(frames))
	copy(sorted, frames)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].T < sorted[j].T })

	lastT := sorted[len(sorted)-1].T
	if lastT <= 0 {
		return []Event{}, nil
	}

	step := params.StepSeconds
	numBuckets := int(math.Ceil(lastT/step - 1e-12))
	if numBuckets < 1 {
		numBuckets = 1
	}

	buckets := make([][]capture.RecordedFrame, numBuckets)
	for _, f := range sorted {
		// Buckets are [start, end); the epsilon keeps an exact-boundary
		// timestamp out of the previous bucket when the division rounds
		// just below the integer
		idx := int(f.T/step + 1e-9)
		if idx >= numBuckets {
			idx = numBuckets - 1
		}
		buckets[idx] = append(buckets[idx], f)
	}

	events := make([]Event, 0, numBuckets)
	for _, bucket := range buckets {
		midi := voteBucket(bucket, params.MinConfidence)
		if n := len(events); n > 0 && events[n-1].MIDI == midi {
			events[n-1].Duration += step
		} else {
			events = append(events, Event{MIDI: midi, Duration: step})
		}
	}

	return events, nil
}

// voteBucket picks the MIDI note for one grid bucket. Frames already
// carrying a locked note win by occurrence count, ties going to the value
// that reached the maximum first in a single left-to-right scan. Buckets
// with only raw frequencies fall back to the rounded mean; empty or
// unvoiced buckets are rests.
func voteBucket(bucket []capture.RecordedFrame, minConfidence float64) int {
	counts := make(map[int]int)
	best := Rest
	bestCount := 0
	var freqs []float64

	for _, f := range bucket {
		if !f.Voiced || f.Confidence < minConfidence {
			continue
		}
		if f.HasNote() {
			counts[f.MIDI]++
			if counts[f.MIDI] > bestCount {
				bestCount = counts[f.MIDI]
				best = f.MIDI
			}
		} else if f.Frequency > 0 {
			freqs = append(freqs, f.Frequency)
		}
	}

	if best != Rest {
		return best
	}
	if len(freqs) > 0 {
		return pitch.NearestMIDI(common.Mean(freqs))
	}
	return Rest
}
