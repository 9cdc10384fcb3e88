package melody

import (
	"fmt"
	"sort"

	"github.com/RyanBlaney/sonido-vocal/capture"
)

// Segment is one contiguously sung note run. Segments in a built sequence
// are temporally ordered and non-overlapping, with End >= Start.
type Segment struct {
	MIDI  int     `json:"midi"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// SegmenterParams contains parameters for segment building
type SegmenterParams struct {
	GapTolerance  float64 `json:"gap_tolerance"`  // Max silent gap inside one segment (s)
	MIDITolerance int     `json:"midi_tolerance"` // Semitone wobble that still counts as the same run
	MinLength     float64 `json:"min_length"`     // Minimum segment span (s)
	EndHold       float64 `json:"end_hold"`       // Visual hold appended when a segment closes (s)
	MinConfidence float64 `json:"min_confidence"` // Frames below this are ignored
}

// DefaultSegmenterParams returns segmenter defaults tuned for lane
// visualization pacing
func DefaultSegmenterParams() SegmenterParams {
	return SegmenterParams{
		GapTolerance:  0.22,
		MIDITolerance: 1,
		MinLength:     0.1,
		EndHold:       0.12,
		MinConfidence: 0.5,
	}
}

// Validate checks the parameters for contract violations
func (p SegmenterParams) Validate() error {
	if p.GapTolerance < 0 || p.MIDITolerance < 0 || p.MinLength < 0 || p.EndHold < 0 {
		return fmt.Errorf("segmenter tolerances must be non-negative: %+v", p)
	}
	if p.MinConfidence < 0 || p.MinConfidence > 1 {
		return fmt.Errorf("min confidence must be in [0, 1], got %v", p.MinConfidence)
	}
	return nil
}

// BuildSegments tracks continuously sung note runs through a recorded
// frame buffer. Unlike Quantize it is not grid-aligned: small time gaps
// and single-semitone wobble extend the active run instead of breaking
// it. The input slice is not modified.
func BuildSegments(frames []capture.RecordedFrame, params SegmenterParams) ([]Segment, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	valid := make([]capture.RecordedFrame, 0, len(frames))
	for _, f := range frames {
		if f.HasNote() && f.Confidence >= params.MinConfidence {
			valid = append(valid, f)
		}
	}
	if len(valid) == 0 {
		return []Segment{}, nil
	}
	sort.Slice(valid, func(i, j int) bool { return valid[i].T < valid[j].T })

	segments := make([]Segment, 0)
	active := Segment{MIDI: valid[0].MIDI, Start: valid[0].T, End: valid[0].T}

	for _, f := range valid[1:] {
		gap := f.T - active.End
		delta := f.MIDI - active.MIDI
		if delta < 0 {
			delta = -delta
		}

		if gap <= params.GapTolerance && delta <= params.MIDITolerance {
			active.End = f.T
			continue
		}

		segments = append(segments, closeSegment(active, f.T, true, params))
		active = Segment{MIDI: f.MIDI, Start: f.T, End: f.T}
	}

	segments = append(segments, closeSegment(active, 0, false, params))
	return segments, nil
}

// closeSegment finalizes a run: extend its end by the visual hold (capped
// at the next frame's time), then enforce the minimum span. The cap wins
// over the minimum so segments never overlap their successor.
func closeSegment(seg Segment, nextT float64, capped bool, params SegmenterParams) Segment {
	seg.End += params.EndHold
	if capped && seg.End > nextT {
		seg.End = nextT
	}
	if seg.End-seg.Start < params.MinLength {
		seg.End = seg.Start + params.MinLength
		if capped && seg.End > nextT {
			seg.End = nextT
		}
	}
	return seg
}
