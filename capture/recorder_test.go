package capture

import "testing"

func TestRecorderAppendAndSnapshot(t *testing.T) {
	r := NewRecorder()

	if r.Len() != 0 || r.Duration() != 0 {
		t.Fatalf("expected empty recorder")
	}

	r.Append(RecordedFrame{T: 0.0, Frequency: 220, Confidence: 0.9, MIDI: 57, Voiced: true})
	r.Append(RecordedFrame{T: 0.1, Confidence: 0.0, MIDI: -1})

	if r.Len() != 2 {
		t.Fatalf("expected 2 frames, got %d", r.Len())
	}
	if r.Duration() != 0.1 {
		t.Fatalf("expected duration 0.1, got %v", r.Duration())
	}

	snap := r.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected snapshot of 2 frames, got %d", len(snap))
	}
	if !snap[0].HasNote() || snap[1].HasNote() {
		t.Fatalf("unexpected note flags: %+v", snap)
	}

	// Snapshot is a copy: later appends must not show up in it
	r.Append(RecordedFrame{T: 0.2, MIDI: -1})
	if len(snap) != 2 {
		t.Fatalf("snapshot aliases the live buffer")
	}
}

func TestRecorderReset(t *testing.T) {
	r := NewRecorder()
	r.Append(RecordedFrame{T: 0.5, MIDI: 60})
	r.Reset()

	if r.Len() != 0 {
		t.Fatalf("expected empty buffer after reset, got %d frames", r.Len())
	}
	if r.Duration() != 0 {
		t.Fatalf("expected zero duration after reset, got %v", r.Duration())
	}
}
