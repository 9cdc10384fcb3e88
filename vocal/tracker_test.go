package vocal

import (
	"math"
	"testing"

	"github.com/RyanBlaney/sonido-vocal/algorithms/pitch"
	"github.com/RyanBlaney/sonido-vocal/logging"
)

func init() {
	logging.SetGlobalLogger(&logging.NoOpLogger{})
}

const (
	testSampleRate = 44100.0
	testFrameSize  = 2048
	targetA3       = 57 // 220 Hz
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	tracker, err := NewTracker(DefaultConfig(testSampleRate))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return tracker
}

func sineFrame(freq float64) []float64 {
	frame := make([]float64, testFrameSize)
	for i := range frame {
		frame[i] = 0.5 * math.Sin(2*math.Pi*freq*float64(i)/testSampleRate)
	}
	return frame
}

func TestProcessFrameSilence(t *testing.T) {
	tracker := newTestTracker(t)

	note, confidence := tracker.ProcessFrame(make([]float64, testFrameSize), targetA3)
	if note != nil {
		t.Fatalf("expected no note for silence, got %+v", note)
	}
	if confidence != 0 {
		t.Fatalf("expected zero confidence for silence, got %v", confidence)
	}

	if note, _ := tracker.ProcessFrame(nil, targetA3); note != nil {
		t.Fatalf("expected nil for empty frame")
	}
}

func TestProcessFrameLocksOnSustainedTone(t *testing.T) {
	tracker := newTestTracker(t)
	hold := tracker.Config().Stability.HoldFrames

	var note *pitch.StableNote
	for i := 0; i < hold; i++ {
		if note != nil {
			t.Fatalf("locked before %d frames", hold)
		}
		note, _ = tracker.ProcessFrame(sineFrame(220), targetA3)
	}

	if note == nil {
		t.Fatalf("expected lock after %d frames of a steady tone", hold)
	}
	if note.MIDI != targetA3 {
		t.Fatalf("expected MIDI %d (%s), got %d", targetA3, pitch.NoteName(targetA3), note.MIDI)
	}
	if math.Abs(note.Cents) > 10 {
		t.Fatalf("expected cents near zero against the target, got %v", note.Cents)
	}
}

func TestProcessFrameGateMutesQuietSignal(t *testing.T) {
	config := DefaultConfig(testSampleRate)
	config.RMSFloor = 0.2
	tracker, err := NewTracker(config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 10; i++ {
		// Amplitude 0.5 sine has RMS ~0.35; scale below the floor
		frame := sineFrame(220)
		for j := range frame {
			frame[j] *= 0.1
		}
		if note, confidence := tracker.ProcessFrame(frame, targetA3); note != nil || confidence != 0 {
			t.Fatalf("expected gated output, got note=%+v confidence=%v", note, confidence)
		}
	}
}

func TestProcessFrameForgetsPitchAfterLongSilence(t *testing.T) {
	tracker := newTestTracker(t)
	stability := tracker.Config().Stability

	for i := 0; i < stability.HoldFrames; i++ {
		tracker.ProcessFrame(sineFrame(220), targetA3)
	}

	// Hold silence past the threshold so the engine fully resets
	for i := 0; i < stability.SilenceThreshold+2; i++ {
		tracker.ProcessFrame(make([]float64, testFrameSize), targetA3)
	}

	// A new phrase an octave up must lock directly on A4 within the hold
	// window, with no drive-by locks on notes that were never sung
	const targetA4 = 69
	locked := -1
	for i := 0; i < stability.HoldFrames; i++ {
		note, _ := tracker.ProcessFrame(sineFrame(440), targetA4)
		if note != nil {
			if note.MIDI != targetA4 {
				t.Fatalf("frame %d: locked %d, want %d", i, note.MIDI, targetA4)
			}
			locked = i
		}
	}
	if locked != stability.HoldFrames-1 {
		t.Fatalf("expected A4 lock on frame %d, got %d", stability.HoldFrames-1, locked)
	}
}

func TestRecordingSession(t *testing.T) {
	tracker := newTestTracker(t)

	tracker.StartRecording()
	if !tracker.Recording() {
		t.Fatalf("expected recording to be active")
	}

	const numFrames = 20
	for i := 0; i < numFrames; i++ {
		tracker.ProcessFrame(sineFrame(220), targetA3)
	}

	frames := tracker.StopRecording()
	if tracker.Recording() {
		t.Fatalf("expected recording stopped")
	}
	if len(frames) != numFrames {
		t.Fatalf("expected %d recorded frames, got %d", numFrames, len(frames))
	}
	if frames[0].T != 0 {
		t.Fatalf("expected first frame at t=0, got %v", frames[0].T)
	}

	frameDur := float64(testFrameSize) / testSampleRate
	if got := frames[1].T - frames[0].T; math.Abs(got-frameDur) > 1e-9 {
		t.Fatalf("expected frame spacing %v, got %v", frameDur, got)
	}

	locked := 0
	for _, f := range frames {
		if f.HasNote() {
			locked++
		}
	}
	if locked == 0 {
		t.Fatalf("expected locked frames in a steady recording")
	}

	// Starting a new session truncates the buffer
	tracker.StartRecording()
	tracker.ProcessFrame(sineFrame(220), targetA3)
	if got := tracker.StopRecording(); len(got) != 1 {
		t.Fatalf("expected fresh session buffer, got %d frames", len(got))
	}
}

func TestBatchSurface(t *testing.T) {
	tracker := newTestTracker(t)

	tracker.StartRecording()
	for i := 0; i < 30; i++ {
		tracker.ProcessFrame(sineFrame(220), targetA3)
	}
	frames := tracker.StopRecording()

	events, err := tracker.QuantizeMelody(frames)
	if err != nil {
		t.Fatalf("quantize: %v", err)
	}
	if len(events) != 1 || events[0].MIDI != targetA3 {
		t.Fatalf("expected a single A3 event, got %+v", events)
	}

	segments, err := tracker.BuildSegments(frames)
	if err != nil {
		t.Fatalf("segments: %v", err)
	}
	if len(segments) != 1 || segments[0].MIDI != targetA3 {
		t.Fatalf("expected a single A3 segment, got %+v", segments)
	}

	report, err := tracker.Analyze(frames)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if report.SampleCount == 0 {
		t.Fatalf("expected locked samples in the report")
	}

	// Batch functions are idempotent views
	again, err := tracker.QuantizeMelody(frames)
	if err != nil {
		t.Fatalf("quantize again: %v", err)
	}
	if len(again) != len(events) {
		t.Fatalf("expected identical result on repeat, got %+v vs %+v", again, events)
	}
}

func TestBatchSurfaceEmptyInput(t *testing.T) {
	tracker := newTestTracker(t)

	events, err := tracker.QuantizeMelody(nil)
	if err != nil || len(events) != 0 {
		t.Fatalf("expected empty events, got %v (%v)", events, err)
	}
	segments, err := tracker.BuildSegments(nil)
	if err != nil || len(segments) != 0 {
		t.Fatalf("expected empty segments, got %v (%v)", segments, err)
	}
	report, err := tracker.Analyze(nil)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if report.Verdict == "" {
		t.Fatalf("expected an insufficient-data verdict")
	}
}

func TestConfigValidation(t *testing.T) {
	if _, err := NewTracker(DefaultConfig(0)); err == nil {
		t.Fatalf("expected error for zero sample rate")
	}

	config := DefaultConfig(testSampleRate)
	config.SmoothingAlpha = 2.0
	if _, err := NewTracker(config); err == nil {
		t.Fatalf("expected error for alpha > 1")
	}

	config = DefaultConfig(testSampleRate)
	config.Quantizer.StepSeconds = -0.1
	if _, err := NewTracker(config); err == nil {
		t.Fatalf("expected error for negative melody step")
	}
}

func TestSetConfigRetunes(t *testing.T) {
	tracker := newTestTracker(t)

	config := DefaultConfig(testSampleRate)
	config.RMSFloor = 0.9 // gate everything
	if err := tracker.SetConfig(config); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 10; i++ {
		if note, _ := tracker.ProcessFrame(sineFrame(220), targetA3); note != nil {
			t.Fatalf("expected everything gated after retune, got %+v", note)
		}
	}

	if err := tracker.SetConfig(nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}
