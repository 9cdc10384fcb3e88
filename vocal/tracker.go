package vocal

import (
	"fmt"

	"github.com/RyanBlaney/sonido-vocal/algorithms/pitch"
	"github.com/RyanBlaney/sonido-vocal/capture"
	"github.com/RyanBlaney/sonido-vocal/logging"
)

// Tracker chains Gate -> Estimator -> Smoother -> StabilityEngine per
// audio frame and owns the frame recorder for the current session. The
// caller owns the scheduling loop and its cadence; every tick is pure,
// bounded-time computation over the given frame.
type Tracker struct {
	config    *Config
	gate      *pitch.Gate
	estimator *pitch.Estimator
	smoother  *pitch.Smoother
	engine    *pitch.StabilityEngine
	recorder  *capture.Recorder
	logger    logging.Logger

	recording bool
	clock     float64 // Seconds since recording start
	lastMIDI  int     // Last emitted lock, for transition logging
}

// NewTracker creates a tracker from the given configuration. A nil config
// gets 44.1 kHz defaults.
func NewTracker(config *Config) (*Tracker, error) {
	if config == nil {
		config = DefaultConfig(44100)
	}

	logger := logging.WithFields(logging.Fields{
		"component": "vocal_tracker",
	})

	if err := config.Validate(); err != nil {
		logger.Error(err, "Invalid tracker configuration")
		return nil, err
	}

	estimator, err := pitch.NewEstimatorWithParams(config.Estimator)
	if err != nil {
		return nil, err
	}
	engine, err := pitch.NewStabilityEngine(config.Stability)
	if err != nil {
		return nil, err
	}

	logger.Debug("Tracker created", logging.Fields{
		"sample_rate": config.SampleRate,
		"rms_floor":   config.RMSFloor,
	})

	return &Tracker{
		config:    config,
		gate:      pitch.NewGate(config.RMSFloor),
		estimator: estimator,
		smoother:  pitch.NewSmoother(config.SmoothingAlpha, config.MinConfidence),
		engine:    engine,
		recorder:  capture.NewRecorder(),
		logger:    logger,
		lastMIDI:  -1,
	}, nil
}

// Config returns the active configuration
func (t *Tracker) Config() *Config {
	return t.config
}

// SetConfig retunes the live path between ticks. State (smoothed value,
// note lock, recording buffer) is preserved.
func (t *Tracker) SetConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if err := config.Validate(); err != nil {
		return err
	}
	if config.Estimator != t.config.Estimator {
		estimator, err := pitch.NewEstimatorWithParams(config.Estimator)
		if err != nil {
			return err
		}
		t.estimator = estimator
	}
	if err := t.engine.SetParams(config.Stability); err != nil {
		return err
	}

	t.gate.SetFloor(config.RMSFloor)
	t.smoother.SetAlpha(config.SmoothingAlpha)
	t.smoother.SetMinConfidence(config.MinConfidence)
	t.config = config
	return nil
}

// ProcessFrame runs one live tick over a frame of samples in [-1, 1].
// It returns the stable note for this frame (nil when none is locked)
// and the raw estimator confidence. targetMIDI selects the note that
// cents deviation is measured against.
func (t *Tracker) ProcessFrame(samples []float64, targetMIDI int) (*pitch.StableNote, float64) {
	if len(samples) == 0 {
		return nil, 0
	}

	est := t.estimator.Estimate(samples)
	est = t.gate.Apply(samples, est)
	smoothed := t.smoother.Update(est)
	note := t.engine.Tick(smoothed, targetMIDI)

	// A full silence reset in the engine also forgets the smoothed value;
	// the next phrase seeds the EMA fresh instead of dragging the old
	// pitch into the median window
	if t.engine.SilentFrames() >= t.config.Stability.SilenceThreshold {
		t.smoother.Reset()
	}

	t.logLockTransition(note)

	if t.recording {
		t.record(smoothed, note)
		t.clock += float64(len(samples)) / t.config.SampleRate
	}

	return note, est.Confidence
}

// record appends one sampled frame to the session buffer
func (t *Tracker) record(est pitch.Estimate, note *pitch.StableNote) {
	frame := capture.RecordedFrame{
		T:          t.clock,
		Confidence: est.Confidence,
		MIDI:       -1,
	}
	if est.Voiced {
		frame.Frequency = est.Frequency
		frame.Voiced = true
	}
	if note != nil {
		frame.MIDI = note.MIDI
		frame.Cents = note.Cents
		frame.Frequency = note.Frequency
		frame.Confidence = note.Confidence
		frame.Voiced = true
	}
	t.recorder.Append(frame)
}

// logLockTransition emits a debug line whenever the note lock moves
func (t *Tracker) logLockTransition(note *pitch.StableNote) {
	midi := -1
	if note != nil {
		midi = note.MIDI
	}
	if midi == t.lastMIDI {
		return
	}
	t.lastMIDI = midi

	if note == nil {
		t.logger.Debug("Note lock released")
		return
	}
	t.logger.Debug("Note lock moved", logging.Fields{
		"midi":      note.MIDI,
		"note":      pitch.NoteName(note.MIDI),
		"frequency": note.Frequency,
	})
}

// StartRecording truncates the session buffer and starts appending one
// frame per tick. Restarting discards the previous session.
func (t *Tracker) StartRecording() {
	t.recorder.Reset()
	t.clock = 0
	t.recording = true
	t.logger.Debug("Recording started")
}

// StopRecording stops appending and returns a snapshot of the session.
// This is the synchronization point before batch analysis.
func (t *Tracker) StopRecording() []capture.RecordedFrame {
	t.recording = false
	frames := t.recorder.Snapshot()
	t.logger.Debug("Recording stopped", logging.Fields{
		"frames":   len(frames),
		"duration": t.recorder.Duration(),
	})
	return frames
}

// Recording reports whether a session is currently capturing frames
func (t *Tracker) Recording() bool {
	return t.recording
}

// Reset clears all live-path state and the session buffer
func (t *Tracker) Reset() {
	t.smoother.Reset()
	t.engine.Reset()
	t.recorder.Reset()
	t.recording = false
	t.clock = 0
	t.lastMIDI = -1
}
