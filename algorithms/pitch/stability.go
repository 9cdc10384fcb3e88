package pitch

import (
	"fmt"

	"github.com/RyanBlaney/sonido-vocal/algorithms/common"
)

// StableNote is the engine's current belief about the sung note
type StableNote struct {
	Frequency  float64 `json:"frequency"`  // Emitted frequency (Hz)
	Confidence float64 `json:"confidence"` // Confidence of the underlying estimate
	MIDI       int     `json:"midi"`       // Locked MIDI note number
	Cents      float64 `json:"cents"`      // Deviation from the target note in cents
}

// StabilityParams contains the hysteresis tuning of the stability engine
type StabilityParams struct {
	MinConfidence    float64 `json:"min_confidence"`    // Estimates below this count as silence
	WindowSize       int     `json:"window_size"`       // Median window over accepted frequencies
	HoldFrames       int     `json:"hold_frames"`       // Consecutive frames before the lock moves
	SilenceThreshold int     `json:"silence_threshold"` // Silent frames before a full reset
	HangoverFrames   int     `json:"hangover_frames"`   // Silent frames during which the last note is re-emitted
}

// DefaultStabilityParams returns hysteresis defaults tuned for a ~60 Hz tick
func DefaultStabilityParams() StabilityParams {
	return StabilityParams{
		MinConfidence:    0.5,
		WindowSize:       7,
		HoldFrames:       4,
		SilenceThreshold: 10,
		HangoverFrames:   6,
	}
}

// Validate checks the parameters for contract violations
func (p StabilityParams) Validate() error {
	if p.MinConfidence < 0 || p.MinConfidence > 1 {
		return fmt.Errorf("min confidence must be in [0, 1], got %v", p.MinConfidence)
	}
	if p.WindowSize < 1 {
		return fmt.Errorf("window size must be at least 1, got %d", p.WindowSize)
	}
	if p.HoldFrames < 1 {
		return fmt.Errorf("hold frames must be at least 1, got %d", p.HoldFrames)
	}
	if p.SilenceThreshold < 1 || p.HangoverFrames < 0 {
		return fmt.Errorf("invalid silence thresholds (%d, %d)", p.SilenceThreshold, p.HangoverFrames)
	}
	return nil
}

// StabilityEngine converts noisy per-frame frequency estimates into a
// flicker-free note lock. Three independent timescales do the work: a
// median window denoises single-frame outliers, a hold count debounces
// note changes, and a silence/hangover pair tolerates brief dropouts
// without blanking the output.
//
// One engine instance owns one tracking session; independent sessions
// never share state.
type StabilityEngine struct {
	params StabilityParams

	window          *common.RollingWindow // Last accepted frequencies, oldest first
	candidateMIDI   int
	candidateFrames int
	stableMIDI      int
	silenceFrames   int
	lastStable      *StableNote
}

// NewStabilityEngine creates an engine with the given parameters
func NewStabilityEngine(params StabilityParams) (*StabilityEngine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &StabilityEngine{
		params:        params,
		window:        common.NewRollingWindow(params.WindowSize),
		candidateMIDI: -1,
		stableMIDI:    -1,
	}, nil
}

// Params returns the current parameters
func (se *StabilityEngine) Params() StabilityParams {
	return se.params
}

// SetParams retunes the engine between ticks
func (se *StabilityEngine) SetParams(params StabilityParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	se.params = params
	se.window.Resize(params.WindowSize)
	return nil
}

// StableMIDI returns the currently locked note, or -1 when none is locked
func (se *StabilityEngine) StableMIDI() int {
	return se.stableMIDI
}

// SilentFrames returns the length of the current consecutive silent-tick
// run. Once it reaches SilenceThreshold the engine has fully reset.
func (se *StabilityEngine) SilentFrames() int {
	return se.silenceFrames
}

// Tick consumes one smoothed estimate and returns the stable note for this
// frame, or nil when no reliable pitch is locked. targetMIDI selects the
// note the cents deviation is measured against.
func (se *StabilityEngine) Tick(est Estimate, targetMIDI int) *StableNote {
	if !est.Voiced || est.Confidence < se.params.MinConfidence {
		return se.tickSilent()
	}

	se.silenceFrames = 0

	se.window.Push(est.Frequency)
	if se.window.Len() == 0 {
		return nil
	}
	median := common.Median(se.window.Values())

	candidate := NearestMIDI(median)
	if candidate < 0 {
		return nil
	}

	if candidate == se.candidateMIDI {
		se.candidateFrames++
	} else {
		se.candidateMIDI = candidate
		se.candidateFrames = 1
	}

	// Hysteresis: a new pitch must persist for HoldFrames consecutive
	// ticks before the lock moves
	if se.candidateFrames >= se.params.HoldFrames {
		se.stableMIDI = candidate
	}

	if se.stableMIDI < 0 {
		return nil
	}

	// While a new candidate is still earning its hold, keep reporting the
	// locked note's exact frequency instead of the drifting median
	emitted := median
	if se.stableMIDI != se.candidateMIDI {
		emitted = MIDIToHz(se.stableMIDI)
	}

	note := &StableNote{
		Frequency:  emitted,
		Confidence: est.Confidence,
		MIDI:       se.stableMIDI,
		Cents:      Cents(emitted, MIDIToHz(targetMIDI)),
	}
	se.lastStable = note
	return note
}

// tickSilent handles an unvoiced or low-confidence frame
func (se *StabilityEngine) tickSilent() *StableNote {
	se.silenceFrames++
	se.window.Clear()
	se.candidateMIDI = -1
	se.candidateFrames = 0

	if se.silenceFrames >= se.params.SilenceThreshold {
		// True silence: drop the lock entirely
		se.stableMIDI = -1
		se.lastStable = nil
		return nil
	}

	// Hangover: short dropouts keep reporting the previous note
	if se.silenceFrames <= se.params.HangoverFrames && se.lastStable != nil {
		return se.lastStable
	}

	return nil
}

// Reset clears all tracking state for a fresh session
func (se *StabilityEngine) Reset() {
	se.window.Clear()
	se.candidateMIDI = -1
	se.candidateFrames = 0
	se.stableMIDI = -1
	se.silenceFrames = 0
	se.lastStable = nil
}
