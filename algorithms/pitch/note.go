package pitch

import (
	"fmt"
	"math"
)

// A4 tuning reference (MIDI note 69)
const (
	ReferenceFrequency = 440.0
	ReferenceMIDI      = 69
)

// noteNames in chromatic order starting at C
var noteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// HzToMIDI converts a frequency in Hz to a fractional MIDI note number.
// Returns NaN for non-positive frequencies.
func HzToMIDI(frequency float64) float64 {
	if frequency <= 0 {
		return math.NaN()
	}
	return float64(ReferenceMIDI) + 12.0*math.Log2(frequency/ReferenceFrequency)
}

// MIDIToHz converts a MIDI note number to its equal-temperament frequency
func MIDIToHz(midi int) float64 {
	return ReferenceFrequency * math.Pow(2.0, float64(midi-ReferenceMIDI)/12.0)
}

// NearestMIDI rounds a frequency to the nearest integer MIDI note.
// Returns -1 for non-positive frequencies.
func NearestMIDI(frequency float64) int {
	m := HzToMIDI(frequency)
	if math.IsNaN(m) {
		return -1
	}
	return int(math.Round(m))
}

// Cents returns the pitch difference between two frequencies in cents
// (100 cents per semitone). Positive when frequency is sharp of target.
func Cents(frequency, target float64) float64 {
	if frequency <= 0 || target <= 0 {
		return 0.0
	}
	return 1200.0 * math.Log2(frequency/target)
}

// NoteName returns a human-readable name for a MIDI note, e.g. "A4" for 69.
// MIDI 0 is C-1 in scientific pitch notation.
func NoteName(midi int) string {
	if midi < 0 {
		return ""
	}
	return fmt.Sprintf("%s%d", noteNames[midi%12], midi/12-1)
}
