package pitch

import (
	"github.com/RyanBlaney/sonido-vocal/algorithms/common"
)

// Gate is an RMS-based silence gate. Frames whose energy falls below the
// floor are forced to an unvoiced, zero-confidence estimate regardless of
// what the autocorrelation would report, so the estimator never hallucinates
// a pitch out of noise floor artifacts.
type Gate struct {
	rmsFloor float64
}

// NewGate creates a gate with the given RMS floor
func NewGate(rmsFloor float64) *Gate {
	return &Gate{rmsFloor: rmsFloor}
}

// SetFloor updates the RMS floor
func (g *Gate) SetFloor(rmsFloor float64) {
	g.rmsFloor = rmsFloor
}

// Floor returns the current RMS floor
func (g *Gate) Floor() float64 {
	return g.rmsFloor
}

// Measure returns the RMS level of the frame
func (g *Gate) Measure(frame []float64) float64 {
	return common.RMS(frame)
}

// IsSilent reports whether the frame energy is below the floor
func (g *Gate) IsSilent(frame []float64) bool {
	return common.RMS(frame) < g.rmsFloor
}

// Apply gates an estimate: if the frame is silent the estimate is replaced
// with an unvoiced, zero-confidence one.
func (g *Gate) Apply(frame []float64, est Estimate) Estimate {
	if g.IsSilent(frame) {
		return Estimate{}
	}
	return est
}
