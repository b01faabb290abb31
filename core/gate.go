package reconcile

// completionGate tracks the two independent finalizations of the
// currently open turn. The speech model and the transcription model
// share no session identifier, so turn retirement can only be inferred
// from having seen both of their terminal events, in either order.
//
// Both flags reset exactly when a new turn opens or when both become
// true. If one side's finalization never arrives the turn stays open
// and keeps absorbing deltas; that is the defined degraded behavior,
// not an error.
type completionGate struct {
	responseDone      bool
	transcriptionDone bool
}

func (g *completionGate) markResponseDone() {
	g.responseDone = true
}

func (g *completionGate) markTranscriptionDone() {
	g.transcriptionDone = true
}

func (g *completionGate) isComplete() bool {
	return g.responseDone && g.transcriptionDone
}

func (g *completionGate) reset() {
	g.responseDone = false
	g.transcriptionDone = false
}
