package reconcile

import "sync"

// Turn is one logical user-utterance/agent-response exchange. An empty
// string means the side has not produced text yet; either side may stay
// empty for the whole turn.
type Turn struct {
	ID        string
	UserText  string
	AgentText string
}

// Ledger is the ordered conversation history, newest turn first. The
// engine is its only writer; readers get copied snapshots.
type Ledger struct {
	mu    sync.RWMutex
	turns []Turn
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// AppendUserDelta concatenates fragment onto the user text of the turn
// with the given id, inserting a new turn at the head when the id is
// not present yet. A fragment is never dropped because the turn or the
// field did not exist.
func (l *Ledger) AppendUserDelta(turnID, fragment string) {
	if fragment == "" {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if i := l.indexOf(turnID); i >= 0 {
		l.turns[i].UserText += fragment
		return
	}
	l.insertHead(Turn{ID: turnID, UserText: fragment})
}

// AppendAgentDelta is the agent-side counterpart of AppendUserDelta.
func (l *Ledger) AppendAgentDelta(turnID, fragment string) {
	if fragment == "" {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if i := l.indexOf(turnID); i >= 0 {
		l.turns[i].AgentText += fragment
		return
	}
	l.insertHead(Turn{ID: turnID, AgentText: fragment})
}

// FinalizeUserText replaces the turn's user text with the authoritative
// transcript from the transcription model. The delta stream and the
// completed transcript can disagree; completed wins. Finalizing a turn
// that does not exist is a no-op, there is nothing to correct.
func (l *Ledger) FinalizeUserText(turnID, transcript string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(turnID)
	if i < 0 {
		return false
	}
	l.turns[i].UserText = transcript
	return true
}

// FinalizeAgentMessage replaces the turn's agent text with the final
// transcript and re-keys the turn to the upstream output item id, which
// becomes the turn's public identifier once the response completes.
func (l *Ledger) FinalizeAgentMessage(turnID, outputItemID, transcript string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(turnID)
	if i < 0 {
		return false
	}
	l.turns[i].AgentText = transcript
	if outputItemID != "" {
		l.turns[i].ID = outputItemID
	}
	return true
}

// Snapshot returns a copy of the ledger, newest turn first.
func (l *Ledger) Snapshot() []Turn {
	l.mu.RLock()
	defer l.mu.RUnlock()

	turns := make([]Turn, len(l.turns))
	copy(turns, l.turns)
	return turns
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.turns)
}

func (l *Ledger) indexOf(turnID string) int {
	if turnID == "" {
		return -1
	}
	for i, turn := range l.turns {
		if turn.ID == turnID {
			return i
		}
	}
	return -1
}

func (l *Ledger) insertHead(turn Turn) {
	l.turns = append([]Turn{turn}, l.turns...)
}
