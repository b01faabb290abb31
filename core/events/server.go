package events

const (
	// KindAgentTranscriptDelta identifies incremental agent-side transcript fragments.
	KindAgentTranscriptDelta Kind = "response.audio_transcript.delta"
	// KindUserTranscriptDelta identifies incremental user-side transcript fragments.
	KindUserTranscriptDelta Kind = "conversation.item.input_audio_transcription.delta"
	// KindResponseDone identifies the speech model's response finalization.
	KindResponseDone Kind = "response.done"
	// KindUserTranscriptCompleted identifies the transcription model's finalization.
	KindUserTranscriptCompleted Kind = "conversation.item.input_audio_transcription.completed"
)

const (
	OutputItemTypeMessage      = "message"
	OutputItemTypeFunctionCall = "function_call"
)

// AgentTranscriptDelta carries an incremental fragment of the agent's
// spoken-response transcript.
type AgentTranscriptDelta struct {
	Base
	ItemID string
	Delta  string
}

// NewAgentTranscriptDelta creates an agent transcript delta event.
func NewAgentTranscriptDelta(itemID, delta string) AgentTranscriptDelta {
	return AgentTranscriptDelta{Base: NewBase(KindAgentTranscriptDelta), ItemID: itemID, Delta: delta}
}

// UserTranscriptDelta carries an incremental fragment of the user's
// utterance transcript.
type UserTranscriptDelta struct {
	Base
	ItemID string
	Delta  string
}

// NewUserTranscriptDelta creates a user transcript delta event.
func NewUserTranscriptDelta(itemID, delta string) UserTranscriptDelta {
	return UserTranscriptDelta{Base: NewBase(KindUserTranscriptDelta), ItemID: itemID, Delta: delta}
}

// ResponseDone marks the speech model's finalization of a response and
// carries its completed output items.
type ResponseDone struct {
	Base
	ResponseID string
	Output     []OutputItem
}

// NewResponseDone creates a response finalization event.
func NewResponseDone(responseID string, output ...OutputItem) ResponseDone {
	return ResponseDone{Base: NewBase(KindResponseDone), ResponseID: responseID, Output: output}
}

// UserTranscriptCompleted marks the transcription model's finalization
// and carries the authoritative full user transcript.
type UserTranscriptCompleted struct {
	Base
	ItemID     string
	Transcript string
}

// NewUserTranscriptCompleted creates a transcription finalization event.
func NewUserTranscriptCompleted(itemID, transcript string) UserTranscriptCompleted {
	return UserTranscriptCompleted{Base: NewBase(KindUserTranscriptCompleted), ItemID: itemID, Transcript: transcript}
}

// Unclassified wraps any frame the engine does not consume. It exists so
// classification stays total: unknown kinds are skipped, not rejected.
type Unclassified struct {
	Base
	Type string
}

// NewUnclassified creates an event for an unconsumed frame type.
func NewUnclassified(rawType string) Unclassified {
	return Unclassified{Base: NewBase(Kind(rawType)), Type: rawType}
}

// OutputItem is one completed item of a finalized response. Type
// discriminates between a message and a function call; the remaining
// fields are populated accordingly.
type OutputItem struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Status string `json:"status,omitempty"`

	// Message fields.
	Role    string        `json:"role,omitempty"`
	Content []ContentPart `json:"content,omitempty"`

	// Function call fields. Arguments is an opaque JSON payload.
	Name      string `json:"name,omitempty"`
	CallID    string `json:"call_id,omitempty"`
	Arguments string `json:"arguments,omitempty"`
}

type ContentPart struct {
	Type       string `json:"type"`
	Transcript string `json:"transcript,omitempty"`
}

// Transcript returns the first non-empty content transcript of a
// message item, or "" for function calls and empty messages.
func (i OutputItem) Transcript() string {
	for _, part := range i.Content {
		if part.Transcript != "" {
			return part.Transcript
		}
	}
	return ""
}
