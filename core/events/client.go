package events

import "github.com/google/uuid"

const (
	// KindSessionUpdate identifies the one-time session configuration message.
	KindSessionUpdate Kind = "session.update"
	// KindConversationItemCreate identifies tool result acknowledgements.
	KindConversationItemCreate Kind = "conversation.item.create"
	// KindResponseCreate identifies continuation requests.
	KindResponseCreate Kind = "response.create"
)

const ConversationItemTypeFunctionCallOutput = "function_call_output"

// ClientEvent is one outbound message for the realtime channel. The
// concrete types marshal directly to the wire shape.
type ClientEvent interface {
	ClientKind() Kind
}

// SessionUpdate configures the remote session: tool declarations,
// system instructions, transcription-model selection and the response
// token budget.
type SessionUpdate struct {
	Type    string  `json:"type"`
	EventID string  `json:"event_id,omitempty"`
	Session Session `json:"session"`
}

func (SessionUpdate) ClientKind() Kind { return KindSessionUpdate }

type Session struct {
	Tools                   []ToolDeclaration   `json:"tools,omitempty"`
	Instructions            string              `json:"instructions,omitempty"`
	InputAudioTranscription *AudioTranscription `json:"input_audio_transcription,omitempty"`
	MaxResponseOutputTokens int                 `json:"max_response_output_tokens,omitempty"`
}

type AudioTranscription struct {
	Model string `json:"model,omitempty"`
}

// ToolDeclaration is the wire form of one callable tool. Parameters
// holds a JSON-schema object describing the arguments.
type ToolDeclaration struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Parameters  any    `json:"parameters,omitempty"`
}

// NewSessionUpdate creates a session configuration message with a fresh
// event id.
func NewSessionUpdate(session Session) SessionUpdate {
	return SessionUpdate{Type: string(KindSessionUpdate), EventID: uuid.NewString(), Session: session}
}

// ConversationItemCreate inserts an item into the remote conversation.
// The engine only ever inserts function call outputs.
type ConversationItemCreate struct {
	Type    string           `json:"type"`
	EventID string           `json:"event_id,omitempty"`
	Item    ConversationItem `json:"item"`
}

func (ConversationItemCreate) ClientKind() Kind { return KindConversationItemCreate }

type ConversationItem struct {
	Type   string `json:"type"`
	CallID string `json:"call_id,omitempty"`
	Output string `json:"output,omitempty"`
}

// NewFunctionCallOutput creates a tool result acknowledgement for the
// given call id. output is the JSON-encoded result payload.
func NewFunctionCallOutput(callID, output string) ConversationItemCreate {
	return ConversationItemCreate{
		Type:    string(KindConversationItemCreate),
		EventID: uuid.NewString(),
		Item: ConversationItem{
			Type:   ConversationItemTypeFunctionCallOutput,
			CallID: callID,
			Output: output,
		},
	}
}

// ResponseCreate asks the remote model to produce its next response.
type ResponseCreate struct {
	Type    string `json:"type"`
	EventID string `json:"event_id,omitempty"`
}

func (ResponseCreate) ClientKind() Kind { return KindResponseCreate }

// NewResponseCreate creates a continuation request.
func NewResponseCreate() ResponseCreate {
	return ResponseCreate{Type: string(KindResponseCreate), EventID: uuid.NewString()}
}
