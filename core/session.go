package reconcile

import (
	"github.com/jinzhu/copier"
	"github.com/voicelink-ai/voicelink-core/core/events"
	"github.com/voicelink-ai/voicelink-core/internal/utils"
)

const (
	// DefaultTranscriptionModel is the speech-to-text model selected
	// when no override is configured.
	DefaultTranscriptionModel = "gpt-4o-mini-transcribe"
	// DefaultMaxResponseTokens caps spoken responses to keep turns
	// short.
	DefaultMaxResponseTokens = 300
)

// DefaultInstructions is the system instruction string sent when no
// override is configured.
const DefaultInstructions = `
You are a software assistant. Respond in English.

Tool:
- navigate(page: "/", "/about") → switch app page.

Use the tool only when user requests a page change. Otherwise, answer normally.
`

// sessionUpdate assembles the one-time session configuration message:
// the declared tool schemas, the system instructions, the
// transcription-model selection and the response token budget.
func (e *Engine) sessionUpdate() events.SessionUpdate {
	var declarations []events.ToolDeclaration
	if len(e.dispatcher.tools) > 0 {
		copier.Copy(&declarations, e.dispatcher.tools)
		for i := range declarations {
			declarations[i].Type = "function"
		}
	}

	session := events.Session{
		Tools:                   declarations,
		Instructions:            e.instructions,
		MaxResponseOutputTokens: e.maxResponseTokens,
	}
	if e.transcriptionModel != "" {
		session.InputAudioTranscription = utils.Ptr(events.AudioTranscription{Model: e.transcriptionModel})
	}

	return events.NewSessionUpdate(session)
}
