// Package reconcile merges the event streams of a speech response
// model and a speech-to-text transcription model into one ordered
// conversation transcript, and dispatches the tool calls the response
// model emits.
//
// The two upstream subsystems share no turn or session identifier and
// interleave their delta and finalization events in arbitrary order.
// The engine correlates them with a locally generated turn id, opened
// on the first fragment of a turn and retired only once both
// subsystems have finalized, so the transcript never duplicates,
// overwrites, or bleeds across turns.
package reconcile

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/voicelink-ai/voicelink-core/core/events"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Gateway is the only path by which the engine transmits. Send is
// fire-and-forget: the engine never waits on delivery and never
// retries, the transport owns write serialization and retry policy.
type Gateway interface {
	Send(event events.ClientEvent) error
}

// Engine owns the transcript ledger, the turn correlation state and
// the tool dispatcher. Events are applied strictly in arrival order;
// HandleServerEvent serializes callers with a mutex so there is no
// concurrent mutation of ledger or gate.
type Engine struct {
	mu sync.Mutex

	ledger       *Ledger
	gate         completionGate
	activeTurnID string

	dispatcher *dispatcher
	gateway    Gateway

	instructions       string
	transcriptionModel string
	maxResponseTokens  int

	onTranscriptUpdated func(turns []Turn)

	baseContext context.Context
}

func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		ledger:             NewLedger(),
		baseContext:        context.Background(),
		instructions:       DefaultInstructions,
		transcriptionModel: DefaultTranscriptionModel,
		maxResponseTokens:  DefaultMaxResponseTokens,
	}
	e.dispatcher = newDispatcher(e.sendClientEvent)

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Start sends the one-time session configuration. Call it once the
// gateway's channel is ready; ctx becomes the base context for tool
// calls triggered by later events.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.baseContext = ctx
	if err := e.sendClientEvent(e.sessionUpdate()); err != nil {
		recordedErr := fmt.Errorf("failed to send session configuration: %w", err)
		span := trace.SpanFromContext(ctx)
		span.RecordError(recordedErr)
		span.SetStatus(codes.Error, recordedErr.Error())
		return recordedErr
	}
	return nil
}

// HandleRaw classifies one raw frame and applies it. Malformed frames
// are logged and skipped; they never mutate state.
func (e *Engine) HandleRaw(raw []byte) {
	event, err := events.ParseServer(raw)
	if err != nil {
		logger.Warn("skipping malformed event", "error", err)
		return
	}
	e.HandleServerEvent(event)
}

// HandleServerEvent applies one classified event to the ledger, the
// completion gate and the dispatcher.
func (e *Engine) HandleServerEvent(event events.ServerEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch t := event.(type) {
	case events.AgentTranscriptDelta:
		if t.Delta == "" {
			return
		}
		e.ensureOpenTurn()
		e.ledger.AppendAgentDelta(e.activeTurnID, t.Delta)
		e.notifyTranscriptUpdated()

	case events.UserTranscriptDelta:
		if t.Delta == "" {
			return
		}
		e.ensureOpenTurn()
		e.ledger.AppendUserDelta(e.activeTurnID, t.Delta)
		e.notifyTranscriptUpdated()

	case events.ResponseDone:
		// The completed response carries at most one consumable output
		// item; a response without output does not count as a
		// finalization.
		if len(t.Output) == 0 {
			return
		}
		e.applyResponseOutput(t.Output[0])
		e.gate.markResponseDone()
		e.retireTurnIfComplete()

	case events.UserTranscriptCompleted:
		if t.Transcript == "" {
			return
		}
		if e.ledger.FinalizeUserText(e.activeTurnID, t.Transcript) {
			e.notifyTranscriptUpdated()
		}
		e.gate.markTranscriptionDone()
		e.retireTurnIfComplete()

	case events.Unclassified:
		// Not consumed by the engine.
	}
}

// Transcript returns a snapshot of the conversation, newest turn
// first. Either side of a turn may still be empty.
func (e *Engine) Transcript() []Turn {
	return e.ledger.Snapshot()
}

// Reset discards the in-flight turn and completion state, e.g. when
// the underlying channel closed. Retained history stays readable; no
// outbound message is produced.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.activeTurnID = ""
	e.gate.reset()
}

func (e *Engine) applyResponseOutput(item events.OutputItem) {
	switch item.Type {
	case events.OutputItemTypeMessage:
		transcript := item.Transcript()
		if transcript == "" {
			return
		}
		if e.ledger.FinalizeAgentMessage(e.activeTurnID, item.ID, transcript) {
			// The upstream item id is the turn's public identifier from
			// here on; later events for this turn must find it again.
			if item.ID != "" {
				e.activeTurnID = item.ID
			}
			e.notifyTranscriptUpdated()
		}
	case events.OutputItemTypeFunctionCall:
		e.dispatcher.dispatch(e.baseContext, ToolInvocation{
			Name:      item.Name,
			Arguments: item.Arguments,
			CallID:    item.CallID,
		})
	}
}

// ensureOpenTurn allocates a fresh locally generated turn id on the
// first delta of a turn. Neither upstream exposes an identifier usable
// across both subsystems, so the id is never derived from payloads.
func (e *Engine) ensureOpenTurn() {
	if e.activeTurnID != "" {
		return
	}
	e.activeTurnID = uuid.NewString()
	e.gate.reset()
}

// retireTurnIfComplete releases the active turn once both subsystems
// have finalized, in either order. The next qualifying delta then
// opens an independent turn.
func (e *Engine) retireTurnIfComplete() {
	if !e.gate.isComplete() {
		return
	}
	e.activeTurnID = ""
	e.gate.reset()
}

func (e *Engine) sendClientEvent(event events.ClientEvent) error {
	if e.gateway == nil {
		return fmt.Errorf("no gateway configured")
	}
	return e.gateway.Send(event)
}

func (e *Engine) notifyTranscriptUpdated() {
	if e.onTranscriptUpdated == nil {
		return
	}
	e.onTranscriptUpdated(e.ledger.Snapshot())
}
