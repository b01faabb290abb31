package reconcile

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/voicelink-ai/voicelink-core/core/events"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ToolInvocation is one finalized function call extracted from a
// response output item. It is consumed immediately, never persisted.
type ToolInvocation struct {
	Name      string
	Arguments string
	CallID    string
}

// dispatchedCallIDLimit bounds the replay-detection window. Upstream
// replays of a finalization arrive adjacent in practice, so a small
// FIFO window is enough.
const dispatchedCallIDLimit = 128

type toolResultPayload struct {
	Response string `json:"response,omitempty"`
	Error    string `json:"error,omitempty"`
}

type dispatcher struct {
	tools []Tool
	send  func(events.ClientEvent) error

	dispatched      map[string]struct{}
	dispatchedOrder []string
}

func newDispatcher(send func(events.ClientEvent) error) *dispatcher {
	return &dispatcher{
		send:       send,
		dispatched: map[string]struct{}{},
	}
}

func (d *dispatcher) setTools(tools ...Tool) {
	d.tools = tools
}

func (d *dispatcher) appendTools(tools ...Tool) {
	d.tools = append(d.tools, tools...)
}

// dispatch executes the invocation at most once and always sends
// exactly one acknowledgement, success or failure, so the remote model
// is never left waiting on an unacknowledged call. Tools marked with
// response continuation additionally get one continuation request.
// A replayed call id is skipped entirely: no second side effect, no
// second acknowledgement.
func (d *dispatcher) dispatch(ctx context.Context, invocation ToolInvocation) {
	if d.alreadyDispatched(invocation.CallID) {
		logger.InfoContext(ctx, "skipping replayed tool call", "call_id", invocation.CallID)
		return
	}
	d.remember(invocation.CallID)

	ctx, span := tracer.Start(ctx, "execute tool")
	defer span.End()
	span.SetAttributes(
		attribute.String("tool.name", invocation.Name),
		attribute.String("tool.call_id", invocation.CallID),
	)

	tool, found := d.lookup(invocation.Name)

	var payload toolResultPayload
	if !found {
		err := fmt.Errorf("tool not found: %s", invocation.Name)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		payload.Error = err.Error()
	} else if response, err := tool.Execute(invocation.Arguments); err != nil {
		err = fmt.Errorf("failed to execute tool %q: %w", invocation.Name, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		payload.Error = err.Error()
	} else {
		payload.Response = response
	}

	output, err := json.Marshal(payload)
	if err != nil {
		// The payload is two strings; this cannot realistically fail,
		// but the call still has to be acknowledged.
		output = []byte(`{"error":"failed to encode tool result"}`)
	}

	if err := d.send(events.NewFunctionCallOutput(invocation.CallID, string(output))); err != nil {
		err = fmt.Errorf("failed to send tool result for call %q: %w", invocation.CallID, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	if found && tool.ContinuesResponse {
		if err := d.send(events.NewResponseCreate()); err != nil {
			err = fmt.Errorf("failed to request response continuation: %w", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}
}

func (d *dispatcher) lookup(name string) (Tool, bool) {
	for _, tool := range d.tools {
		if tool.Name == name {
			return tool, true
		}
	}
	return Tool{}, false
}

func (d *dispatcher) alreadyDispatched(callID string) bool {
	if callID == "" {
		return false
	}
	_, seen := d.dispatched[callID]
	return seen
}

func (d *dispatcher) remember(callID string) {
	if callID == "" {
		return
	}

	d.dispatched[callID] = struct{}{}
	d.dispatchedOrder = append(d.dispatchedOrder, callID)
	if len(d.dispatchedOrder) > dispatchedCallIDLimit {
		evicted := d.dispatchedOrder[0]
		d.dispatchedOrder = d.dispatchedOrder[1:]
		delete(d.dispatched, evicted)
	}
}
