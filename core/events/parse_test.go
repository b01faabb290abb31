package events

import (
	"strings"
	"testing"
)

func TestParseServerAgentTranscriptDelta(t *testing.T) {
	raw := []byte(`{"type":"response.audio_transcript.delta","item_id":"item_1","delta":"Hello"}`)

	event, err := ParseServer(raw)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	delta, ok := event.(AgentTranscriptDelta)
	if !ok {
		t.Fatalf("expected AgentTranscriptDelta, got %T", event)
	}
	if delta.ItemID != "item_1" {
		t.Errorf("expected item id %q, got %q", "item_1", delta.ItemID)
	}
	if delta.Delta != "Hello" {
		t.Errorf("expected delta %q, got %q", "Hello", delta.Delta)
	}
	if delta.Kind() != KindAgentTranscriptDelta {
		t.Errorf("expected kind %q, got %q", KindAgentTranscriptDelta, delta.Kind())
	}
}

func TestParseServerUserTranscriptDelta(t *testing.T) {
	raw := []byte(`{"type":"conversation.item.input_audio_transcription.delta","item_id":"item_2","delta":"How"}`)

	event, err := ParseServer(raw)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	delta, ok := event.(UserTranscriptDelta)
	if !ok {
		t.Fatalf("expected UserTranscriptDelta, got %T", event)
	}
	if delta.Delta != "How" {
		t.Errorf("expected delta %q, got %q", "How", delta.Delta)
	}
}

func TestParseServerResponseDoneMessage(t *testing.T) {
	raw := []byte(`{
		"type": "response.done",
		"response": {
			"id": "resp_1",
			"output": [{
				"id": "item_3",
				"type": "message",
				"role": "assistant",
				"content": [
					{"type": "audio"},
					{"type": "audio", "transcript": "I'm doing well."}
				]
			}]
		}
	}`)

	event, err := ParseServer(raw)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	done, ok := event.(ResponseDone)
	if !ok {
		t.Fatalf("expected ResponseDone, got %T", event)
	}
	if done.ResponseID != "resp_1" {
		t.Errorf("expected response id %q, got %q", "resp_1", done.ResponseID)
	}
	if len(done.Output) != 1 {
		t.Fatalf("expected 1 output item, got %d", len(done.Output))
	}
	if done.Output[0].Type != OutputItemTypeMessage {
		t.Errorf("expected message item, got %q", done.Output[0].Type)
	}
	if transcript := done.Output[0].Transcript(); transcript != "I'm doing well." {
		t.Errorf("expected transcript %q, got %q", "I'm doing well.", transcript)
	}
}

func TestParseServerResponseDoneFunctionCall(t *testing.T) {
	raw := []byte(`{
		"type": "response.done",
		"response": {
			"id": "resp_2",
			"output": [{
				"id": "item_4",
				"type": "function_call",
				"name": "navigate",
				"call_id": "call_1",
				"arguments": "{\"page\":\"/about\"}"
			}]
		}
	}`)

	event, err := ParseServer(raw)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	done, ok := event.(ResponseDone)
	if !ok {
		t.Fatalf("expected ResponseDone, got %T", event)
	}
	item := done.Output[0]
	if item.Type != OutputItemTypeFunctionCall {
		t.Errorf("expected function call item, got %q", item.Type)
	}
	if item.Name != "navigate" || item.CallID != "call_1" {
		t.Errorf("unexpected function call item: %+v", item)
	}
	if item.Arguments != `{"page":"/about"}` {
		t.Errorf("unexpected arguments: %q", item.Arguments)
	}
	if transcript := item.Transcript(); transcript != "" {
		t.Errorf("expected empty transcript for function call, got %q", transcript)
	}
}

func TestParseServerUserTranscriptCompleted(t *testing.T) {
	raw := []byte(`{"type":"conversation.item.input_audio_transcription.completed","item_id":"item_5","transcript":"How are you?"}`)

	event, err := ParseServer(raw)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	completed, ok := event.(UserTranscriptCompleted)
	if !ok {
		t.Fatalf("expected UserTranscriptCompleted, got %T", event)
	}
	if completed.Transcript != "How are you?" {
		t.Errorf("expected transcript %q, got %q", "How are you?", completed.Transcript)
	}
}

func TestParseServerUnknownTypeIsUnclassified(t *testing.T) {
	raw := []byte(`{"type":"response.audio.delta","delta":"base64..."}`)

	event, err := ParseServer(raw)
	if err != nil {
		t.Fatalf("expected no error for unknown type, got %v", err)
	}

	unclassified, ok := event.(Unclassified)
	if !ok {
		t.Fatalf("expected Unclassified, got %T", event)
	}
	if unclassified.Type != "response.audio.delta" {
		t.Errorf("expected raw type to be preserved, got %q", unclassified.Type)
	}
}

func TestParseServerMalformedEnvelope(t *testing.T) {
	event, err := ParseServer([]byte(`not json`))
	if err == nil {
		t.Fatal("expected an error for a malformed frame")
	}
	if _, ok := event.(Unclassified); !ok {
		t.Fatalf("expected Unclassified, got %T", event)
	}
}

func TestParseServerRecognizedTypeWithBadPayload(t *testing.T) {
	raw := []byte(`{"type":"response.done","response":"not an object"}`)

	event, err := ParseServer(raw)
	if err == nil {
		t.Fatal("expected an error for an undecodable payload")
	}
	if !strings.Contains(err.Error(), "response finalization") {
		t.Errorf("expected error to name the event, got %v", err)
	}
	if _, ok := event.(Unclassified); !ok {
		t.Fatalf("expected Unclassified, got %T", event)
	}
}
