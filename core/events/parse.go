package events

import (
	"encoding/json"
	"fmt"
)

// ParseServer decodes one raw frame from the realtime channel into a
// typed server event.
//
// Classification is total: every frame maps to exactly one event.
// Unrecognized "type" values come back as [Unclassified] with a nil
// error. A recognized type whose payload cannot be decoded also comes
// back as [Unclassified], with a non-nil error so the caller can log
// and skip it. Extra upstream fields are ignored.
func ParseServer(raw []byte) (ServerEvent, error) {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return NewUnclassified(""), fmt.Errorf("failed to parse event envelope: %w", err)
	}

	switch Kind(envelope.Type) {
	case KindAgentTranscriptDelta:
		var payload struct {
			ItemID string `json:"item_id"`
			Delta  string `json:"delta"`
		}
		if err := json.Unmarshal(raw, &payload); err != nil {
			return NewUnclassified(envelope.Type), fmt.Errorf("failed to parse agent transcript delta: %w", err)
		}
		return NewAgentTranscriptDelta(payload.ItemID, payload.Delta), nil

	case KindUserTranscriptDelta:
		var payload struct {
			ItemID string `json:"item_id"`
			Delta  string `json:"delta"`
		}
		if err := json.Unmarshal(raw, &payload); err != nil {
			return NewUnclassified(envelope.Type), fmt.Errorf("failed to parse user transcript delta: %w", err)
		}
		return NewUserTranscriptDelta(payload.ItemID, payload.Delta), nil

	case KindResponseDone:
		var payload struct {
			Response struct {
				ID     string       `json:"id"`
				Output []OutputItem `json:"output"`
			} `json:"response"`
		}
		if err := json.Unmarshal(raw, &payload); err != nil {
			return NewUnclassified(envelope.Type), fmt.Errorf("failed to parse response finalization: %w", err)
		}
		return NewResponseDone(payload.Response.ID, payload.Response.Output...), nil

	case KindUserTranscriptCompleted:
		var payload struct {
			ItemID     string `json:"item_id"`
			Transcript string `json:"transcript"`
		}
		if err := json.Unmarshal(raw, &payload); err != nil {
			return NewUnclassified(envelope.Type), fmt.Errorf("failed to parse transcription finalization: %w", err)
		}
		return NewUserTranscriptCompleted(payload.ItemID, payload.Transcript), nil

	default:
		return NewUnclassified(envelope.Type), nil
	}
}
