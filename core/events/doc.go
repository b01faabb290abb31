// Package events defines the typed realtime wire event contract.
//
// Server events arrive on the realtime channel as JSON objects
// discriminated by a "type" field. [ParseServer] maps a raw frame onto
// exactly one typed event; frames the engine does not consume come back
// as [Unclassified] and are skipped, never rejected, so the protocol can
// grow without breaking consumers.
//
// Consumed server event kinds:
//
//   - AgentTranscriptDelta (response.audio_transcript.delta): incremental
//     transcript fragment of the speech model's spoken response.
//   - UserTranscriptDelta (conversation.item.input_audio_transcription.delta):
//     incremental transcript fragment of the user's utterance, produced by
//     the transcription model.
//   - ResponseDone (response.done): the speech model finalized its
//     response; carries the completed output item, which is either a
//     message (authoritative agent transcript) or a function call.
//   - UserTranscriptCompleted
//     (conversation.item.input_audio_transcription.completed): the
//     transcription model finalized the utterance; carries the
//     authoritative full user transcript, which may differ from the
//     accumulated deltas.
//
// Client events are the messages sent back over the same channel:
//
//   - SessionUpdate (session.update): one-time session configuration with
//     tool declarations, instructions and transcription-model selection.
//   - ConversationItemCreate (conversation.item.create): function call
//     output acknowledging a dispatched tool call.
//   - ResponseCreate (response.create): zero-payload request for the
//     model to continue generating.
//
// Every client event self-assigns a unique event id on construction.
package events
