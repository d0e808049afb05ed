// Package pipeline implements the dictation orchestrator.
//
// The Controller owns the single PipelineState of the daemon. It consumes
// one event channel — hotkey presses, UNIX signals, control-API calls,
// silence-monitor auto-stops, and stage completions all land on the same
// mailbox — so every transition is linearized without a state mutex.
//
// Transition logic is the pure function Next(state, event), which returns
// the successor state and the entry actions to execute. The Controller only
// interprets those actions through the narrow ports in Ports; everything
// that can take long (transcription, LLM refinement, delivery) runs in its
// own goroutine and reports completion back through the channel, keeping
// the loop responsive while inference is in flight.
//
// A toggle received while a cycle is past the Recording state is rejected:
// the orchestrator is not re-entrant, which is what guarantees at most one
// live recording session and unambiguous ownership of the sample buffer.
// Only daemon shutdown cancels an in-flight transcription.
package pipeline
