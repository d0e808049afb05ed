package pipeline

// State is the pipeline state. Exactly one State value exists per daemon,
// owned by the Controller goroutine; every mutation goes through Next.
type State int

const (
	// StateIdle means no cycle is in flight.
	StateIdle State = iota
	// StateRecording means audio capture is running.
	StateRecording
	// StateProcessing means the recording is being transcribed.
	StateProcessing
	// StatePostProcessing means dictionary substitution and optional LLM
	// refinement are running.
	StatePostProcessing
	// StateDelivering means the final text is being dispatched.
	StateDelivering
	// StateFailed is the transient failure state before returning to idle.
	StateFailed
)

// String returns the lowercase state name used in logs and the status file.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateProcessing:
		return "processing"
	case StatePostProcessing:
		return "postprocessing"
	case StateDelivering:
		return "delivering"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Busy reports whether a toggle would be rejected in this state.
// The orchestrator is not re-entrant mid-cycle: once the recording has been
// handed to transcription, a new toggle must not start a second session.
func (s State) Busy() bool {
	switch s {
	case StateProcessing, StatePostProcessing, StateDelivering, StateFailed:
		return true
	default:
		return false
	}
}
