package pipeline

// EventKind identifies a pipeline event.
type EventKind int

const (
	// EventToggle requests start-or-stop of a recording. Hotkey presses,
	// SIGUSR1, and control-API calls all produce this event.
	EventToggle EventKind = iota
	// EventAutoStop is raised by the silence monitor and is equivalent to
	// a toggle while recording.
	EventAutoStop
	// EventOpenSettings opens the settings file. Accepted in every state.
	EventOpenSettings

	// eventCaptureError reports the capture stream dying mid-recording.
	eventCaptureError
	// eventTranscript reports the transcription stage finishing.
	eventTranscript
	// eventRefined reports the post-processing stage finishing. Refinement
	// failures are absorbed before this event, so it always carries text.
	eventRefined
	// eventDelivered reports the delivery stage finishing.
	eventDelivered
	// eventReset returns the pipeline from Failed to Idle after the error
	// status has been visible for a moment.
	eventReset
)

// String returns the event kind name for logs.
func (k EventKind) String() string {
	switch k {
	case EventToggle:
		return "toggle"
	case EventAutoStop:
		return "auto_stop"
	case EventOpenSettings:
		return "open_settings"
	case eventCaptureError:
		return "capture_error"
	case eventTranscript:
		return "transcript"
	case eventRefined:
		return "refined"
	case eventDelivered:
		return "delivered"
	case eventReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Event is one message on the controller's mailbox. External triggers and
// stage completions share the same channel so transitions are linearized.
type Event struct {
	Kind EventKind

	// Source names the producer of an external trigger ("hotkey",
	// "signal", "api", "vad") for logging.
	Source string

	// Text carries the working transcript on eventTranscript and
	// eventRefined.
	Text string

	// Err carries a stage failure.
	Err error
}
