package pipeline

// Action is an entry action the Controller must execute after a transition.
// Actions never mutate pipeline state themselves; stages report back through
// the event channel.
type Action int

const (
	// ActionStartRecording starts audio capture and the silence monitor.
	ActionStartRecording Action = iota
	// ActionBeginProcessing stops capture, hands the buffer to the
	// transcription stage, and starts the processing loop cue.
	ActionBeginProcessing
	// ActionBeginPostProcess runs dictionary substitution and, when
	// enabled, LLM refinement on the transcript.
	ActionBeginPostProcess
	// ActionBeginDeliver dispatches the final text.
	ActionBeginDeliver
	// ActionFinishCycle stops the loop cue, plays the complete cue, and
	// publishes idle.
	ActionFinishCycle
	// ActionFail stops the loop cue, plays the fail cue, logs the cause,
	// publishes the error status, and schedules the reset back to idle.
	ActionFail
	// ActionReset publishes idle after the transient error status.
	ActionReset
	// ActionOpenSettings opens the settings file. No state change.
	ActionOpenSettings
	// ActionRejectToggle records a toggle refused mid-cycle.
	ActionRejectToggle
)

// Transition is the outcome of feeding one event to the state machine.
type Transition struct {
	State   State
	Actions []Action
}

// Next is the pipeline transition function. It is pure and total: for every
// (state, event) pair it returns the successor state and the entry actions,
// and it never panics. All pipeline semantics live here so they can be
// tested without goroutines; the Controller only executes what Next decides.
func Next(s State, ev Event) Transition {
	// Settings may be opened in any state and never affect the cycle.
	if ev.Kind == EventOpenSettings {
		return Transition{State: s, Actions: []Action{ActionOpenSettings}}
	}

	switch s {
	case StateIdle:
		if ev.Kind == EventToggle {
			return Transition{State: StateRecording, Actions: []Action{ActionStartRecording}}
		}

	case StateRecording:
		switch ev.Kind {
		case EventToggle, EventAutoStop:
			return Transition{State: StateProcessing, Actions: []Action{ActionBeginProcessing}}
		case eventCaptureError:
			return Transition{State: StateFailed, Actions: []Action{ActionFail}}
		}

	case StateProcessing:
		switch ev.Kind {
		case eventTranscript:
			if ev.Err != nil {
				return Transition{State: StateFailed, Actions: []Action{ActionFail}}
			}
			return Transition{State: StatePostProcessing, Actions: []Action{ActionBeginPostProcess}}
		case EventToggle:
			return Transition{State: s, Actions: []Action{ActionRejectToggle}}
		}

	case StatePostProcessing:
		switch ev.Kind {
		case eventRefined:
			// Refinement failures were already absorbed; the event always
			// carries deliverable text.
			return Transition{State: StateDelivering, Actions: []Action{ActionBeginDeliver}}
		case EventToggle:
			return Transition{State: s, Actions: []Action{ActionRejectToggle}}
		}

	case StateDelivering:
		switch ev.Kind {
		case eventDelivered:
			return Transition{State: StateIdle, Actions: []Action{ActionFinishCycle}}
		case EventToggle:
			return Transition{State: s, Actions: []Action{ActionRejectToggle}}
		}

	case StateFailed:
		switch ev.Kind {
		case eventReset:
			return Transition{State: StateIdle, Actions: []Action{ActionReset}}
		case EventToggle:
			return Transition{State: s, Actions: []Action{ActionRejectToggle}}
		}
	}

	// Everything else is a no-op: stale stage completions after a failure,
	// auto-stops outside Recording, resets outside Failed.
	return Transition{State: s}
}
