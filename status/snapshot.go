// Package status publishes the machine-readable pipeline status document
// consumed by bar widgets and other external readers, and mirrors every
// snapshot to SSE subscribers.
package status

import (
	"fmt"

	"github.com/kbukum/voxd/pipeline"
)

// Snapshot is the status document wire format. Field values are stable:
// external widgets key their styling off class, alt, and color.
type Snapshot struct {
	Text    string `json:"text"`
	Tooltip string `json:"tooltip"`
	Class   string `json:"class"`
	Alt     string `json:"alt"`
	Color   string `json:"color"`
}

// For builds the snapshot for a pipeline state. model names the active
// transcription model for the tooltip; failure carries the error message on
// StateFailed.
func For(st pipeline.State, model, failure string) Snapshot {
	var snap Snapshot
	switch st {
	case pipeline.StateRecording:
		snap = Snapshot{Text: "●", Tooltip: "Recording", Class: "recording", Alt: "rec", Color: "#dd3333"}
	case pipeline.StateProcessing:
		snap = Snapshot{Text: "●", Tooltip: "Transcribing", Class: "processing", Alt: "proc", Color: "#d0c000"}
	case pipeline.StatePostProcessing, pipeline.StateDelivering:
		snap = Snapshot{Text: "●", Tooltip: "Working", Class: "busy", Alt: "busy", Color: "#6c757d"}
	case pipeline.StateFailed:
		tooltip := "Dictation failed"
		if failure != "" {
			tooltip = fmt.Sprintf("Dictation failed: %s", failure)
		}
		snap = Snapshot{Text: "✕", Tooltip: tooltip, Class: "error", Alt: "error", Color: "#cc3333"}
	default:
		snap = Snapshot{Text: "○", Tooltip: "Ready", Class: "idle", Alt: "idle", Color: "#22aa22"}
	}
	if model != "" && st != pipeline.StateFailed {
		snap.Tooltip = fmt.Sprintf("%s (%s)", snap.Tooltip, model)
	}
	return snap
}
