package model

// State is a model's lifecycle position.
type State string

const (
	StateNotPresent  State = "not_present"
	StateDownloading State = "downloading"
	StateVerifying   State = "verifying"
	StateReady       State = "ready"
	StateFailed      State = "failed"
)

// Status is one model's externally visible state, served by the control API
// and pushed over SSE while a download runs.
type Status struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	SizeLabel   string `json:"size_label"`
	State       State  `json:"state"`
	// Percent is the download progress, 0-100. Only meaningful while
	// downloading; -1 when the total size is unknown.
	Percent int `json:"percent,omitempty"`
	// Bytes is how much of the file has been fetched so far.
	Bytes int64 `json:"bytes,omitempty"`
	// Total is the expected file size, 0 when the server did not say.
	Total int64 `json:"total,omitempty"`
	// Error describes the last failure, empty otherwise.
	Error string `json:"error,omitempty"`
}
