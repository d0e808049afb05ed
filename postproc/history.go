package postproc

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kbukum/voxd/storage"
)

// HistoryFilename is the refinement history file name under the data
// directory.
const HistoryFilename = "llm_history.yaml"

// HistoryPath returns the refinement history location under the user data
// directory.
func HistoryPath() string {
	return filepath.Join(storage.DataDir(), HistoryFilename)
}

// HistoryEntry records one refinement round-trip, oldest first on disk.
type HistoryEntry struct {
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
	Preset    string    `yaml:"preset" json:"preset"`
	Input     string    `yaml:"input" json:"input"`
	Output    string    `yaml:"output" json:"output"`
}

type historyFile struct {
	Entries []HistoryEntry `yaml:"entries"`
}

// History keeps the last few refinements in a YAML file so users can
// recover a transcript the model mangled.
type History struct {
	path  string
	limit int

	mu      sync.Mutex
	loaded  bool
	entries []HistoryEntry
}

// NewHistory creates a history over the file at path, retaining at most
// limit entries.
func NewHistory(path string, limit int) *History {
	return &History{path: path, limit: limit}
}

// Append records one refinement and rewrites the file, dropping the oldest
// entries beyond the retention limit.
func (h *History) Append(entry HistoryEntry) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.load(); err != nil {
		// A corrupt history file is not worth failing a cycle over; start
		// fresh and let the write below replace it.
		h.entries = nil
		h.loaded = true
	}
	h.entries = append(h.entries, entry)
	if h.limit > 0 && len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
	data, err := yaml.Marshal(historyFile{Entries: h.entries})
	if err != nil {
		return err
	}
	return storage.WriteFileAtomic(h.path, data, 0o600)
}

// Entries returns the retained refinements, oldest first.
func (h *History) Entries() ([]HistoryEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.load(); err != nil {
		return nil, err
	}
	out := make([]HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out, nil
}

func (h *History) load() error {
	if h.loaded {
		return nil
	}
	data, err := os.ReadFile(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			h.loaded = true
			return nil
		}
		return err
	}
	var file historyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return err
	}
	h.entries = file.Entries
	if h.limit > 0 && len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
	h.loaded = true
	return nil
}
