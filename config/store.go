package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kbukum/voxd/process"
	"github.com/kbukum/voxd/storage"
)

// Store persists the daemon's configuration file and opens it for editing.
// Saves are atomic so a bar script or a second voxd start never reads a
// half-written file.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a settings store for the given config file path.
// An empty path resolves to config.yaml in the XDG config dir.
func NewStore(path string) *Store {
	if path == "" {
		path = filepath.Join(storage.ConfigDir(), "config.yaml")
	}
	return &Store{path: path}
}

// Path returns the config file path the store writes to.
func (s *Store) Path() string {
	return s.path
}

// Save marshals cfg to YAML and atomically replaces the config file.
func (s *Store) Save(cfg interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal settings: %w", err)
	}
	if err := storage.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("config: save settings: %w", err)
	}
	return nil
}

// Open launches the desktop handler (xdg-open) on the config file. The
// handler forks the actual editor, so a short timeout covers the launch.
func (s *Store) Open(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := process.Run(ctx, process.Command{
		Binary: "xdg-open",
		Args:   []string{s.path},
	})
	if err != nil {
		return fmt.Errorf("config: open settings file: %w", err)
	}
	return nil
}
