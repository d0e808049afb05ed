package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "voxd"

// ConfigDir returns the configuration directory, following the XDG base
// directory spec: $XDG_CONFIG_HOME/voxd, falling back to ~/.config/voxd.
// The directory is not created.
func ConfigDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DataDir returns the data directory ($XDG_DATA_HOME/voxd, falling back to
// ~/.local/share/voxd). Model files and refinement history live here.
func DataDir() string {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// CacheDir returns the cache directory ($XDG_CACHE_HOME/voxd, falling back
// to ~/.cache/voxd). Synthesized cue files live here.
func CacheDir() string {
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

// RuntimeDir returns the runtime directory ($XDG_RUNTIME_DIR/voxd, falling
// back to a per-user directory under the system temp dir). The status file
// and the instance lock live here.
func RuntimeDir() string {
	if base := os.Getenv("XDG_RUNTIME_DIR"); base != "" {
		return filepath.Join(base, AppName)
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("%s-%d", AppName, os.Getuid()))
}

// EnsureDir creates the directory and its parents if they do not exist.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o700); err != nil {
		return fmt.Errorf("storage: create directory %s: %w", path, err)
	}
	return nil
}

func xdgDir(envVar, homeFallback string) string {
	if base := os.Getenv(envVar); base != "" {
		return filepath.Join(base, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppName)
	}
	return filepath.Join(home, homeFallback, AppName)
}
