package storage

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigDir_HonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	if got := ConfigDir(); got != filepath.Join("/custom/config", AppName) {
		t.Errorf("unexpected config dir: %q", got)
	}
}

func TestConfigDir_FallsBackToHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/tester")
	if got := ConfigDir(); got != "/home/tester/.config/voxd" {
		t.Errorf("unexpected config dir: %q", got)
	}
}

func TestDataDir_FallsBackToHome(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("HOME", "/home/tester")
	if got := DataDir(); got != "/home/tester/.local/share/voxd" {
		t.Errorf("unexpected data dir: %q", got)
	}
}

func TestCacheDir_HonorsXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/custom/cache")
	if got := CacheDir(); got != filepath.Join("/custom/cache", AppName) {
		t.Errorf("unexpected cache dir: %q", got)
	}
}

func TestRuntimeDir_HonorsXDG(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
	if got := RuntimeDir(); got != filepath.Join("/run/user/1000", AppName) {
		t.Errorf("unexpected runtime dir: %q", got)
	}
}

func TestRuntimeDir_FallsBackToTemp(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "")
	got := RuntimeDir()
	if !strings.Contains(got, AppName+"-") {
		t.Errorf("expected per-user temp fallback, got %q", got)
	}
}

func TestEnsureDir_Creates(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a", "b")
	if err := EnsureDir(target); err != nil {
		t.Fatalf("EnsureDir failed: %v", err)
	}
	if err := EnsureDir(target); err != nil {
		t.Errorf("EnsureDir on existing dir should succeed: %v", err)
	}
}
