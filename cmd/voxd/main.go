// voxd is a hotkey-driven local dictation daemon: press the hotkey, speak,
// press again (or let the silence monitor stop the take), and the transcript
// lands in the focused application. Bars and GUIs integrate through the
// status file, the SSE stream, and the localhost control API.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/gofrs/flock"

	"github.com/kbukum/voxd/bootstrap"
	"github.com/kbukum/voxd/config"
	"github.com/kbukum/voxd/storage"
)

const lockFilename = "voxd.lock"

func main() {
	cfg, err := config.Load[Config]("voxd")
	if err != nil {
		fmt.Fprintf(os.Stderr, "voxd: %v\n", err)
		os.Exit(1)
	}

	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "voxd: %v\n", err)
		os.Exit(1)
	}

	lock, err := acquireInstanceLock()
	if err != nil {
		app.Logger.Error("Startup refused", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer releaseInstanceLock(lock)

	if err := wire(app); err != nil {
		app.Logger.Error("Wiring failed", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	if err := app.Run(context.Background()); err != nil {
		app.Logger.Error("Daemon exited with error", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}
}

// acquireInstanceLock takes the single-instance flock under the runtime
// dir. A second voxd reports the holder's pid and refuses to start.
func acquireInstanceLock() (*flock.Flock, error) {
	if err := storage.EnsureDir(storage.RuntimeDir()); err != nil {
		return nil, fmt.Errorf("create runtime dir: %w", err)
	}

	path := filepath.Join(storage.RuntimeDir(), lockFilename)
	lock := flock.New(path)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire instance lock %s: %w", path, err)
	}
	if !locked {
		holder := "unknown pid"
		if data, rerr := os.ReadFile(path); rerr == nil && len(data) > 0 {
			holder = "pid " + strings.TrimSpace(string(data))
		}
		return nil, fmt.Errorf("another voxd instance is already running (%s, lock %s)", holder, path)
	}

	// Record our pid for the next instance's error message. The flock, not
	// the contents, is the actual mutual exclusion.
	_ = os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o644)
	return lock, nil
}

func releaseInstanceLock(lock *flock.Flock) {
	_ = lock.Unlock()
	_ = os.Remove(lock.Path())
}

// sigusr1 and sigusr2 are the bar-integration signals: toggle dictation and
// open the settings file without going through the API.
var (
	sigToggle       = syscall.SIGUSR1
	sigOpenSettings = syscall.SIGUSR2
)
