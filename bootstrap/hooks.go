package bootstrap

import (
	"context"
	"fmt"
	"os"
)

// Hook is a lifecycle callback that runs during application startup or shutdown.
// Services register hooks to perform setup/teardown without bootstrap knowing
// about specific infrastructure.
type Hook func(ctx context.Context) error

// OnStart registers a hook that runs after all components are started (Phase 1)
// but before the application is marked as ready.
func (a *App[C]) OnStart(hooks ...Hook) {
	a.onStart = append(a.onStart, hooks...)
}

// OnReady registers a hook that runs after the application passes its ready check
// and is about to begin accepting triggers.
func (a *App[C]) OnReady(hooks ...Hook) {
	a.onReady = append(a.onReady, hooks...)
}

// OnStop registers a hook that runs during graceful shutdown before components
// are stopped. Use this for cleanup tasks like flushing history or resetting
// the status file.
func (a *App[C]) OnStop(hooks ...Hook) {
	a.onStop = append(a.onStop, hooks...)
}

// OnSignal registers a handler for a non-terminating OS signal such as
// syscall.SIGUSR1. While Run blocks, matching signals are dispatched to their
// handlers instead of shutting the daemon down. Handlers run on the signal
// goroutine; keep them short and non-blocking.
func (a *App[C]) OnSignal(sig os.Signal, fn func()) {
	if a.signalHooks == nil {
		a.signalHooks = make(map[os.Signal][]func())
	}
	a.signalHooks[sig] = append(a.signalHooks[sig], fn)
}

// runHooks executes a slice of hooks sequentially, returning the first error.
func runHooks(ctx context.Context, hooks []Hook) error {
	for i, h := range hooks {
		if err := h(ctx); err != nil {
			return fmt.Errorf("hook %d failed: %w", i, err)
		}
	}
	return nil
}
