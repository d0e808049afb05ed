package sound

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kbukum/voxd/component"
	"github.com/kbukum/voxd/logger"
	"github.com/kbukum/voxd/pipeline"
	"github.com/kbukum/voxd/process"
	"github.com/kbukum/voxd/storage"
)

// DefaultCueDir returns where synthesized beeps are cached.
func DefaultCueDir() string {
	return filepath.Join(storage.CacheDir(), "cues")
}

type cmdKind int

const (
	cmdPlay cmdKind = iota
	cmdLoopStart
	cmdLoopStop
)

type command struct {
	kind cmdKind
	cue  string
	key  string
	gap  time.Duration
}

// Worker plays cues from a dedicated goroutine so playback never blocks the
// pipeline loop. Implements pipeline.CuePlayer and component.Component.
type Worker struct {
	cfg    Config
	log    *logger.Logger
	cueDir string
	runner runFunc

	enabled  atomic.Bool
	volume   atomic.Int32
	disabled atomic.Bool // set when every player failed

	cmds   chan command
	stop   chan struct{}
	wg     sync.WaitGroup
	cancel context.CancelFunc

	// Worker-goroutine state.
	files  map[string]string
	player *player
	loops  map[string]chan struct{}
	loopWG sync.WaitGroup
}

var (
	_ pipeline.CuePlayer    = (*Worker)(nil)
	_ component.Component   = (*Worker)(nil)
	_ component.Describable = (*Worker)(nil)
)

// NewWorker creates the cue worker. cfg must have defaults applied.
func NewWorker(cfg Config, cueDir string, log *logger.Logger) *Worker {
	w := &Worker{
		cfg:    cfg,
		log:    log.WithComponent("sound"),
		cueDir: cueDir,
		runner: process.Run,
		cmds:   make(chan command, 16),
		stop:   make(chan struct{}),
		loops:  make(map[string]chan struct{}),
	}
	w.enabled.Store(cfg.Enabled == nil || *cfg.Enabled)
	w.volume.Store(int32(cfg.Volume))
	return w
}

// Name returns the component name.
func (w *Worker) Name() string { return "sound" }

// Start synthesizes missing cue files and launches the worker goroutine.
func (w *Worker) Start(ctx context.Context) error {
	files, err := EnsureCueFiles(w.cueDir, w.cfg.Files)
	if err != nil {
		return err
	}
	w.files = files
	w.player = newPlayer(w.cfg.Player, w.runner)

	runCtx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.wg.Add(1)
	go w.run(runCtx)
	return nil
}

// Stop ends all loops and waits for the worker goroutine.
func (w *Worker) Stop(ctx context.Context) error {
	w.cancel()
	close(w.stop)
	w.wg.Wait()
	return nil
}

// Health reports whether cue playback is still possible.
func (w *Worker) Health(ctx context.Context) component.Health {
	if w.disabled.Load() {
		return component.Health{Name: w.Name(), Status: component.StatusDegraded, Message: "no working audio player"}
	}
	return component.Health{Name: w.Name(), Status: component.StatusHealthy}
}

// Describe returns summary info for the bootstrap display.
func (w *Worker) Describe() component.Description {
	return component.Description{
		Name:    "Audio Cues",
		Type:    "sound",
		Details: fmt.Sprintf("volume=%d%% enabled=%t", w.volume.Load(), w.enabled.Load()),
	}
}

// SetEnabled toggles cue playback.
func (w *Worker) SetEnabled(enabled bool) { w.enabled.Store(enabled) }

// SetVolume sets the playback volume in percent, clamped to [0, 100].
func (w *Worker) SetVolume(percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	w.volume.Store(int32(percent))
}

// Play plays one cue. Never blocks; cues are dropped if the worker is
// saturated, since a late cue is worse than a missing one.
func (w *Worker) Play(kind string) {
	w.submit(command{kind: cmdPlay, cue: kind})
}

// StartLoop repeats the cue with the given gap until StopLoop(key).
func (w *Worker) StartLoop(key, kind string, gap time.Duration) {
	w.submit(command{kind: cmdLoopStart, cue: kind, key: key, gap: gap})
}

// StopLoop ends the loop started under key.
func (w *Worker) StopLoop(key string) {
	w.submit(command{kind: cmdLoopStop, key: key})
}

func (w *Worker) submit(cmd command) {
	select {
	case w.cmds <- cmd:
	case <-w.stop:
	default:
	}
}

func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()
	defer w.stopAllLoops()

	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-w.cmds:
			switch cmd.kind {
			case cmdPlay:
				w.playCue(ctx, cmd.cue)
			case cmdLoopStart:
				w.startLoop(ctx, cmd.key, cmd.cue, cmd.gap)
			case cmdLoopStop:
				w.stopLoop(cmd.key)
			}
		}
	}
}

func (w *Worker) playCue(ctx context.Context, kind string) {
	if !w.enabled.Load() || w.disabled.Load() {
		return
	}
	file, ok := w.files[kind]
	if !ok {
		w.log.Warn("Unknown cue kind", map[string]interface{}{"kind": kind})
		return
	}
	if err := w.player.play(ctx, file, int(w.volume.Load())); err != nil {
		if ctx.Err() != nil {
			return
		}
		if w.player.exhausted() && !w.disabled.Swap(true) {
			w.log.Warn("Disabling cues for this session", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}

func (w *Worker) startLoop(ctx context.Context, key, kind string, gap time.Duration) {
	if _, exists := w.loops[key]; exists {
		return
	}
	if gap <= 0 {
		gap = time.Second
	}
	done := make(chan struct{})
	w.loops[key] = done
	w.loopWG.Add(1)
	go func() {
		defer w.loopWG.Done()
		// Playback stays on the worker goroutine; the loop only paces
		// the repeats.
		w.submit(command{kind: cmdPlay, cue: kind})
		ticker := time.NewTicker(gap)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.submit(command{kind: cmdPlay, cue: kind})
			}
		}
	}()
}

func (w *Worker) stopLoop(key string) {
	if done, exists := w.loops[key]; exists {
		close(done)
		delete(w.loops, key)
	}
}

func (w *Worker) stopAllLoops() {
	for key := range w.loops {
		w.stopLoop(key)
	}
	w.loopWG.Wait()
}
