package sound

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/kbukum/voxd/logger"
	"github.com/kbukum/voxd/process"
	"github.com/kbukum/voxd/testutil"
)

func TestSynthesizeBeep(t *testing.T) {
	samples := synthesizeBeep(880)
	if len(samples) != int(beepRate*beepDuration.Seconds()) {
		t.Fatalf("sample count = %d", len(samples))
	}
	// Fades keep the edges near silence.
	if samples[0] != 0 {
		t.Fatalf("first sample = %g, want 0", samples[0])
	}
	var peak float32
	for _, s := range samples {
		if s > peak {
			peak = s
		}
	}
	if peak < 0.2 || peak > float32(beepGain)+0.01 {
		t.Fatalf("peak amplitude = %g", peak)
	}
}

func TestEnsureCueFiles(t *testing.T) {
	dir := t.TempDir()
	files, err := EnsureCueFiles(dir, nil)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	for _, kind := range []string{CueStart, CueProcessing, CueComplete, CueFail} {
		path, ok := files[kind]
		if !ok {
			t.Fatalf("no file for cue %q", kind)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("cue %q: %v", kind, err)
		}
		if info.Size() == 0 {
			t.Fatalf("cue %q is empty", kind)
		}
	}

	// A second call reuses the synthesized files.
	before, _ := os.Stat(files[CueStart])
	again, err := EnsureCueFiles(dir, nil)
	if err != nil {
		t.Fatalf("ensure again: %v", err)
	}
	after, _ := os.Stat(again[CueStart])
	if !before.ModTime().Equal(after.ModTime()) {
		t.Fatal("cue file regenerated on second run")
	}
}

func TestEnsureCueFiles_Override(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(dir, "my-start.wav")
	if err := os.WriteFile(custom, []byte("riff"), 0o640); err != nil {
		t.Fatal(err)
	}
	files, err := EnsureCueFiles(filepath.Join(dir, "cues"), map[string]string{CueStart: custom})
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if files[CueStart] != custom {
		t.Fatalf("start cue = %q, want the override", files[CueStart])
	}
	if files[CueFail] == custom {
		t.Fatal("override leaked to another kind")
	}
}

func TestEnsureCueFiles_MissingOverrideFallsBack(t *testing.T) {
	dir := t.TempDir()
	files, err := EnsureCueFiles(dir, map[string]string{CueStart: filepath.Join(dir, "absent.wav")})
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if files[CueStart] != filepath.Join(dir, CueStart+".wav") {
		t.Fatalf("start cue = %q, want the synthesized fallback", files[CueStart])
	}
}

// recordingRunner captures playback commands instead of spawning anything.
type recordingRunner struct {
	mu   sync.Mutex
	cmds []process.Command
	err  error
}

func (r *recordingRunner) run(ctx context.Context, cmd process.Command) (*process.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cmds = append(r.cmds, cmd)
	if r.err != nil {
		return nil, r.err
	}
	return &process.Result{}, nil
}

func (r *recordingRunner) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cmds)
}

func newTestWorker(t *testing.T, runner *recordingRunner) *Worker {
	t.Helper()
	cfg := Config{Player: "true"} // /usr/bin/true exists everywhere
	cfg.ApplyDefaults()
	w := NewWorker(cfg, t.TempDir(), logger.NewDefault("test"))
	w.runner = runner.run
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(func() {
		if err := w.Stop(context.Background()); err != nil {
			t.Errorf("stop: %v", err)
		}
	})
	return w
}

func TestWorker_PlayInvokesPlayer(t *testing.T) {
	runner := &recordingRunner{}
	w := newTestWorker(t, runner)

	w.Play(CueStart)
	testutil.WaitFor(t, time.Second, func() bool { return runner.count() == 1 }, "cue playback")

	runner.mu.Lock()
	defer runner.mu.Unlock()
	if runner.cmds[0].Binary != "true" {
		t.Fatalf("binary = %q", runner.cmds[0].Binary)
	}
}

func TestWorker_DisabledPlaysNothing(t *testing.T) {
	runner := &recordingRunner{}
	w := newTestWorker(t, runner)
	w.SetEnabled(false)

	w.Play(CueStart)
	w.Play(CueFail)
	time.Sleep(50 * time.Millisecond)

	if n := runner.count(); n != 0 {
		t.Fatalf("played %d cues while disabled", n)
	}
}

func TestWorker_LoopRepeatsUntilStopped(t *testing.T) {
	runner := &recordingRunner{}
	w := newTestWorker(t, runner)

	w.StartLoop("cycle", CueProcessing, 20*time.Millisecond)
	testutil.WaitFor(t, time.Second, func() bool { return runner.count() >= 3 }, "loop repeats")

	w.StopLoop("cycle")
	testutil.WaitFor(t, time.Second, func() bool {
		// Stable count means the loop has stopped.
		before := runner.count()
		time.Sleep(60 * time.Millisecond)
		return runner.count() == before
	}, "loop stop")
}

func TestWorker_SetVolumeClamps(t *testing.T) {
	runner := &recordingRunner{}
	w := newTestWorker(t, runner)

	w.SetVolume(150)
	if got := w.volume.Load(); got != 100 {
		t.Fatalf("volume = %d, want 100", got)
	}
	w.SetVolume(-5)
	if got := w.volume.Load(); got != 0 {
		t.Fatalf("volume = %d, want 0", got)
	}
}

func TestWorker_AllPlayersFailingDisablesCues(t *testing.T) {
	runner := &recordingRunner{err: context.DeadlineExceeded}
	w := newTestWorker(t, runner)

	w.Play(CueStart)
	testutil.WaitFor(t, time.Second, func() bool { return w.disabled.Load() }, "session disable")

	// Further cues are dropped without touching the player.
	before := runner.count()
	w.Play(CueComplete)
	time.Sleep(50 * time.Millisecond)
	if runner.count() != before {
		t.Fatal("cue played after the session was disabled")
	}
}
