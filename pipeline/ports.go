package pipeline

import (
	"context"
	"time"

	"github.com/kbukum/voxd/audio"
)

// The controller drives its collaborators through these narrow ports. The
// concrete implementations live in the audio, vad, transcription,
// dictionary, postproc, output, status, sound, and config packages; wiring
// happens in the daemon entrypoint.

// Capturer starts and stops audio capture. StopCapture transfers ownership
// of the sample buffer to the caller; the capture side never touches it
// again.
type Capturer interface {
	StartCapture(ctx context.Context) error
	StopCapture() (*audio.Recording, error)
}

// SilenceMonitor watches the live capture buffer while recording. It calls
// autoStop when trailing silence exceeds the configured window and chunk at
// pause boundaries when long-form chunking is enabled. Both callbacks are
// invoked from the monitor's goroutine; Stop returns after the goroutine
// has exited.
type SilenceMonitor interface {
	Start(ctx context.Context, autoStop func(reason string), chunk func(samples []float32, reason string))
	Stop()
}

// Transcriber converts a finished recording, or a raw chunk of samples,
// into text.
type Transcriber interface {
	Transcribe(ctx context.Context, rec *audio.Recording) (string, error)
	TranscribeSamples(ctx context.Context, samples []float32) (string, error)
}

// Substituter applies the user dictionary. It is total: on any load problem
// it degrades to the identity function.
type Substituter interface {
	Apply(text string) string
}

// Refiner runs the optional LLM pass. It never fails the cycle: the second
// return reports whether the text was actually refined, and on any error
// the input comes back unchanged.
type Refiner interface {
	Refine(ctx context.Context, text string) (string, bool)
}

// Deliverer dispatches the final text to the clipboard and, when
// configured, the foreground application.
type Deliverer interface {
	Deliver(ctx context.Context, text string) error
}

// StatusPublisher writes the machine-readable status document on every
// transition. failure carries the cause on transitions into StateFailed and
// is empty otherwise.
type StatusPublisher interface {
	Publish(st State, failure string)
}

// CuePlayer plays the transition cues. StartLoop repeats the cue with the
// given gap until StopLoop; cue kinds are "start", "processing",
// "complete", and "fail".
type CuePlayer interface {
	Play(kind string)
	StartLoop(key, kind string, gap time.Duration)
	StopLoop(key string)
}

// SettingsOpener opens the settings file for the user.
type SettingsOpener interface {
	Open(ctx context.Context) error
}

// Ports bundles the controller's collaborators. Refine may be nil when LLM
// post-processing is disabled; everything else is required.
type Ports struct {
	Capture    Capturer
	Monitor    SilenceMonitor
	Transcribe Transcriber
	Substitute Substituter
	Refine     Refiner
	Deliver    Deliverer
	Status     StatusPublisher
	Cues       CuePlayer
	Settings   SettingsOpener
}
