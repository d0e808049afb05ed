package transcription

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/voxd/audio"
	apperrors "github.com/kbukum/voxd/errors"
	"github.com/kbukum/voxd/logger"
	"github.com/kbukum/voxd/observability"
	"github.com/kbukum/voxd/provider"
	"github.com/kbukum/voxd/storage"
)

// InvokerConfig holds settings for the pipeline-facing transcription stage.
type InvokerConfig struct {
	// Backend names the provider in the registry.
	Backend string `yaml:"backend" mapstructure:"backend"`

	// Model is the model identifier reported in status and metrics.
	Model string `yaml:"model" mapstructure:"model"`

	// Language is the spoken language hint forwarded to the backend.
	Language string `yaml:"language" mapstructure:"language"`

	// KeepRecordings retains the WAV files under the data directory instead
	// of deleting them after transcription.
	KeepRecordings bool `yaml:"keep_recordings" mapstructure:"keep_recordings"`
}

// ApplyDefaults applies default values for unset fields.
func (c *InvokerConfig) ApplyDefaults() {
	if c.Backend == "" {
		c.Backend = "whispercpp"
	}
	if c.Language == "" {
		c.Language = "auto"
	}
}

// RecordingsDir returns where retained recordings are written.
func RecordingsDir() string {
	return filepath.Join(storage.DataDir(), "recordings")
}

// Invoker adapts a transcription backend to the pipeline: it turns sample
// buffers into WAV files, invokes the provider, and maps failures onto the
// shared error taxonomy.
type Invoker struct {
	cfg      InvokerConfig
	registry *provider.Registry[Provider]
	ready    func(ctx context.Context) error
	metrics  *observability.Metrics
	log      *logger.Logger
}

// NewInvoker creates an invoker over the registry. The configured backend
// must already be registered.
func NewInvoker(cfg InvokerConfig, registry *provider.Registry[Provider], metrics *observability.Metrics, log *logger.Logger) (*Invoker, error) {
	cfg.ApplyDefaults()
	if _, ok := registry.Get(cfg.Backend); !ok {
		return nil, fmt.Errorf("transcription: unknown backend %q (registered: %v)", cfg.Backend, registry.List())
	}
	return &Invoker{
		cfg:      cfg,
		registry: registry,
		metrics:  metrics,
		log:      log.WithComponent("transcription"),
	}, nil
}

// SetReadyCheck installs a model readiness gate consulted before every
// transcription. Used by the model manager so a half-downloaded model file
// fails the cycle with ModelNotReady instead of a backend crash.
func (i *Invoker) SetReadyCheck(ready func(ctx context.Context) error) {
	i.ready = ready
}

// Backend returns the active backend name.
func (i *Invoker) Backend() string { return i.cfg.Backend }

// Model returns the configured model identifier.
func (i *Invoker) Model() string { return i.cfg.Model }

// Transcribe converts a finished recording into text.
func (i *Invoker) Transcribe(ctx context.Context, rec *audio.Recording) (string, error) {
	return i.transcribe(ctx, rec.ID, rec.Samples, rec.SampleRate)
}

// TranscribeSamples converts a raw chunk of samples into text. Chunks use
// the pipeline's working sample rate.
func (i *Invoker) TranscribeSamples(ctx context.Context, samples []float32) (string, error) {
	return i.transcribe(ctx, uuid.NewString(), samples, audio.TargetRate)
}

func (i *Invoker) transcribe(ctx context.Context, id string, samples []float32, rate int) (string, error) {
	if len(samples) == 0 {
		return "", apperrors.EmptyAudio()
	}
	if i.ready != nil {
		if err := i.ready(ctx); err != nil {
			return "", err
		}
	}

	backend, ok := i.registry.Get(i.cfg.Backend)
	if !ok {
		return "", apperrors.BackendFailed(i.cfg.Backend, fmt.Errorf("backend not registered"))
	}

	wavPath, cleanup, err := i.writeWAV(id, samples, rate)
	if err != nil {
		return "", apperrors.BackendFailed(i.cfg.Backend, err)
	}
	defer cleanup()

	start := time.Now()
	resp, err := backend.Transcribe(ctx, TranscriptionRequest{
		AudioPath: wavPath,
		Language:  i.cfg.Language,
	})
	duration := time.Since(start)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", apperrors.Cancelled("transcription")
		}
		return "", apperrors.BackendFailed(i.cfg.Backend, err)
	}

	i.metrics.RecordTranscribe(ctx, i.cfg.Backend, i.cfg.Model, duration)
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", apperrors.EmptyAudio().WithDetail("reason", "backend returned no speech")
	}

	i.log.Debug("Transcription finished", map[string]interface{}{
		"backend":  i.cfg.Backend,
		"duration": duration.String(),
		"chars":    len(text),
	})
	return text, nil
}

// writeWAV materializes the samples for the backend. Retained recordings go
// to the data directory; throwaway ones to a temp file removed by cleanup.
func (i *Invoker) writeWAV(id string, samples []float32, rate int) (string, func(), error) {
	if i.cfg.KeepRecordings {
		dir := RecordingsDir()
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", nil, err
		}
		path := filepath.Join(dir, id+".wav")
		if err := audio.WriteWAV(path, samples, rate); err != nil {
			return "", nil, err
		}
		return path, func() {}, nil
	}

	f, err := os.CreateTemp("", "voxd-*.wav")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	f.Close()
	if err := audio.WriteWAV(path, samples, rate); err != nil {
		os.Remove(path)
		return "", nil, err
	}
	return path, func() { os.Remove(path) }, nil
}
