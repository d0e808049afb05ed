// Package postproc runs transcripts through an optional LLM refinement
// pass. The pass is best-effort by contract: any failure (endpoint down,
// breaker open, timeout, empty completion) hands the unrefined text back to
// the pipeline, which delivers it as-is.
package postproc

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	apperrors "github.com/kbukum/voxd/errors"
	"github.com/kbukum/voxd/httpclient"
	"github.com/kbukum/voxd/llm"
	"github.com/kbukum/voxd/llm/ollama"
	"github.com/kbukum/voxd/llm/openai"
	"github.com/kbukum/voxd/logger"
	"github.com/kbukum/voxd/observability"
	"github.com/kbukum/voxd/provider"
	"github.com/kbukum/voxd/resilience"
	"github.com/kbukum/voxd/util"
)

// completer is the provider shape the refiner talks to.
type completer = provider.RequestResponse[llm.CompletionRequest, llm.CompletionResponse]

// Refiner implements the pipeline refinement stage over a chat-completion
// provider. A circuit breaker keeps a dead model server from adding a full
// timeout to every dictation cycle.
type Refiner struct {
	cfg     Config
	backend completer
	breaker *resilience.CircuitBreaker
	history *History
	metrics *observability.Metrics
	log     *logger.Logger

	mu        sync.Mutex
	skipUntil time.Time
}

// NewRefiner creates a refiner from config. The provider is built from the
// configured dialect; history may be nil to disable recording.
func NewRefiner(cfg Config, history *History, metrics *observability.Metrics, log *logger.Logger) (*Refiner, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	backend, err := newBackend(cfg)
	if err != nil {
		return nil, err
	}
	backend = provider.Chain(
		provider.WithTracing[llm.CompletionRequest, llm.CompletionResponse]("voxd"),
		provider.WithLogging[llm.CompletionRequest, llm.CompletionResponse](log.WithComponent("postproc-llm")),
	)(backend)
	return newRefiner(cfg, backend, history, metrics, log), nil
}

// newRefiner wires a refiner over an existing provider. Split out so tests
// can inject a fake backend.
func newRefiner(cfg Config, backend completer, history *History, metrics *observability.Metrics, log *logger.Logger) *Refiner {
	return &Refiner{
		cfg:     cfg,
		backend: backend,
		history: history,
		metrics: metrics,
		log:     log.WithComponent("postproc"),
		breaker: resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			Name:             "postproc",
			MaxFailures:      breakerFailures,
			Timeout:          breakerCooldown,
			HalfOpenMaxCalls: 1,
		}),
	}
}

func newBackend(cfg Config) (completer, error) {
	switch cfg.Dialect {
	case DialectOpenAI:
		return openai.New(openai.Config{
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Timeout:     cfg.Timeout,
		}), nil
	case DialectOllama:
		return llm.NewWithDialect(&ollama.Dialect{}, llm.Config{
			Name:        "postproc-llm",
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Timeout:     cfg.Timeout,
		})
	default:
		return nil, fmt.Errorf("postproc: unknown dialect %q", cfg.Dialect)
	}
}

// Enabled reports whether the refinement pass is active.
func (r *Refiner) Enabled() bool { return r.cfg.Enabled }

// Preset returns the active preset name.
func (r *Refiner) Preset() string { return r.cfg.Preset }

// Refine runs one refinement round-trip. The second return reports whether
// the text was actually refined; on any failure the input comes back
// unchanged and the cycle continues.
func (r *Refiner) Refine(ctx context.Context, text string) (string, bool) {
	if !r.cfg.Enabled || strings.TrimSpace(text) == "" {
		return text, false
	}
	if wait := r.skipRemaining(); wait > 0 {
		r.log.Debug("Skipping refinement inside rate-limit window", map[string]interface{}{
			"remaining": wait.String(),
		})
		return text, false
	}

	prompt, ok := r.cfg.prompt()
	if !ok {
		return text, false
	}
	input := util.TruncateRunes(text, maxPromptRunes)

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	var out string
	err := r.breaker.Execute(func() error {
		var cerr error
		out, cerr = llm.Complete(ctx, r.backend, prompt, input)
		if cerr != nil {
			return cerr
		}
		if strings.TrimSpace(out) == "" {
			return fmt.Errorf("postproc: model returned an empty completion")
		}
		return nil
	})
	duration := time.Since(start)

	if err != nil {
		if hint := httpclient.RetryAfterHint(err); hint > 0 {
			r.deferUntil(time.Now().Add(hint))
			r.log.Warn("Model endpoint rate-limited; pausing refinement", map[string]interface{}{
				"retry_after": hint.String(),
			})
		}
		appErr := apperrors.PostProcessFailed(err)
		r.log.Warn(appErr.Message, map[string]interface{}{
			"preset": r.cfg.Preset,
			"error":  err.Error(),
		})
		r.metrics.RecordPostproc(ctx, r.cfg.Preset, "error", duration)
		return text, false
	}

	out = strings.TrimSpace(out)
	r.metrics.RecordPostproc(ctx, r.cfg.Preset, "ok", duration)
	r.log.Debug("Transcript refined", map[string]interface{}{
		"preset":   r.cfg.Preset,
		"duration": duration.String(),
		"chars_in": len(input),
	})
	r.record(input, out)
	return out, true
}

// History returns the refinement history, or nil when recording is off.
func (r *Refiner) History() *History { return r.history }

func (r *Refiner) record(input, output string) {
	if r.history == nil {
		return
	}
	entry := HistoryEntry{
		Timestamp: time.Now().UTC(),
		Preset:    r.cfg.Preset,
		Input:     input,
		Output:    output,
	}
	if err := r.history.Append(entry); err != nil {
		r.log.Warn("Failed to write refinement history", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (r *Refiner) skipRemaining() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if until := time.Until(r.skipUntil); until > 0 {
		return until
	}
	return 0
}

func (r *Refiner) deferUntil(t time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.After(r.skipUntil) {
		r.skipUntil = t
	}
}
