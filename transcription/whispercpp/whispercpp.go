// Package whispercpp implements transcription.Provider over the local
// whisper-cli binary from whisper.cpp. It is the default backend: no warm
// server, one subprocess per transcription.
package whispercpp

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/kbukum/voxd/process"
	"github.com/kbukum/voxd/provider"
	"github.com/kbukum/voxd/transcription"
	"github.com/kbukum/voxd/util"
)

// ProviderName is the registered name for the whisper.cpp CLI provider.
const ProviderName = "whispercpp"

const (
	defaultBinary      = "whisper-cli"
	defaultLanguage    = "auto"
	defaultTimeout     = 120 * time.Second
	defaultGracePeriod = 3 * time.Second
)

// Config holds configuration for the whisper.cpp CLI provider.
type Config struct {
	// Binary is the whisper-cli executable, resolved via PATH when relative.
	Binary string `json:"binary" yaml:"binary" mapstructure:"binary"`
	// ModelPath is the ggml model file passed with every invocation.
	ModelPath string `json:"model_path" yaml:"model_path" mapstructure:"model_path"`
	// Language is the spoken language hint ("auto" lets the model detect).
	Language string `json:"language,omitempty" yaml:"language" mapstructure:"language"`
	// Threads caps the worker threads. 0 leaves the binary's default.
	Threads int `json:"threads,omitempty" yaml:"threads" mapstructure:"threads"`
	// Timeout bounds one transcription run.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
	// ExtraArgs are appended verbatim, for flags this config does not model.
	ExtraArgs []string `json:"extra_args,omitempty" yaml:"extra_args" mapstructure:"extra_args"`
}

// Provider implements transcription.Provider by shelling out to whisper-cli.
type Provider struct {
	cfg Config
	run func(ctx context.Context, cmd process.Command) (*process.Result, error)
}

// NewProvider creates a whisper.cpp CLI transcription provider.
func NewProvider(cfg Config) *Provider {
	if cfg.Binary == "" {
		cfg.Binary = defaultBinary
	}
	if cfg.Language == "" {
		cfg.Language = defaultLanguage
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Provider{cfg: cfg, run: process.Run}
}

// Factory returns a provider.Factory that creates whisper.cpp providers
// from a generic config map.
func Factory() provider.Factory[transcription.Provider] {
	return func(cfg map[string]any) (transcription.Provider, error) {
		wc := Config{}
		if v, ok := cfg["binary"].(string); ok {
			wc.Binary = v
		}
		if v, ok := cfg["model_path"].(string); ok {
			wc.ModelPath = v
		}
		if v, ok := cfg["language"].(string); ok {
			wc.Language = v
		}
		if v, ok := cfg["threads"].(int); ok {
			wc.Threads = v
		}
		if v, ok := cfg["timeout"].(time.Duration); ok {
			wc.Timeout = v
		}
		return NewProvider(wc), nil
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable checks that the binary resolves and the model file exists.
func (p *Provider) IsAvailable(_ context.Context) bool {
	if _, err := exec.LookPath(p.cfg.Binary); err != nil {
		return false
	}
	if p.cfg.ModelPath == "" {
		return false
	}
	info, err := os.Stat(p.cfg.ModelPath)
	return err == nil && info.Size() > 0
}

// Transcribe runs whisper-cli over the audio file and returns the parsed
// plain-text output. The request's Model field, when set, overrides the
// configured model file path.
func (p *Provider) Transcribe(ctx context.Context, req transcription.TranscriptionRequest) (*transcription.TranscriptionResponse, error) {
	model := p.cfg.ModelPath
	if req.Model != "" {
		model = req.Model
	}
	if model == "" {
		return nil, fmt.Errorf("whispercpp: no model file configured")
	}
	lang := p.cfg.Language
	if req.Language != "" {
		lang = req.Language
	}

	args := []string{
		"-m", model,
		"-f", req.AudioPath,
		"-l", lang,
		"-nt", // no timestamps: plain text on stdout
		"-np", // no progress chatter on stderr
	}
	if p.cfg.Threads > 0 {
		args = append(args, "-t", strconv.Itoa(p.cfg.Threads))
	}
	args = append(args, p.cfg.ExtraArgs...)

	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	result, err := p.run(ctx, process.Command{
		Binary:      p.cfg.Binary,
		Args:        args,
		GracePeriod: defaultGracePeriod,
	})
	if err != nil {
		if result != nil && len(result.Stderr) > 0 {
			return nil, fmt.Errorf("whispercpp: %w: %s", err, util.TruncateRunes(string(result.Stderr), 300))
		}
		return nil, fmt.Errorf("whispercpp: %w", err)
	}

	text := util.StripNoiseAnnotations(string(result.Stdout))
	return &transcription.TranscriptionResponse{
		Text:     text,
		Language: lang,
		Duration: result.Duration.Seconds(),
	}, nil
}
