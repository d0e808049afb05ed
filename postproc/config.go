package postproc

import (
	"fmt"
	"time"
)

// Supported provider dialects.
const (
	// DialectOpenAI speaks the OpenAI chat wire format. Ollama exposes a
	// compatible surface under /v1, so this is the default.
	DialectOpenAI = "openai"
	// DialectOllama speaks the native Ollama /api/chat format.
	DialectOllama = "ollama"
)

const (
	defaultModel        = "llama3.1:8b"
	defaultTemperature  = 0.2
	defaultMaxTokens    = 1024
	defaultTimeout      = 30 * time.Second
	minTimeout          = 3 * time.Second
	maxTimeout          = 120 * time.Second
	defaultHistoryLimit = 20

	// maxPromptRunes caps the transcript length sent to the model.
	maxPromptRunes = 4000

	// breakerFailures consecutive errors open the circuit for breakerCooldown.
	breakerFailures = 3
	breakerCooldown = 60 * time.Second
)

// Config holds LLM refinement settings.
type Config struct {
	// Enabled turns the refinement pass on. Off by default: dictation works
	// without a local model server.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Preset names the active system prompt.
	Preset string `yaml:"preset" mapstructure:"preset"`

	// Presets holds user-defined prompts, merged over the built-ins. A user
	// preset with a built-in name replaces it.
	Presets map[string]string `yaml:"presets" mapstructure:"presets"`

	// Dialect selects the provider wire format.
	Dialect string `yaml:"dialect" mapstructure:"dialect"`

	// BaseURL is the provider endpoint. Empty uses the dialect's default,
	// which points at a local Ollama instance.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Model is the model identifier sent with every request.
	Model string `yaml:"model" mapstructure:"model"`

	// Temperature is the sampling temperature.
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`

	// MaxTokens caps the completion length.
	MaxTokens int `yaml:"max_tokens" mapstructure:"max_tokens"`

	// Timeout bounds one refinement round-trip. Clamped to [3s, 120s].
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// HistoryLimit is how many refinements the history file retains.
	HistoryLimit int `yaml:"history_limit" mapstructure:"history_limit"`
}

// ApplyDefaults applies default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Preset == "" {
		c.Preset = PresetCleanup
	}
	if c.Dialect == "" {
		c.Dialect = DialectOpenAI
	}
	if c.Model == "" {
		c.Model = defaultModel
	}
	if c.Temperature == 0 {
		c.Temperature = defaultTemperature
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = defaultMaxTokens
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
	if c.Timeout < minTimeout {
		c.Timeout = minTimeout
	}
	if c.Timeout > maxTimeout {
		c.Timeout = maxTimeout
	}
	if c.HistoryLimit == 0 {
		c.HistoryLimit = defaultHistoryLimit
	}
}

// Validate validates the refinement configuration.
func (c *Config) Validate() error {
	switch c.Dialect {
	case DialectOpenAI, DialectOllama:
	default:
		return fmt.Errorf("postproc: unknown dialect %q", c.Dialect)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("postproc: temperature %v out of range [0, 2]", c.Temperature)
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("postproc: max_tokens must not be negative")
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("postproc: history_limit must not be negative")
	}
	if _, ok := c.prompt(); !ok {
		return fmt.Errorf("postproc: unknown preset %q", c.Preset)
	}
	for name, prompt := range c.Presets {
		if name == "" {
			return fmt.Errorf("postproc: preset with empty name")
		}
		if prompt == "" {
			return fmt.Errorf("postproc: preset %q has an empty prompt", name)
		}
	}
	return nil
}

// prompt resolves the active preset's system prompt. User presets shadow
// built-ins of the same name.
func (c *Config) prompt() (string, bool) {
	if p, ok := c.Presets[c.Preset]; ok {
		return p, true
	}
	p, ok := builtinPresets[c.Preset]
	return p, ok
}
