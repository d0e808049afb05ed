package vad

import (
	"fmt"
	"time"
)

// Preset names for the silence-detection parameter sets.
const (
	PresetNormal     = "normal"
	PresetAggressive = "aggressive"
)

// Config holds silence-detection settings. Preset selects a base parameter
// set; any field set explicitly overrides the preset value.
type Config struct {
	// Preset is "normal" or "aggressive".
	Preset string `yaml:"preset" mapstructure:"preset"`

	// Threshold is the RMS level below which a window counts as silence.
	Threshold float64 `yaml:"threshold" mapstructure:"threshold"`

	// Silence is the base trailing-silence duration that ends a chunk.
	// It shrinks as the chunk grows (see requiredSilence).
	Silence time.Duration `yaml:"silence" mapstructure:"silence"`

	// MinChunk is the minimum chunk duration before a split can happen.
	MinChunk time.Duration `yaml:"min_chunk" mapstructure:"min_chunk"`

	// MaxChunk forces a split regardless of silence.
	MaxChunk time.Duration `yaml:"max_chunk" mapstructure:"max_chunk"`

	// AutoStop enables stopping the whole session on prolonged silence.
	AutoStop *bool `yaml:"auto_stop" mapstructure:"auto_stop"`

	// AutoStopSilence is the trailing silence that stops the session in
	// long-form mode, where ordinary pauses only emit chunks.
	AutoStopSilence time.Duration `yaml:"auto_stop_silence" mapstructure:"auto_stop_silence"`

	// MaxSession is the hard session cap; always stops the recording.
	MaxSession time.Duration `yaml:"max_session" mapstructure:"max_session"`

	// Interval is how often the monitor polls the capture buffer.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// ApplyDefaults resolves the preset and fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Preset == "" {
		c.Preset = PresetNormal
	}
	threshold, silence, minChunk, maxChunk := 0.005, 2*time.Second, 3*time.Second, 30*time.Second
	if c.Preset == PresetAggressive {
		threshold, silence, minChunk, maxChunk = 0.007, time.Second, 1500*time.Millisecond, 25*time.Second
	}
	if c.Threshold == 0 {
		c.Threshold = threshold
	}
	if c.Silence == 0 {
		c.Silence = silence
	}
	if c.MinChunk == 0 {
		c.MinChunk = minChunk
	}
	if c.MaxChunk == 0 {
		c.MaxChunk = maxChunk
	}
	if c.AutoStop == nil {
		enabled := true
		c.AutoStop = &enabled
	}
	if c.AutoStopSilence == 0 {
		c.AutoStopSilence = 10 * time.Second
	}
	if c.MaxSession == 0 {
		c.MaxSession = 120 * time.Second
	}
	if c.Interval == 0 {
		c.Interval = 100 * time.Millisecond
	}
}

// Validate validates the silence-detection configuration.
func (c *Config) Validate() error {
	if c.Preset != PresetNormal && c.Preset != PresetAggressive {
		return fmt.Errorf("vad.preset must be %q or %q (got: %q)", PresetNormal, PresetAggressive, c.Preset)
	}
	if c.Threshold <= 0 || c.Threshold >= 1 {
		return fmt.Errorf("vad.threshold must be in (0, 1) (got: %g)", c.Threshold)
	}
	if c.Silence <= 0 {
		return fmt.Errorf("vad.silence must be positive (got: %s)", c.Silence)
	}
	if c.MinChunk <= 0 || c.MinChunk >= c.MaxChunk {
		return fmt.Errorf("vad.min_chunk must be positive and below max_chunk (got: %s, max: %s)", c.MinChunk, c.MaxChunk)
	}
	if c.MaxSession < c.MaxChunk {
		return fmt.Errorf("vad.max_session must not be below max_chunk (got: %s)", c.MaxSession)
	}
	if c.Interval < 10*time.Millisecond || c.Interval > time.Second {
		return fmt.Errorf("vad.interval must be in [10ms, 1s] (got: %s)", c.Interval)
	}
	return nil
}
