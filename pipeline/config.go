package pipeline

import (
	"fmt"
	"time"
)

// Config holds orchestration settings.
type Config struct {
	// FailedLinger is how long the transient error status stays visible
	// before the pipeline returns to idle.
	FailedLinger time.Duration `yaml:"failed_linger" mapstructure:"failed_linger"`

	// LoopCueGap is the pause between repeats of the processing cue.
	LoopCueGap time.Duration `yaml:"loop_cue_gap" mapstructure:"loop_cue_gap"`

	// Chunked enables long-form mode: pause boundaries found by the
	// silence monitor are transcribed while the recording continues and
	// the per-chunk results are merged in order.
	Chunked bool `yaml:"chunked" mapstructure:"chunked"`

	// ChunkWorkers bounds concurrent chunk transcriptions in long-form
	// mode. The default of 1 keeps the inference backend serialized.
	ChunkWorkers int `yaml:"chunk_workers" mapstructure:"chunk_workers"`
}

// ApplyDefaults applies default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.FailedLinger == 0 {
		c.FailedLinger = 1500 * time.Millisecond
	}
	if c.LoopCueGap == 0 {
		c.LoopCueGap = 1200 * time.Millisecond
	}
	if c.ChunkWorkers == 0 {
		c.ChunkWorkers = 1
	}
}

// Validate validates the pipeline configuration.
func (c *Config) Validate() error {
	if c.FailedLinger < 0 {
		return fmt.Errorf("pipeline.failed_linger must not be negative (got: %s)", c.FailedLinger)
	}
	if c.LoopCueGap < 0 {
		return fmt.Errorf("pipeline.loop_cue_gap must not be negative (got: %s)", c.LoopCueGap)
	}
	if c.ChunkWorkers < 1 || c.ChunkWorkers > 8 {
		return fmt.Errorf("pipeline.chunk_workers must be in [1, 8] (got: %d)", c.ChunkWorkers)
	}
	return nil
}
