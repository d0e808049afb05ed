package audio

import (
	"fmt"
	"time"
)

// Config holds audio capture settings.
type Config struct {
	// Device selects the input device by case-insensitive name prefix.
	// Empty means the system default input.
	Device string `yaml:"device" mapstructure:"device"`

	// DeviceIndex selects the input device by PortAudio index. Takes
	// precedence over Device when set.
	DeviceIndex *int `yaml:"device_index" mapstructure:"device_index"`

	// Gain scales captured samples. 1.0 is unity.
	Gain float64 `yaml:"gain" mapstructure:"gain"`

	// MinDuration rejects recordings shorter than this as empty.
	MinDuration time.Duration `yaml:"min_duration" mapstructure:"min_duration"`

	// KeepRecordings leaves session WAV files on disk instead of removing
	// them after transcription.
	KeepRecordings bool `yaml:"keep_recordings" mapstructure:"keep_recordings"`

	// RecordingsDir is where kept recordings are written. Empty means the
	// daemon's data directory.
	RecordingsDir string `yaml:"recordings_dir" mapstructure:"recordings_dir"`
}

// ApplyDefaults applies default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Gain == 0 {
		c.Gain = 1.0
	}
	if c.MinDuration == 0 {
		c.MinDuration = 600 * time.Millisecond
	}
}

// Validate validates the audio configuration.
func (c *Config) Validate() error {
	if c.Gain <= 0 || c.Gain > 10 {
		return fmt.Errorf("audio.gain must be in (0, 10] (got: %g)", c.Gain)
	}
	if c.MinDuration < 0 {
		return fmt.Errorf("audio.min_duration must not be negative (got: %s)", c.MinDuration)
	}
	if c.DeviceIndex != nil && *c.DeviceIndex < 0 {
		return fmt.Errorf("audio.device_index must not be negative (got: %d)", *c.DeviceIndex)
	}
	return nil
}
