package sound

import "fmt"

// Config holds audio cue settings.
type Config struct {
	// Enabled toggles all cues.
	Enabled *bool `yaml:"enabled" mapstructure:"enabled"`

	// Volume is the playback volume in percent, 0 to 100.
	Volume int `yaml:"volume" mapstructure:"volume"`

	// Player forces a specific playback binary instead of probing the
	// built-in chain.
	Player string `yaml:"player" mapstructure:"player"`

	// Files maps cue kinds (start, processing, complete, fail) to user
	// audio files. Kinds without an entry use a generated beep.
	Files map[string]string `yaml:"files" mapstructure:"files"`
}

// ApplyDefaults applies default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Enabled == nil {
		enabled := true
		c.Enabled = &enabled
	}
	if c.Volume == 0 {
		c.Volume = 100
	}
}

// Validate validates the sound configuration.
func (c *Config) Validate() error {
	if c.Volume < 0 || c.Volume > 100 {
		return fmt.Errorf("sound.volume must be in [0, 100] (got: %d)", c.Volume)
	}
	for kind := range c.Files {
		switch kind {
		case CueStart, CueProcessing, CueComplete, CueFail:
		default:
			return fmt.Errorf("sound.files: unknown cue kind %q", kind)
		}
	}
	return nil
}
