package output

import (
	"fmt"
	"time"
)

// Delivery modes.
const (
	// ModeDisabled logs the transcript and touches nothing else.
	ModeDisabled = "disabled"
	// ModeClipboard copies the transcript to the clipboard.
	ModeClipboard = "clipboard"
	// ModeAutoPaste copies, then sends the paste chord to the foreground
	// application.
	ModeAutoPaste = "auto_paste"
)

// Config holds delivery settings.
type Config struct {
	// Mode selects the delivery behavior.
	Mode string `yaml:"mode" mapstructure:"mode"`

	// PasteChord is the key chord sent in auto-paste mode.
	PasteChord string `yaml:"paste_chord" mapstructure:"paste_chord"`

	// PasteDelay is how long to wait between the clipboard write and the
	// paste chord, giving the compositor time to propagate the selection.
	PasteDelay time.Duration `yaml:"paste_delay" mapstructure:"paste_delay"`
}

// ApplyDefaults applies default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Mode == "" {
		c.Mode = ModeClipboard
	}
	if c.PasteChord == "" {
		c.PasteChord = "ctrl+v"
	}
	if c.PasteDelay == 0 {
		c.PasteDelay = 120 * time.Millisecond
	}
}

// Validate validates the output configuration.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeDisabled, ModeClipboard, ModeAutoPaste:
	default:
		return fmt.Errorf("output.mode must be %q, %q, or %q (got: %q)", ModeDisabled, ModeClipboard, ModeAutoPaste, c.Mode)
	}
	if _, err := parseChord(c.PasteChord); err != nil {
		return fmt.Errorf("output.paste_chord: %w", err)
	}
	if c.PasteDelay < 0 || c.PasteDelay > 2*time.Second {
		return fmt.Errorf("output.paste_delay must be in [0, 2s] (got: %s)", c.PasteDelay)
	}
	return nil
}
