package main

import (
	"fmt"

	"github.com/kbukum/voxd/audio"
	"github.com/kbukum/voxd/config"
	"github.com/kbukum/voxd/model"
	"github.com/kbukum/voxd/observability"
	"github.com/kbukum/voxd/output"
	"github.com/kbukum/voxd/pipeline"
	"github.com/kbukum/voxd/postproc"
	"github.com/kbukum/voxd/server"
	"github.com/kbukum/voxd/sound"
	"github.com/kbukum/voxd/transcription"
	"github.com/kbukum/voxd/transcription/whisper"
	"github.com/kbukum/voxd/transcription/whispercpp"
	"github.com/kbukum/voxd/trigger"
	"github.com/kbukum/voxd/vad"
	"github.com/kbukum/voxd/version"
)

// TranscriptionConfig groups the invoker settings with the per-backend
// sections.
type TranscriptionConfig struct {
	transcription.InvokerConfig `yaml:",inline" mapstructure:",squash"`

	WhisperCPP whispercpp.Config `yaml:"whispercpp" mapstructure:"whispercpp"`
	Server     whisper.Config    `yaml:"server" mapstructure:"server"`
}

// Config is the full daemon configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Pipeline      pipeline.Config      `yaml:"pipeline" mapstructure:"pipeline"`
	Audio         audio.Config         `yaml:"audio" mapstructure:"audio"`
	VAD           vad.Config           `yaml:"vad" mapstructure:"vad"`
	Transcription TranscriptionConfig  `yaml:"transcription" mapstructure:"transcription"`
	Postproc      postproc.Config      `yaml:"postproc" mapstructure:"postproc"`
	Output        output.Config        `yaml:"output" mapstructure:"output"`
	Sound         sound.Config         `yaml:"sound" mapstructure:"sound"`
	Model         model.Config         `yaml:"model" mapstructure:"model"`
	Trigger       trigger.Config       `yaml:"trigger" mapstructure:"trigger"`
	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults applies defaults to every section. The control API binds
// loopback only; voxd is a single-user desktop daemon.
func (c *Config) ApplyDefaults() {
	if c.Version == "" {
		c.Version = version.Version
	}
	c.ServiceConfig.ApplyDefaults()

	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8425
	}

	c.Pipeline.ApplyDefaults()
	c.Audio.ApplyDefaults()
	c.VAD.ApplyDefaults()
	c.Transcription.InvokerConfig.ApplyDefaults()
	c.Postproc.ApplyDefaults()
	c.Output.ApplyDefaults()
	c.Sound.ApplyDefaults()
	c.Model.ApplyDefaults()
	c.Trigger.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate validates every section. Any failure aborts startup.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	sections := []struct {
		name string
		err  error
	}{
		{"audio", c.Audio.Validate()},
		{"vad", c.VAD.Validate()},
		{"postproc", c.Postproc.Validate()},
		{"output", c.Output.Validate()},
		{"sound", c.Sound.Validate()},
		{"model", c.Model.Validate()},
		{"trigger", c.Trigger.Validate()},
		{"server", c.Server.Validate()},
		{"observability", c.Observability.Validate()},
	}
	for _, s := range sections {
		if s.err != nil {
			return fmt.Errorf("config.%s: %w", s.name, s.err)
		}
	}
	return nil
}
