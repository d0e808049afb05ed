package bootstrap

import (
	"github.com/kbukum/voxd/config"
)

// Config is the interface constraint for application configuration types.
// Any struct that embeds config.ServiceConfig (value embedding) automatically
// satisfies this interface via promoted methods.
//
// Example:
//
//	type Config struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Audio audio.Config `yaml:"audio" mapstructure:"audio"`
//	}
//
//	// Config automatically satisfies bootstrap.Config via promoted methods.
//	app, err := bootstrap.NewApp(&cfg)
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
