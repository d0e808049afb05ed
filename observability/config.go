package observability

import (
	"context"
	"fmt"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Config is the daemon's observability section. Export is disabled by
// default; a headless dictation daemon has no collector to talk to unless
// the user runs one.
type Config struct {
	// Enabled turns on the OTLP metric exporter.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Endpoint is the OTLP HTTP endpoint host:port.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`

	// Insecure allows plain-HTTP export.
	Insecure *bool `yaml:"insecure" mapstructure:"insecure"`

	// Interval is the metric export interval.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// ApplyDefaults applies default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.Insecure == nil {
		insecure := true
		c.Insecure = &insecure
	}
	if c.Interval == 0 {
		c.Interval = 15 * time.Second
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Interval < 0 {
		return fmt.Errorf("observability.interval must be non-negative (got: %s)", c.Interval)
	}
	return nil
}

// Setup initializes the meter provider and instruments when enabled.
// With export disabled it returns a nil *Metrics (which records nothing)
// and a no-op shutdown.
func Setup(ctx context.Context, cfg Config, serviceName, version, environment string) (*Metrics, func(context.Context) error, error) {
	if !cfg.Enabled {
		return nil, func(context.Context) error { return nil }, nil
	}

	mc := MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: version,
		Environment:    environment,
		Endpoint:       cfg.Endpoint,
		Insecure:       cfg.Insecure == nil || *cfg.Insecure,
		Interval:       cfg.Interval,
	}
	mp, err := InitMeter(ctx, &mc)
	if err != nil {
		return nil, nil, fmt.Errorf("observability: init meter: %w", err)
	}

	metrics, err := NewMetrics(Meter(serviceName))
	if err != nil {
		shutdownProvider(mp)
		return nil, nil, fmt.Errorf("observability: create instruments: %w", err)
	}
	return metrics, mp.Shutdown, nil
}

func shutdownProvider(mp *sdkmetric.MeterProvider) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = mp.Shutdown(ctx)
}
