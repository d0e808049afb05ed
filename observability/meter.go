package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/voxd/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the daemon's metric instruments. A nil *Metrics is valid
// and records nothing, which is how the daemon runs with observability
// disabled.
type Metrics struct {
	cycleTotal        metric.Int64Counter
	transcribeSeconds metric.Float64Histogram
	postprocSeconds   metric.Float64Histogram
	deliverSeconds    metric.Float64Histogram
	downloadBytes     metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	cycleTotal, err := meter.Int64Counter("voxd.cycles",
		metric.WithDescription("Completed dictation cycles by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating voxd.cycles counter: %w", err)
	}

	transcribeSeconds, err := meter.Float64Histogram("voxd.transcribe.duration",
		metric.WithDescription("Duration of transcription runs in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating voxd.transcribe.duration histogram: %w", err)
	}

	postprocSeconds, err := meter.Float64Histogram("voxd.postproc.duration",
		metric.WithDescription("Duration of LLM refinement calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating voxd.postproc.duration histogram: %w", err)
	}

	deliverSeconds, err := meter.Float64Histogram("voxd.deliver.duration",
		metric.WithDescription("Duration of text delivery in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating voxd.deliver.duration histogram: %w", err)
	}

	downloadBytes, err := meter.Int64Counter("voxd.downloads.bytes",
		metric.WithDescription("Bytes fetched by model downloads"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating voxd.downloads.bytes counter: %w", err)
	}

	return &Metrics{
		cycleTotal:        cycleTotal,
		transcribeSeconds: transcribeSeconds,
		postprocSeconds:   postprocSeconds,
		deliverSeconds:    deliverSeconds,
		downloadBytes:     downloadBytes,
	}, nil
}

// RecordCycle counts a finished dictation cycle under the given outcome
// (completed, noise, too_short, failed, canceled).
func (m *Metrics) RecordCycle(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.cycleTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

// RecordTranscribe records one transcription run.
func (m *Metrics) RecordTranscribe(ctx context.Context, backend, model string, duration time.Duration) {
	if m == nil {
		return
	}
	m.transcribeSeconds.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("backend", backend),
		attribute.String("model", model),
	))
}

// RecordPostproc records one LLM refinement attempt.
func (m *Metrics) RecordPostproc(ctx context.Context, preset, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.postprocSeconds.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("preset", preset),
		attribute.String("status", status),
	))
}

// RecordDeliver records one text delivery.
func (m *Metrics) RecordDeliver(ctx context.Context, mode string, duration time.Duration) {
	if m == nil {
		return
	}
	m.deliverSeconds.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("mode", mode),
	))
}

// AddDownloadBytes counts bytes fetched while downloading a model.
func (m *Metrics) AddDownloadBytes(ctx context.Context, model string, n int64) {
	if m == nil {
		return
	}
	m.downloadBytes.Add(ctx, n, metric.WithAttributes(
		attribute.String("model", model),
	))
}
