// Package observability provides OpenTelemetry tracing and metrics for the
// dictation daemon. Both are disabled by default; when enabled they export
// over OTLP HTTP.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("voxd"))
//	defer tp.Shutdown(ctx)
//
//	ctx, cycle := observability.StartCycle(ctx, session, metrics)
//	defer cycle.End(ctx, "completed", nil)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("voxd"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("voxd"))
//	metrics.RecordTranscribe(ctx, "whispercpp", "base.en", duration)
//
// A nil *Metrics records nothing, so callers never branch on whether
// observability is on.
//
// Health checks:
//
//	health := observability.NewServiceHealth("voxd", version.Version)
//	health.AddComponent(checker.CheckHealth(ctx))
package observability
