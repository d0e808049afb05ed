package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// CycleObservation tracks a single dictation cycle across its trace span
// and the cycle counter.
type CycleObservation struct {
	Session   uint64
	StartTime time.Time
	Metrics   *Metrics

	span trace.Span
}

// StartCycle opens the cycle span and stores the observation in the
// returned context so pipeline stages can annotate it.
// If metrics is nil, metric recording is silently skipped.
func StartCycle(ctx context.Context, session uint64, metrics *Metrics) (context.Context, *CycleObservation) {
	ctx, span := StartSpan(ctx, SpanDictationCycle,
		trace.WithAttributes(attribute.Int64(AttrSessionID, int64(session))),
	)
	co := &CycleObservation{
		Session:   session,
		StartTime: time.Now(),
		Metrics:   metrics,
		span:      span,
	}
	return WithCycle(ctx, co), co
}

// cycleKey is the context key for CycleObservation.
type cycleKey struct{}

// WithCycle stores a CycleObservation in the context.
func WithCycle(ctx context.Context, co *CycleObservation) context.Context {
	return context.WithValue(ctx, cycleKey{}, co)
}

// CycleFromContext retrieves the CycleObservation from context, or nil.
func CycleFromContext(ctx context.Context) *CycleObservation {
	if co, ok := ctx.Value(cycleKey{}).(*CycleObservation); ok {
		return co
	}
	return nil
}

// End closes the cycle span and counts the cycle under the given outcome.
func (co *CycleObservation) End(ctx context.Context, outcome string, err error) {
	duration := time.Since(co.StartTime)

	if co.span != nil {
		if err != nil {
			co.span.RecordError(err)
			co.span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
		}
		co.span.SetAttributes(
			attribute.String(AttrOutcome, outcome),
			attribute.Int64(AttrDurationMs, duration.Milliseconds()),
		)
		co.span.End()
	}

	co.Metrics.RecordCycle(ctx, outcome)
}

// Duration returns the elapsed time since the cycle started.
func (co *CycleObservation) Duration() time.Duration {
	return time.Since(co.StartTime)
}
