// Package resilience provides patterns for building fault-tolerant systems.
//
// This package includes:
//   - CircuitBreaker: Prevents cascading failures by failing fast
//   - Retry: Retries failed operations with exponential backoff
//   - Bulkhead: Limits concurrent access to isolate failures
//   - RateLimiter: Controls request rate with token bucket algorithm
//
// voxd wires these around its external touchpoints: the LLM refinement
// client sits behind a circuit breaker so a dead Ollama never stalls a
// dictation cycle, model downloads share a bulkhead, transient download
// errors retry with backoff, and the control API rate-limits mutating
// routes.
//
//	// Example: refinement client guarded against a wedged backend
//	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
//	    Name:        "postproc",
//	    MaxFailures: 3,
//	    Timeout:     60 * time.Second,
//	})
//	err := cb.Execute(func() error {
//	    return refine(ctx, text)
//	})
package resilience
