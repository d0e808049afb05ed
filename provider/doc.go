// Package provider implements a generic provider framework using Go generics
// for swappable backends with runtime switching capabilities.
//
// It provides a registry for managing multiple provider implementations with
// factory-based instantiation, availability checking, and runtime selection.
// Transcription backends (whisper-cli subprocess, whisper HTTP server) and
// LLM completion backends (OpenAI-dialect, Ollama) all plug in through it.
//
// The core interaction shape:
//   - RequestResponse[I, O]: one input → one output (HTTP call, subprocess
//     exec, chat completion)
//
// Opt-in lifecycle:
//   - Initializable: providers that need setup (validate binary, warm cache)
//   - Closeable: providers that hold resources (connections, daemon processes)
//
// # Middleware
//
// Middleware[I, O] is a function that wraps a RequestResponse provider.
// Use Chain to compose multiple middlewares:
//
//	wrapped := provider.Chain(
//	    provider.WithLogging[In, Out](log),
//	    provider.WithTracing[In, Out]("my-service"),
//	)(rawProvider)
//
// WithResilience layers rate limiting, bulkheading, circuit breaking, and
// retry around a provider; it composes with Chain like any other wrapper.
//
// # Usage
//
//	reg := provider.NewRegistry[MyProvider]()
//	reg.RegisterFactory("default", myFactory)
//	mgr := provider.NewManager(reg, &provider.HealthCheckSelector[MyProvider]{})
//	mgr.InitializeWithContext(ctx, "default", cfg)
//	p, _ := mgr.Get(ctx)
package provider
