package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kbukum/voxd/httpclient"
)

// ErrNoDialect is returned when an adapter is constructed without a dialect.
var ErrNoDialect = errors.New("llm: dialect is required")

// Adapter is a config-driven LLM client that works with any native HTTP API
// via the Dialect pattern.
//
// It composes the HTTP adapter with a Dialect that handles provider-specific
// request/response mapping. This gives you:
//   - TLS, auth, resilience, timeout from the HTTP adapter
//   - JSON encoding/decoding from the typed request helpers
//   - Provider-specific mapping from the Dialect
//
// Adapter implements Provider and provider.Closeable.
type Adapter struct {
	http      *httpclient.Adapter
	dialect   Dialect
	model     string
	temp      float64
	maxTokens int
}

// New creates an LLM adapter from config using the global dialect registry.
// The config's Dialect field must match a registered dialect name.
func New(cfg Config) (*Adapter, error) {
	cfg.applyDefaults()

	dialect, err := GetDialect(cfg.Dialect)
	if err != nil {
		return nil, err
	}

	return newAdapter(dialect, cfg)
}

// NewWithDialect creates an LLM adapter with an explicit dialect instance.
// Use this when you don't want to rely on the global dialect registry.
func NewWithDialect(dialect Dialect, cfg Config) (*Adapter, error) {
	if dialect == nil {
		return nil, ErrNoDialect
	}
	cfg.applyDefaults()
	if cfg.Name == "" {
		cfg.Name = dialect.Name() + "-llm"
	}
	return newAdapter(dialect, cfg)
}

func newAdapter(dialect Dialect, cfg Config) (*Adapter, error) {
	headers := map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
	for k, v := range cfg.Headers {
		headers[k] = v
	}

	client, err := httpclient.New(httpclient.Config{
		Name:           cfg.Name,
		BaseURL:        cfg.BaseURL,
		Timeout:        cfg.Timeout,
		Auth:           cfg.Auth,
		TLS:            cfg.TLS,
		Headers:        headers,
		Retry:          cfg.Retry,
		CircuitBreaker: cfg.CircuitBreaker,
		RateLimiter:    cfg.RateLimiter,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: create http client: %w", err)
	}

	return &Adapter{
		http:      client,
		dialect:   dialect,
		model:     cfg.Model,
		temp:      cfg.Temperature,
		maxTokens: cfg.MaxTokens,
	}, nil
}

// Name returns the adapter name.
func (a *Adapter) Name() string { return a.http.Name() }

// IsAvailable checks if the LLM provider is reachable.
// Uses the dialect's health endpoint if available, otherwise delegates to the
// HTTP adapter.
func (a *Adapter) IsAvailable(ctx context.Context) bool {
	if hp := a.dialect.HealthPath(); hp != "" {
		_, err := httpclient.Get[json.RawMessage](a.http, ctx, hp)
		return err == nil
	}
	return a.http.IsAvailable(ctx)
}

// Close releases resources.
func (a *Adapter) Close(ctx context.Context) error { return a.http.Close(ctx) }

// Execute sends a completion request and returns the full response.
func (a *Adapter) Execute(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	a.fillDefaults(&req)

	body, err := a.dialect.BuildRequest(req)
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("llm: build request: %w", err)
	}

	resp, err := httpclient.Post[json.RawMessage](a.http, ctx, a.dialect.ChatPath(), body)
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("llm: execute: %w", err)
	}

	result, err := a.dialect.ParseResponse(resp.Data)
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("llm: parse response: %w", err)
	}
	return *result, nil
}

// Dialect returns the dialect used by this adapter.
func (a *Adapter) Dialect() Dialect { return a.dialect }

// HTTP returns the underlying HTTP adapter for advanced use cases.
func (a *Adapter) HTTP() *httpclient.Adapter { return a.http }

func (a *Adapter) fillDefaults(req *CompletionRequest) {
	if req.Model == "" {
		req.Model = a.model
	}
	if req.Temperature == 0 {
		req.Temperature = a.temp
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = a.maxTokens
	}
}
