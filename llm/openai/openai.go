// Package openai implements llm.Provider for OpenAI-compatible chat APIs.
//
// It wraps the go-openai client, so it works against any endpoint speaking
// the OpenAI wire format. The default base URL points at a local Ollama
// instance, which exposes the compatible surface under /v1.
package openai

import (
	"context"
	"errors"
	"net/http"
	"time"

	gopenai "github.com/sashabaranov/go-openai"

	"github.com/kbukum/voxd/httpclient"
	"github.com/kbukum/voxd/llm"
	"github.com/kbukum/voxd/provider"
)

// ProviderName is the registered name for the OpenAI-compatible provider.
const ProviderName = "openai"

const (
	defaultBaseURL = "http://localhost:11434/v1"
	defaultTimeout = 120 * time.Second
)

// Config holds configuration for the OpenAI-compatible provider.
type Config struct {
	// BaseURL is the API base including the version prefix
	// (e.g., "http://localhost:11434/v1").
	BaseURL string `yaml:"base_url" json:"base_url"`
	// APIKey is the bearer token. Local endpoints ignore it.
	APIKey string `yaml:"api_key" json:"api_key"`
	// Model is the default model (e.g., "llama3.1:8b").
	Model string `yaml:"model" json:"model"`
	// Temperature is the default sampling temperature.
	Temperature float64 `yaml:"temperature" json:"temperature"`
	// MaxTokens is the default response token cap. 0 means provider default.
	MaxTokens int `yaml:"max_tokens" json:"max_tokens"`
	// Timeout bounds each HTTP request.
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// Provider implements llm.Provider using the go-openai client.
type Provider struct {
	cfg    Config
	client *gopenai.Client
}

// New creates an OpenAI-compatible LLM provider.
func New(cfg Config) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}

	cc := gopenai.DefaultConfig(cfg.APIKey)
	cc.BaseURL = cfg.BaseURL
	cc.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Provider{
		cfg:    cfg,
		client: gopenai.NewClientWithConfig(cc),
	}
}

// Factory returns a provider.Factory that creates OpenAI-compatible providers
// from a generic config map. Recognized keys: base_url, api_key, model,
// temperature, max_tokens, timeout.
func Factory() provider.Factory[llm.Provider] {
	return func(cfg map[string]any) (llm.Provider, error) {
		c := Config{}
		if v, ok := cfg["base_url"].(string); ok {
			c.BaseURL = v
		}
		if v, ok := cfg["api_key"].(string); ok {
			c.APIKey = v
		}
		if v, ok := cfg["model"].(string); ok {
			c.Model = v
		}
		if v, ok := cfg["temperature"].(float64); ok {
			c.Temperature = v
		}
		if v, ok := cfg["max_tokens"].(int); ok {
			c.MaxTokens = v
		}
		if v, ok := cfg["timeout"].(time.Duration); ok {
			c.Timeout = v
		}
		return New(c), nil
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable checks if the endpoint is reachable by listing models.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	_, err := p.client.ListModels(ctx)
	return err == nil
}

// Execute sends a chat completion request and returns the response.
func (p *Provider) Execute(ctx context.Context, req llm.CompletionRequest) (llm.CompletionResponse, error) {
	p.fillDefaults(&req)

	msgs := make([]gopenai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		msgs = append(msgs, gopenai.ChatCompletionMessage{
			Role:    gopenai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	for _, m := range req.Messages {
		msgs = append(msgs, gopenai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := p.client.CreateChatCompletion(ctx, gopenai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    msgs,
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return llm.CompletionResponse{}, mapError(err)
	}
	if len(resp.Choices) == 0 {
		return llm.CompletionResponse{}, errors.New("openai: response has no choices")
	}

	return llm.CompletionResponse{
		Content: resp.Choices[0].Message.Content,
		Model:   resp.Model,
		Usage: llm.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

// mapError converts go-openai errors into the shared HTTP error taxonomy so
// callers can classify failures (rate limits, auth, server errors) uniformly.
func mapError(err error) error {
	var apiErr *gopenai.APIError
	if errors.As(err, &apiErr) {
		if e := httpclient.ClassifyStatusCode(apiErr.HTTPStatusCode, []byte(apiErr.Message)); e != nil {
			e.Err = err
			return e
		}
		return err
	}

	var reqErr *gopenai.RequestError
	if errors.As(err, &reqErr) {
		if e := httpclient.ClassifyStatusCode(reqErr.HTTPStatusCode, nil); e != nil {
			e.Err = err
			return e
		}
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return httpclient.NewTimeoutError(err)
	}
	return err
}

func (p *Provider) fillDefaults(req *llm.CompletionRequest) {
	if req.Model == "" {
		req.Model = p.cfg.Model
	}
	if req.Temperature == 0 {
		req.Temperature = p.cfg.Temperature
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = p.cfg.MaxTokens
	}
}
