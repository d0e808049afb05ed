// Package ollama implements the llm.Dialect for Ollama's native chat API.
//
// Importing the package registers the dialect under the name "ollama":
//
//	import _ "github.com/kbukum/voxd/llm/ollama"
package ollama

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kbukum/voxd/llm"
	"github.com/kbukum/voxd/provider"
)

// DialectName is the registered name for the Ollama dialect.
const DialectName = "ollama"

func init() {
	llm.RegisterDialect(DialectName, &Dialect{})
}

// Dialect maps universal completion types to Ollama's /api/chat format.
type Dialect struct{}

// Name returns the dialect identifier.
func (*Dialect) Name() string { return DialectName }

// ChatPath returns the chat completion endpoint.
func (*Dialect) ChatPath() string { return "/api/chat" }

// HealthPath returns the endpoint used for availability checks.
func (*Dialect) HealthPath() string { return "/api/tags" }

// --- Ollama API wire types ---

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string         `json:"model"`
	Messages []chatMessage  `json:"messages"`
	Stream   bool           `json:"stream"`
	Options  map[string]any `json:"options,omitempty"`
}

type chatResponse struct {
	Model           string      `json:"model"`
	Message         chatMessage `json:"message"`
	Done            bool        `json:"done"`
	PromptEvalCount int         `json:"prompt_eval_count,omitempty"`
	EvalCount       int         `json:"eval_count,omitempty"`
}

// BuildRequest maps a CompletionRequest to the Ollama chat payload.
// Stream is always false; sampling parameters travel in the options map,
// and req.Extra entries pass through as additional options.
func (*Dialect) BuildRequest(req llm.CompletionRequest) (any, error) {
	msgs := make([]chatMessage, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		msgs = append(msgs, chatMessage{Role: "system", Content: req.SystemPrompt})
	}
	for _, m := range req.Messages {
		msgs = append(msgs, chatMessage{Role: m.Role, Content: m.Content})
	}

	opts := make(map[string]any)
	for k, v := range req.Extra {
		opts[k] = v
	}
	if req.Temperature != 0 {
		opts["temperature"] = req.Temperature
	}
	if req.MaxTokens != 0 {
		opts["num_predict"] = req.MaxTokens
	}
	if len(opts) == 0 {
		opts = nil
	}

	return chatRequest{
		Model:    req.Model,
		Messages: msgs,
		Stream:   false,
		Options:  opts,
	}, nil
}

// ParseResponse maps the Ollama chat response to a CompletionResponse.
func (*Dialect) ParseResponse(body []byte) (*llm.CompletionResponse, error) {
	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("ollama: decode response: %w", err)
	}
	return &llm.CompletionResponse{
		Content: resp.Message.Content,
		Model:   resp.Model,
		Usage: llm.Usage{
			PromptTokens:     resp.PromptEvalCount,
			CompletionTokens: resp.EvalCount,
			TotalTokens:      resp.PromptEvalCount + resp.EvalCount,
		},
	}, nil
}

// Factory returns a provider.Factory that creates dialect-backed adapters
// from a generic config map. Recognized keys: base_url, model, temperature,
// max_tokens, timeout.
func Factory() provider.Factory[llm.Provider] {
	return func(cfg map[string]any) (llm.Provider, error) {
		c := llm.Config{Dialect: DialectName}
		if v, ok := cfg["base_url"].(string); ok {
			c.BaseURL = v
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
		return llm.New(c)
	}
}
