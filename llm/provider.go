package llm

import (
	"github.com/kbukum/voxd/provider"
)

// Provider is the interface LLM backends implement. It is the plain
// request/response provider shape, so instances compose with the provider
// middleware chain (logging, metrics, resilience) and register in a
// provider.Registry like any other backend.
type Provider interface {
	provider.RequestResponse[CompletionRequest, CompletionResponse]
}
