package llm

import (
	"fmt"
	"sync"
)

// Dialect maps universal LLM types to/from a specific provider's HTTP format.
//
// Each native LLM API (Ollama's /api/chat, llama.cpp's server, etc.) has its
// own Dialect implementation that handles the provider-specific request and
// response structure. Backends that ship a full client library (the OpenAI
// wire format) implement Provider directly instead.
//
// Register dialects at startup using [RegisterDialect], or pass one directly
// to [NewWithDialect].
type Dialect interface {
	// Name returns the dialect identifier (e.g., "ollama").
	Name() string

	// ChatPath returns the API endpoint path for chat completion (e.g., "/api/chat").
	ChatPath() string

	// HealthPath returns the health-check endpoint path. Empty means no health endpoint.
	HealthPath() string

	// BuildRequest maps a universal CompletionRequest to the provider's JSON request body.
	BuildRequest(req CompletionRequest) (any, error)

	// ParseResponse maps the provider's JSON response body to a universal CompletionResponse.
	ParseResponse(body []byte) (*CompletionResponse, error)
}

// --- Dialect Registry ---

var (
	dialectsMu sync.RWMutex
	dialects   = map[string]Dialect{}
)

// RegisterDialect adds a dialect to the global registry.
// Typically called from init() in dialect driver packages:
//
//	func init() {
//	    llm.RegisterDialect("ollama", &Dialect{})
//	}
//
// Importing the driver package registers the dialect as a side-effect:
//
//	import _ "github.com/kbukum/voxd/llm/ollama"
func RegisterDialect(name string, d Dialect) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	dialects[name] = d
}

// GetDialect retrieves a dialect by name from the global registry.
func GetDialect(name string) (Dialect, error) {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	d, ok := dialects[name]
	if !ok {
		return nil, fmt.Errorf("llm: unknown dialect %q (forgot to import driver?)", name)
	}
	return d, nil
}

// Dialects returns the names of all registered dialects.
func Dialects() []string {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	return names
}
