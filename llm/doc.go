// Package llm provides the chat-completion clients used for transcript
// refinement.
//
// Two backend families are supported:
//   - [Adapter] + [Dialect]: a config-driven client for native HTTP APIs.
//     The dialect maps universal types to the provider's wire format, and the
//     adapter supplies HTTP transport, auth, and resilience. The llm/ollama
//     package registers the "ollama" dialect for the native /api/chat API.
//   - Direct providers: backends with a full client library implement
//     [Provider] themselves. The llm/openai package wraps go-openai and talks
//     to any OpenAI-compatible endpoint, including Ollama's /v1 surface.
//
// Both satisfy [Provider], so they register in the same provider registry and
// compose with the provider middleware chain.
//
// # Usage
//
// Import a dialect driver package for side-effect registration, then create
// an adapter:
//
//	import (
//	    "github.com/kbukum/voxd/llm"
//	    _ "github.com/kbukum/voxd/llm/ollama" // registers "ollama" dialect
//	)
//
//	adapter, err := llm.New(llm.Config{
//	    Dialect: "ollama",
//	    BaseURL: "http://localhost:11434",
//	    Model:   "llama3.1:8b",
//	})
//
//	resp, err := adapter.Execute(ctx, llm.CompletionRequest{
//	    Messages: []llm.Message{{Role: "user", Content: "Hello!"}},
//	})
//
// Or pass a dialect directly without the global registry:
//
//	adapter, err := llm.NewWithDialect(myDialect, llm.Config{...})
//
// The [Complete] helper covers the common one-shot case of a system prompt
// plus a single user message.
package llm
