package llm

import (
	"context"

	"github.com/kbukum/voxd/provider"
)

// Complete is a convenience helper: sends system + user prompts and returns
// the text response. Accepts the request/response provider shape so it works
// with any wrapped/composed provider (e.g., WithResilience, middleware chains).
func Complete(ctx context.Context, p provider.RequestResponse[CompletionRequest, CompletionResponse], system, user string) (string, error) {
	resp, err := p.Execute(ctx, CompletionRequest{
		SystemPrompt: system,
		Messages:     []Message{{Role: "user", Content: user}},
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}
