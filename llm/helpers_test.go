package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kbukum/voxd/provider"
)

// Verify helper functions accept the provider.RequestResponse interface.
var _ provider.RequestResponse[CompletionRequest, CompletionResponse] = (*Adapter)(nil)

func TestComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"content": "The answer is 42.",
			"model":   "test",
		})
	}))
	defer srv.Close()

	d := &mockDialect{}
	a, err := NewWithDialect(d, Config{BaseURL: srv.URL, Model: "test"})
	if err != nil {
		t.Fatalf("error: %v", err)
	}

	result, err := Complete(context.Background(), a, "You are helpful.", "What is the answer?")
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if result != "The answer is 42." {
		t.Errorf("result = %q, want %q", result, "The answer is 42.")
	}
}

func TestComplete_PropagatesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	d := &mockDialect{}
	a, err := NewWithDialect(d, Config{BaseURL: srv.URL, Model: "test"})
	if err != nil {
		t.Fatalf("error: %v", err)
	}

	_, err = Complete(context.Background(), a, "system", "user")
	if err == nil {
		t.Fatal("expected error from failing backend")
	}
}
