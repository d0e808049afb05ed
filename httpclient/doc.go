// Package httpclient provides a configurable HTTP client with built-in
// authentication, TLS, resilience (retry, circuit breaker, rate limiting),
// and streaming support.
//
// voxd uses it for the two HTTP touchpoints that are not the local control
// API: streaming ggml model downloads (DoStream with a Range header for
// resume) and the optional warm transcription sidecar (multipart WAV
// upload). The native Ollama dialect rides on it as well.
//
// The base Adapter handles all HTTP protocol concerns. Generic typed
// helpers (Get, Post, ...) decode JSON responses, and the sse subpackage
// reads Server-Sent Events streams.
//
// # Basic Usage
//
//	adapter, err := httpclient.New(httpclient.Config{
//	    BaseURL: "http://localhost:9090",
//	    Timeout: 30 * time.Second,
//	})
//
//	resp, err := adapter.Do(ctx, httpclient.Request{
//	    Method: http.MethodPost,
//	    Path:   "/transcribe",
//	    Body:   &httpclient.MultipartBody{Files: []httpclient.FileField{wavField}},
//	})
//
// # With Resilience
//
//	adapter, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://huggingface.co",
//	    Retry:   httpclient.DefaultRetryConfig(),
//	    CircuitBreaker: httpclient.DefaultCircuitBreakerConfig("model-downloads"),
//	})
package httpclient
