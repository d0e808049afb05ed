// Package transcription defines the provider interface and common types
// for interacting with speech-to-text backends, plus the Invoker that
// adapts a backend to the dictation pipeline.
//
// It follows the provider pattern with a pluggable registry for
// runtime-selectable backends.
//
// # Backends
//
//   - transcription/whispercpp: local whisper-cli subprocess (default)
//   - transcription/whisper: faster-whisper-style HTTP sidecar ("server")
//
// # Usage
//
//	reg := transcription.NewRegistry()
//	reg.Set(whispercpp.ProviderName, whispercpp.NewProvider(backendCfg))
//	inv, err := transcription.NewInvoker(cfg, reg, metrics, log)
package transcription
