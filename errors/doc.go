// Package errors provides unified error handling for the voxd daemon.
// It implements structured error types with error codes, HTTP status mapping,
// and retryable detection following RFC 7807 and Google AIP-193.
//
// The error taxonomy covers the dictation cycle (capture, transcription,
// dictionary, post-processing, delivery) and model downloads. Cycle errors
// carry the pipeline consequence in their constructor docs: Recording and
// Processing errors fail the cycle; PostProcessFailed and OutputDispatch are
// absorbed with a fallback; DictionaryLoad degrades to an empty rule set.
package errors
