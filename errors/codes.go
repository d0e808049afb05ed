package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Connection/Availability errors (retryable)
const (
	// ErrCodeServiceUnavailable indicates the service is temporarily unavailable.
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	// ErrCodeConnectionFailed indicates a failed connection to a service.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeTimeout indicates the request timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeRateLimited indicates the client is rate limited.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
)

// Dictation cycle errors
const (
	// ErrCodeCaptureFailed indicates the audio input stream could not be
	// opened or died mid-recording.
	ErrCodeCaptureFailed ErrorCode = "CAPTURE_FAILED"
	// ErrCodeEmptyAudio indicates the recording contained no usable speech.
	ErrCodeEmptyAudio ErrorCode = "EMPTY_AUDIO"
	// ErrCodeModelNotReady indicates the transcription model file is absent
	// or incomplete.
	ErrCodeModelNotReady ErrorCode = "MODEL_NOT_READY"
	// ErrCodeBackendFailed indicates the transcription backend errored.
	ErrCodeBackendFailed ErrorCode = "BACKEND_FAILED"
	// ErrCodeCancelled indicates the operation was cancelled by shutdown.
	ErrCodeCancelled ErrorCode = "CANCELLED"
	// ErrCodeDictionaryLoad indicates the dictionary file was rejected.
	ErrCodeDictionaryLoad ErrorCode = "DICTIONARY_LOAD"
	// ErrCodePostProcessFailed indicates the LLM refinement pass failed.
	ErrCodePostProcessFailed ErrorCode = "POSTPROC_FAILED"
	// ErrCodeOutputDispatch indicates clipboard or paste delivery failed.
	ErrCodeOutputDispatch ErrorCode = "OUTPUT_DISPATCH"
	// ErrCodeBusy indicates the pipeline rejected a trigger because a cycle
	// is still in flight.
	ErrCodeBusy ErrorCode = "BUSY"
)

// Model download errors
const (
	// ErrCodeDownloadFailed indicates a model download did not complete.
	ErrCodeDownloadFailed ErrorCode = "DOWNLOAD_FAILED"
	// ErrCodeChecksumMismatch indicates a downloaded model failed verification.
	ErrCodeChecksumMismatch ErrorCode = "CHECKSUM_MISMATCH"
)

// Resource errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeAlreadyExists indicates the resource already exists.
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
	// ErrCodeConflict indicates a conflict with the current state of the resource.
	ErrCodeConflict ErrorCode = "CONFLICT"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeInvalidFormat indicates a field has an invalid format.
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeServiceUnavailable: true,
	ErrCodeConnectionFailed:   true,
	ErrCodeTimeout:            true,
	ErrCodeRateLimited:        true,
	ErrCodeCaptureFailed:      true,
	ErrCodeBackendFailed:      true,
	ErrCodePostProcessFailed:  true,
	ErrCodeDownloadFailed:     true,
	ErrCodeInternal:           false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
