// Package sse provides Server-Sent Events (SSE) support for real-time streaming.
package sse

import (
	"encoding/json"
	"strconv"
)

// Envelope wraps a payload in the event frame used on the events stream:
// {"event": <name>, "data": <payload>}. The payload is JSON-encoded; an
// unencodable payload yields a frame with null data rather than an error,
// since broadcast paths have nowhere to report one.
func Envelope(event string, payload any) []byte {
	data, err := json.Marshal(payload)
	if err != nil {
		data = []byte("null")
	}
	out, _ := json.Marshal(map[string]json.RawMessage{
		"event": json.RawMessage(strconv.AppendQuote(nil, event)),
		"data":  json.RawMessage(data),
	})
	return out
}

// Generic SSE event type constants (infrastructure only).
// Domain-specific event types should be defined in your application.
const (
	// EventTypeConnected is sent when a client successfully connects.
	EventTypeConnected = "connected"

	// EventTypeKeepAlive is used for keep-alive comments.
	EventTypeKeepAlive = "keepalive"

	// EventTypeMessage is a generic message event.
	EventTypeMessage = "message"

	// EventTypeError is sent when an error occurs.
	EventTypeError = "error"

	// EventTypeMetric is sent for metric/telemetry events.
	EventTypeMetric = "metric"
)
