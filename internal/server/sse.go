package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-scorer/internal/types"
)

// SSE event names used by the streaming batch endpoint.
const (
	eventResult   = "result"
	eventError    = "error"
	eventComplete = "complete"
)

// StreamResult is the payload of a "result" event.
type StreamResult struct {
	Index  int                  `json:"index"`
	Result types.AnalysisResult `json:"result"`
}

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\n", event); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteResult sends one scored document
func (s *SSEWriter) WriteResult(index int, result types.AnalysisResult) error {
	return s.WriteEvent(eventResult, StreamResult{Index: index, Result: result})
}

// WriteError sends an error event
func (s *SSEWriter) WriteError(message string) {
	s.WriteEvent(eventError, map[string]string{"error": message}) //nolint:errcheck
}

// WriteComplete sends a completion event
func (s *SSEWriter) WriteComplete(count int) {
	s.WriteEvent(eventComplete, map[string]int{"count": count}) //nolint:errcheck
}
