// Package messages defines the bubbletea messages exchanged between the
// streaming runs and the UI.
package messages

import (
	"encoding/json"

	"pricepulse/internal/pipeline"
	"pricepulse/internal/sse"
)

// StreamStartMsg signals that a run has started streaming.
type StreamStartMsg struct {
	RunID string
}

// ThoughtMsg carries one agent reasoning fragment.
type ThoughtMsg struct {
	Agent   string
	Type    sse.ThoughtType
	Content string
	IsFinal bool
}

// ResultMsg carries the structured result surfaced once per run.
type ResultMsg struct {
	Pipeline pipeline.ID
	Raw      json.RawMessage
}

// StreamEndMsg signals normal completion of a run.
type StreamEndMsg struct{}

// CancelledMsg signals that the user cancelled the run. Not an error.
type CancelledMsg struct{}

// ErrorMsg signals a failed run.
type ErrorMsg struct {
	Message string
}
