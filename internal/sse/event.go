package sse

import "encoding/json"

// ThoughtType classifies the kind of reasoning step an agent streamed.
type ThoughtType string

const (
	ThoughtObservation    ThoughtType = "observation"
	ThoughtAnalysis       ThoughtType = "analysis"
	ThoughtHypothesis     ThoughtType = "hypothesis"
	ThoughtDecision       ThoughtType = "decision"
	ThoughtRecommendation ThoughtType = "recommendation"
)

// Event is the payload decoded from one SSE data record. Every field is
// optional on the wire; which fields are set determines how the event is
// handled (see Consumer.Consume).
type Event struct {
	Agent       string          `json:"agent,omitempty"`
	ThoughtType ThoughtType     `json:"thought_type,omitempty"`
	Content     string          `json:"content,omitempty"`
	IsFinal     bool            `json:"is_final,omitempty"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	Done        bool            `json:"done,omitempty"`
	Error       string          `json:"error,omitempty"`
}

// IsThought reports whether the event carries a dispatchable reasoning
// fragment (both an agent and content).
func (e *Event) IsThought() bool {
	return e.Agent != "" && e.Content != ""
}
