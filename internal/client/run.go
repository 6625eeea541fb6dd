package client

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"

	"pricepulse/internal/pipeline"
	"pricepulse/internal/sse"
)

// Status is the terminal-state machine of a run:
// running -> completed | failed | cancelled.
type Status int

const (
	StatusRunning Status = iota
	StatusCompleted
	StatusFailed
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Thought is one reasoning fragment dispatched by an agent.
type Thought struct {
	Agent   string
	Type    sse.ThoughtType
	Content string
	IsFinal bool
}

// RunEvent is delivered on Run.Events() as the stream progresses. Exactly one
// field is set.
type RunEvent struct {
	Thought *Thought
	Result  json.RawMessage
}

// Run is one end-to-end invocation of a pipeline. It owns the cancellation
// handle and accumulates the append-only output log; the underlying stream
// consumer stays stateless. A Run is good for a single invocation — start a
// fresh one per analysis and cancel the old one first.
type Run struct {
	ID       string
	Pipeline pipeline.ID

	cancel context.CancelFunc
	events chan RunEvent
	done   chan struct{}

	mu          sync.Mutex
	thoughts    []Thought
	result      json.RawMessage
	activeAgent string
	status      Status
	err         error
}

func newRun(id pipeline.ID, cancel context.CancelFunc) *Run {
	return &Run{
		ID:       uuid.NewString(),
		Pipeline: id,
		cancel:   cancel,
		events:   make(chan RunEvent, 100),
		done:     make(chan struct{}),
		status:   StatusRunning,
	}
}

// Events returns the stream of run events. The channel closes once the run
// reaches a terminal state; check Status and Err afterwards.
func (r *Run) Events() <-chan RunEvent {
	return r.events
}

// Cancel aborts the underlying stream. Safe to call more than once; the run
// ends in StatusCancelled, never StatusFailed.
func (r *Run) Cancel() {
	r.cancel()
}

// Wait blocks until the run reaches a terminal state and returns its error,
// nil for completed and cancelled runs.
func (r *Run) Wait() error {
	<-r.done
	return r.Err()
}

// Status returns the run's current state.
func (r *Run) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Err returns the failure cause for StatusFailed runs, nil otherwise.
func (r *Run) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status == StatusFailed {
		return r.err
	}
	return nil
}

// Thoughts returns a snapshot of the accumulated output log.
func (r *Run) Thoughts() []Thought {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Thought, len(r.thoughts))
	copy(out, r.thoughts)
	return out
}

// Result returns the structured result if the pipeline surfaced one.
func (r *Run) Result() json.RawMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result
}

// ActiveAgent returns the agent that most recently streamed a thought, empty
// once the run ends.
func (r *Run) ActiveAgent() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.activeAgent
}

func (r *Run) onThought(ev sse.Event) {
	th := Thought{
		Agent:   ev.Agent,
		Type:    ev.ThoughtType,
		Content: ev.Content,
		IsFinal: ev.IsFinal,
	}

	r.mu.Lock()
	r.thoughts = append(r.thoughts, th)
	r.activeAgent = ev.Agent
	r.mu.Unlock()

	r.events <- RunEvent{Thought: &th}
}

func (r *Run) onResult(raw json.RawMessage) {
	r.mu.Lock()
	r.result = raw
	r.mu.Unlock()

	r.events <- RunEvent{Result: raw}
}

// finish maps the consumer's return value onto the terminal state and
// releases the run's resources.
func (r *Run) finish(err error) {
	r.mu.Lock()
	switch {
	case err == nil:
		r.status = StatusCompleted
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// User cancellation is not a failure. Transient UI markers reset.
		r.status = StatusCancelled
	default:
		r.status = StatusFailed
		r.err = err
	}
	r.activeAgent = ""
	r.mu.Unlock()

	close(r.events)
	close(r.done)
	r.cancel()
}
