// Package app is the bubbletea program tying the pipeline forms, the
// streaming thought log and the backend client together.
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"pricepulse/internal/client"
	"pricepulse/internal/components/form"
	"pricepulse/internal/components/thoughts"
	"pricepulse/internal/pipeline"
)

// State represents the application state
type State int

const (
	StateIdle State = iota
	StateStreaming
	StateError
)

// Model is the main application model
type Model struct {
	client    *client.Client
	pipelines []pipeline.Descriptor
	active    int
	forms     map[pipeline.ID]form.Model
	log       thoughts.Model

	run      *client.Run
	state    State
	simulate bool
	err      error
	width    int
	height   int
	ready    bool
}

// New creates the application model. With simulate set every run asks the
// backend for scripted responses instead of live analysis.
func New(c *client.Client, simulate bool) Model {
	pipelines := pipeline.All()
	forms := make(map[pipeline.ID]form.Model, len(pipelines))
	for _, d := range pipelines {
		forms[d.ID] = form.ForPipeline(d.ID, 80)
	}

	return Model{
		client:    c,
		pipelines: pipelines,
		forms:     forms,
		log:       thoughts.New(80, 20),
		state:     StateIdle,
		simulate:  simulate,
	}
}

// SetPipeline selects the starting tab. Unknown IDs are ignored.
func (m *Model) SetPipeline(id pipeline.ID) {
	for i, d := range m.pipelines {
		if d.ID == id {
			m.active = i
			return
		}
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return m.forms[m.activeID()].Init()
}

func (m Model) activeID() pipeline.ID {
	return m.pipelines[m.active].ID
}
