package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"pricepulse/internal/client"
	"pricepulse/internal/components/form"
	"pricepulse/internal/messages"
	"pricepulse/internal/pipeline"
)

// Update handles all application messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Reserve space for: header (1), tab bar (1), form, status bar (1).
		logHeight := msg.Height - m.formHeight() - 4
		if logHeight < 5 {
			logHeight = 5
		}
		m.log.SetSize(msg.Width, logHeight)
		for id, f := range m.forms {
			f.SetWidth(msg.Width)
			m.forms[id] = f
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			if m.state == StateStreaming && m.run != nil {
				// One run per invocation; cancelling frees the tab for the
				// next one.
				m.run.Cancel()
				return m, nil
			}
			return m, tea.Quit

		case "enter":
			if m.state != StateStreaming {
				return m.startRun()
			}

		case "ctrl+n":
			if m.state != StateStreaming {
				return m.switchTab(1)
			}

		case "ctrl+p":
			if m.state != StateStreaming {
				return m.switchTab(-1)
			}

		case "ctrl+l":
			if m.state != StateStreaming {
				m.log.Clear()
				m.err = nil
				m.state = StateIdle
			}
			return m, nil
		}

	// Run events
	case messages.StreamStartMsg:
		m.state = StateStreaming
		m.err = nil
		m.log.Clear()
		m.log.SetAgents(m.pipelines[m.active].Agents)
		m.log.SetStreaming(true)
		return m, waitForEvent(m.run)

	case messages.ThoughtMsg:
		m.log.Append(msg.Agent, msg.Type, msg.Content, msg.IsFinal)
		return m, waitForEvent(m.run)

	case messages.ResultMsg:
		m.log.SetResult(pipeline.RenderResult(msg.Pipeline, msg.Raw))
		return m, waitForEvent(m.run)

	case messages.StreamEndMsg:
		m.state = StateIdle
		m.log.SetStreaming(false)
		m.run = nil
		return m, m.focusActiveForm()

	case messages.CancelledMsg:
		m.state = StateIdle
		m.log.SetStreaming(false)
		m.run = nil
		return m, m.focusActiveForm()

	case messages.ErrorMsg:
		m.err = fmt.Errorf("%s", msg.Message)
		m.state = StateError
		m.log.SetStreaming(false)
		m.run = nil
		return m, m.focusActiveForm()
	}

	// Route input to the active form when not streaming
	if m.state != StateStreaming {
		id := m.activeID()
		f, cmd := m.forms[id].Update(msg)
		m.forms[id] = f
		cmds = append(cmds, cmd)
	}

	// Always allow log scrolling
	var cmd tea.Cmd
	m.log, cmd = m.log.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) switchTab(delta int) (tea.Model, tea.Cmd) {
	m.active = (m.active + delta + len(m.pipelines)) % len(m.pipelines)
	m.log.Clear()
	m.err = nil
	m.state = StateIdle
	return m, m.focusActiveForm()
}

func (m *Model) focusActiveForm() tea.Cmd {
	id := m.activeID()
	f := m.forms[id]
	cmd := f.Focus()
	m.forms[id] = f
	return cmd
}

// startRun cancels any previous run and starts a fresh one for the active
// pipeline from the form values.
func (m Model) startRun() (tea.Model, tea.Cmd) {
	if m.run != nil {
		m.run.Cancel()
	}

	desc := m.pipelines[m.active]
	vals := m.forms[desc.ID].Values()
	ctx := context.Background()

	var (
		run *client.Run
		err error
	)
	switch desc.ID {
	case pipeline.VisualPricing:
		req := client.PricingRequest{
			ProductName: vals[form.KeyProductName],
			Simulate:    m.simulate,
		}
		req.Price, err = parsePrice(vals[form.KeyPrice])
		if err != nil {
			return m.fail(err)
		}
		if fs := vals[form.KeyFeatures]; fs != "" {
			req.Features = splitTrim(fs)
		}
		req.Image, err = loadImage(vals[form.KeyImagePath])
		if err != nil {
			return m.fail(err)
		}
		run, err = m.client.AnalyzePricing(ctx, req)

	case pipeline.LaunchDetect:
		req := client.LaunchRequest{
			CompetitorName: vals[form.KeyCompetitor],
			YourProduct:    vals[form.KeyYourProduct],
			Simulate:       m.simulate,
		}
		req.Image, err = loadImage(vals[form.KeyImagePath])
		if err != nil {
			return m.fail(err)
		}
		run, err = m.client.DetectLaunch(ctx, req)

	case pipeline.CrisisDetect:
		run, err = m.client.DetectCrisis(ctx, client.CrisisRequest{
			ProductName: vals[form.KeyProductName],
			Simulate:    m.simulate,
		})

	case pipeline.MarketTrends:
		run, err = m.client.ForecastTrends(ctx, client.TrendsRequest{
			ProductName: vals[form.KeyProductName],
			Timeframe:   vals[form.KeyTimeframe],
			Simulate:    m.simulate,
		})
	}
	if err != nil {
		return m.fail(err)
	}

	m.run = run
	return m, func() tea.Msg {
		return messages.StreamStartMsg{RunID: run.ID}
	}
}

func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	m.err = err
	m.state = StateError
	return m, nil
}

// waitForEvent blocks on the run's event channel and translates the next
// event, or the terminal state once the channel closes, into a tea.Msg.
func waitForEvent(run *client.Run) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-run.Events()
		if ok {
			if ev.Thought != nil {
				return messages.ThoughtMsg{
					Agent:   ev.Thought.Agent,
					Type:    ev.Thought.Type,
					Content: ev.Thought.Content,
					IsFinal: ev.Thought.IsFinal,
				}
			}
			return messages.ResultMsg{Pipeline: run.Pipeline, Raw: ev.Result}
		}

		switch run.Status() {
		case client.StatusCancelled:
			return messages.CancelledMsg{}
		case client.StatusFailed:
			return messages.ErrorMsg{Message: run.Wait().Error()}
		default:
			return messages.StreamEndMsg{}
		}
	}
}

func parsePrice(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	return v, nil
}

func splitTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// loadImage reads the optional image attachment from disk. An empty path
// means no image.
func loadImage(path string) (*client.ImageAttachment, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	imgType := strings.TrimPrefix(filepath.Ext(path), ".")
	if imgType == "" {
		imgType = "png"
	}
	return &client.ImageAttachment{
		Data:     data,
		Filename: filepath.Base(path),
		Type:     imgType,
	}, nil
}
