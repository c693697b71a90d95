package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stigoleg/keep-busy/internal/activity"
)

// tickMsg is sent when the countdown timer ticks
type tickMsg time.Time

// eventMsg carries one scheduler event.
type eventMsg activity.Event

// runEndedMsg is sent once the keeper's event stream closes.
type runEndedMsg struct{}

// Update handles messages and updates the model accordingly.
func Update(msg tea.Msg, m Model) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.ShowHelp && msg.String() == "esc" {
				m.ShowHelp = false
				return m, nil
			}
			if m.KeepAlive != nil {
				if err := m.KeepAlive.Stop(); err != nil {
					m.ErrorMessage = err.Error()
				}
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.ToggleHelp):
			m.ShowHelp = !m.ShowHelp
		}
		return m, nil

	case eventMsg:
		m = applyEvent(m, activity.Event(msg))
		return m, waitForEvent(m.Events)

	case runEndedMsg:
		if m.KeepAlive != nil {
			if err := m.KeepAlive.Wait(); err != nil {
				m.ErrorMessage = err.Error()
				m.Phase = phaseFailed
				return m, tea.Quit
			}
		}
		m.Phase = phaseStopped
		return m, nil

	case tickMsg:
		if m.Phase == phaseStopped || m.Phase == phaseFailed {
			return m, nil
		}
		return m, tick()
	}
	return m, nil
}

func applyEvent(m Model, ev activity.Event) Model {
	switch ev.Phase {
	case activity.PhaseWarmup:
		m.Phase = phaseWarmup
		m.WarmupEnds = ev.Time.Add(ev.Warmup)
	case activity.PhaseReady:
		m.Phase = phaseRunning
	case activity.PhaseStep:
		m.Phase = phaseRunning
		m.Iteration = ev.Iteration
		m.Context = ev.Context
		m.PauseStarted = ev.Time
		m.Pause = ev.Delay
		m.Recent = append(m.Recent, ev)
		if len(m.Recent) > recentEvents {
			m.Recent = m.Recent[len(m.Recent)-recentEvents:]
		}
	}
	return m
}

// waitForEvent blocks on the keeper's stream and turns the next event into a message.
func waitForEvent(events <-chan activity.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return runEndedMsg{}
		}
		return eventMsg(ev)
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
