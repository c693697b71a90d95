package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stigoleg/keep-busy/internal/activity"
	"github.com/stigoleg/keep-busy/internal/keepalive"
	"github.com/stigoleg/keep-busy/internal/profile"
)

// phase is the run stage shown in the header.
type phase int

const (
	phaseStarting phase = iota
	phaseWarmup
	phaseRunning
	phaseStopped
	phaseFailed
)

func (p phase) String() string {
	switch p {
	case phaseStarting:
		return "Starting"
	case phaseWarmup:
		return "Warming up"
	case phaseRunning:
		return "Running"
	case phaseStopped:
		return "Stopped"
	case phaseFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// recentEvents is how many steps the screen lists.
const recentEvents = 6

// Model holds the state of the status screen.
type Model struct {
	Phase        phase
	Profile      profile.Profile
	DryRun       bool
	KeepAlive    *keepalive.Keeper
	Events       <-chan activity.Event
	Context      activity.WindowContext
	Iteration    int
	Recent       []activity.Event
	WarmupEnds   time.Time
	PauseStarted time.Time
	Pause        time.Duration
	ErrorMessage string
	ShowHelp     bool
	Version      string

	keys     KeyMap
	help     help.Model
	progress progress.Model
}

// NewModel returns a model that follows the given keeper's run.
func NewModel(k *keepalive.Keeper, p profile.Profile) Model {
	return Model{
		Phase:     phaseStarting,
		Profile:   p,
		KeepAlive: k,
		Events:    k.Events(),
		Context:   activity.PrimaryEditor,
		keys:      DefaultKeys(),
		help:      NewHelpModel(),
		progress:  progress.New(progress.WithDefaultGradient(), progress.WithWidth(30), progress.WithoutPercentage()),
	}
}

// SetVersion sets the version shown in the footer.
func (m *Model) SetVersion(v string) {
	m.Version = v
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.Events), tick())
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return Update(msg, m)
}

// View implements tea.Model
func (m Model) View() string {
	return View(m)
}

// WarmupRemaining returns how long until the first operation.
func (m Model) WarmupRemaining() time.Duration {
	if m.Phase != phaseWarmup {
		return 0
	}
	remaining := time.Until(m.WarmupEnds)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// PauseProgress returns how much of the current pause has elapsed, in [0,1].
func (m Model) PauseProgress() float64 {
	if m.Phase != phaseRunning || m.Pause <= 0 {
		return 0
	}
	p := float64(time.Since(m.PauseStarted)) / float64(m.Pause)
	if p > 1 {
		return 1
	}
	return p
}
