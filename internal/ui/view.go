package ui

import (
	"fmt"
	"strings"

	"github.com/stigoleg/keep-busy/internal/keepalive"
)

// View renders the current state of the model to a string.
func View(m Model) string {
	if m.ShowHelp {
		return Current.Help.Render(HelpText())
	}

	var b strings.Builder

	title := "Keep Busy"
	if m.DryRun {
		title += " (dry run)"
	}
	b.WriteString(Current.Title.Render(title))
	b.WriteString("\n\n")

	b.WriteString(phaseLine(m))
	b.WriteString("\n\n")

	row(&b, "Profile", fmt.Sprintf("%s: %d operations, pause %d-%ds",
		m.Profile.Name, catalogSize(m), m.Profile.DelayMin(), m.Profile.DelayMax()))
	row(&b, "Focus", m.Context.String())
	row(&b, "Iteration", fmt.Sprintf("%d", m.Iteration))
	if m.KeepAlive != nil {
		row(&b, "Health", m.KeepAlive.GetSimulationHealth().String())
	}

	if m.Phase == phaseRunning && m.Pause > 0 {
		b.WriteString("\n")
		b.WriteString(Current.Label.Render("Next in"))
		b.WriteString(m.progress.ViewAs(m.PauseProgress()))
		b.WriteString("\n")
	}

	if len(m.Recent) > 0 {
		b.WriteString("\n")
		for i := len(m.Recent) - 1; i >= 0; i-- {
			ev := m.Recent[i]
			line := fmt.Sprintf("#%d [%d] %s", ev.Iteration, ev.Index, ev.Describe())
			if i == len(m.Recent)-1 {
				b.WriteString(Current.LatestEvent.Render(line))
			} else {
				b.WriteString(Current.Event.Render(line))
			}
			b.WriteString("\n")
		}
	}

	if m.ErrorMessage != "" {
		b.WriteString("\n" + Current.Error.Render(m.ErrorMessage) + "\n")
	}

	b.WriteString("\n" + Current.Help.Render(m.help.View(m.keys)))
	if m.Version != "" {
		b.WriteString("\n" + Current.Help.Render("v"+m.Version))
	}
	return b.String()
}

func phaseLine(m Model) string {
	switch m.Phase {
	case phaseWarmup:
		remaining := m.WarmupRemaining()
		return Current.Countdown.Render(fmt.Sprintf("Warming up: %ds left, switch to your editor now", int(remaining.Seconds()+0.5)))
	case phaseRunning:
		if m.KeepAlive != nil && m.KeepAlive.GetSimulationHealth() == keepalive.SimulationHealthFailed {
			return Current.WarningStatus.Render("Running, but the last operation was not delivered")
		}
		return Current.ActiveStatus.Render("Running")
	case phaseFailed:
		return Current.Error.Render("Failed")
	case phaseStopped:
		return Current.InactiveStatus.Render("Stopped")
	default:
		return Current.InactiveStatus.Render(m.Phase.String())
	}
}

func row(b *strings.Builder, label, value string) {
	b.WriteString(Current.Label.Render(label))
	b.WriteString(Current.Value.Render(value))
	b.WriteString("\n")
}

func catalogSize(m Model) int {
	n := 0
	for _, op := range m.Profile.Operations {
		n += op.Times()
	}
	return n
}

// HelpText is the usage text shown by -h and the help screen.
func HelpText() string {
	return `Keep-Busy Help

Usage:
  keepbusy [flags]

Flags:
  -p, --profile string   Activity profile to run (default "rich")
  -w, --warmup string    Override the warm-up (e.g., "30" or "1m")
      --delay string     Override the pause between operations in seconds (e.g., "3-33")
      --seed int         Random seed for a reproducible run
      --dry-run          Log operations instead of injecting input
      --headless         Log to stderr instead of showing this screen
      --log string       Log file used while this screen is shown (default "debug.log")
      --list-profiles    List built-in profiles and exit
  -v, --version          Show version information
  -h, --help             Show help message

Examples:
  keepbusy                          # Rich profile with the status screen
  keepbusy -p conservative          # Fewer operations, longer pauses
  keepbusy --dry-run --headless     # Print what would happen

Keys:
  h/?   : Toggle this help
  q/Esc : Quit
`
}
