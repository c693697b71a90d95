// Package ui provides the terminal status screen for the keep-busy application.
package ui

import "github.com/charmbracelet/lipgloss"

// Colors defines the color scheme used throughout the application
type Colors struct {
	Subtle    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Special   lipgloss.AdaptiveColor
	Warning   lipgloss.AdaptiveColor
	Error     lipgloss.AdaptiveColor
}

var defaultColors = Colors{
	Subtle:    lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"},
	Highlight: lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"},
	Special:   lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"},
	Warning:   lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#F5C542"},
	Error:     lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF4040"},
}

// Style represents a collection of styles used in the application
type Style struct {
	Title          lipgloss.Style
	ActiveStatus   lipgloss.Style
	InactiveStatus lipgloss.Style
	WarningStatus  lipgloss.Style
	Label          lipgloss.Style
	Value          lipgloss.Style
	Event          lipgloss.Style
	LatestEvent    lipgloss.Style
	Help           lipgloss.Style
	Error          lipgloss.Style
	Countdown      lipgloss.Style
}

// DefaultStyle returns the default style configuration
func DefaultStyle() Style {
	base := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1)

	return Style{
		Title: base.Copy().
			Bold(true).
			Foreground(defaultColors.Highlight),
		ActiveStatus: base.Copy().
			Foreground(defaultColors.Special),
		InactiveStatus: base.Copy().
			Foreground(defaultColors.Subtle),
		WarningStatus: base.Copy().
			Foreground(defaultColors.Warning),
		Label: base.Copy().
			Width(12).
			Foreground(defaultColors.Subtle),
		Value: lipgloss.NewStyle(),
		Event: base.Copy().
			Foreground(defaultColors.Subtle),
		LatestEvent: base.Copy().
			Bold(true),
		Help: base.Copy().
			Foreground(defaultColors.Subtle),
		Error: base.Copy().
			Foreground(defaultColors.Error),
		Countdown: base.Copy().
			Foreground(defaultColors.Highlight).
			Bold(true),
	}
}

// Current holds the current style configuration
var Current = DefaultStyle()
