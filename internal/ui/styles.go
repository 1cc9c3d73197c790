package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // titles, status
	ColorHighlight = "205" // keys, borders
	ColorDanger    = "196" // confirm boxes
	ColorMuted     = "241" // hints
	ColorText      = "252"
	ColorWarning   = "208"
)

// Styles contains shared style definitions used across screens and overlays.
var Styles = struct {
	Title        lipgloss.Style
	TitleWarning lipgloss.Style

	Screen    lipgloss.Style // full-bleed panel screen
	BoxDanger lipgloss.Style // confirm overlay
	HelpBox   lipgloss.Style // leader help bar

	Selected lipgloss.Style
	Muted    lipgloss.Style
	Normal   lipgloss.Style
	Status   lipgloss.Style
	Empty    lipgloss.Style
	Details  lipgloss.Style
	StateTag map[ActivityState]lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	TitleWarning: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorDanger)),
	Screen: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(1, 2),
	BoxDanger: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorDanger)).
		Padding(1, 2).
		Margin(1),
	HelpBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)).
		Padding(0, 1).
		MarginTop(1),
	Selected: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Italic(true),
	Details: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning)),
	StateTag: map[ActivityState]lipgloss.Style{
		StateInactive:              lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDanger)),
		StateTransitioningOrActive: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning)),
		StateOnTop:                 lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent)).Bold(true),
	},
}
