// Package tui renders offer pricing cards with lipgloss and hosts the
// bubbletea offer browser.
package tui

import "github.com/charmbracelet/lipgloss"

// Palette.
//
//nolint:gochecknoglobals // Shared style constants.
var (
	ColorHeader    = lipgloss.AdaptiveColor{Light: "25", Dark: "39"}
	ColorLabel     = lipgloss.AdaptiveColor{Light: "240", Dark: "250"}
	ColorValue     = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	ColorMuted     = lipgloss.AdaptiveColor{Light: "245", Dark: "241"}
	ColorHighlight = lipgloss.AdaptiveColor{Light: "130", Dark: "214"}
	ColorWarning   = lipgloss.AdaptiveColor{Light: "160", Dark: "203"}
	ColorOK        = lipgloss.AdaptiveColor{Light: "28", Dark: "42"}
	ColorBorder    = lipgloss.AdaptiveColor{Light: "250", Dark: "238"}

	ColorTempoBlue  = lipgloss.Color("33")
	ColorTempoWhite = lipgloss.AdaptiveColor{Light: "244", Dark: "255"}
	ColorTempoRed   = lipgloss.Color("196")

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))
)

// Icons.
const (
	IconAlert      = "⚡"
	IconCurrent    = "●"
	IconArrowRight = "→"
	IconArrowUp    = "↑"
	IconArrowDown  = "↓"
	IconCheck      = "✓"
)
