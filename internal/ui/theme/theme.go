package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette, muted for long drills
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#0EA5E9") // Sky
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#10B981") // Emerald
	Error     = lipgloss.Color("#EF4444") // Red
	Text      = lipgloss.Color("#E2E8F0") // Light Slate
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// clusterColors tints cluster labels; IDs beyond the list wrap around.
var clusterColors = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("#6366F1")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#0EA5E9")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#EC4899")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#A3E635")),
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Revealed = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)

// Cluster returns the label style for cluster id. Negative IDs (no
// clusters) render dim.
func Cluster(id int) lipgloss.Style {
	if id < 0 {
		return lipgloss.NewStyle().Foreground(TextDim)
	}
	return clusterColors[id%len(clusterColors)]
}
