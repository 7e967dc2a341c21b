package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/LMDG1/LotteThesisMindSortCode/internal/screen"
	"github.com/LMDG1/LotteThesisMindSortCode/internal/session"
	"github.com/LMDG1/LotteThesisMindSortCode/internal/ui/layout"
	"github.com/LMDG1/LotteThesisMindSortCode/internal/ui/theme"
)

// maxListedItems caps the item ids printed per cluster.
const maxListedItems = 6

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary *session.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *session.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Exit"},
		{Key: "Esc", Description: "Exit"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			return s, tea.Quit
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	var b strings.Builder

	heading := "Session complete!"
	if !sum.Completed {
		heading = "Session ended early"
	}
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), width, heading))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width,
		fmt.Sprintf("Duration: %d:%02d    Strategy: %s", mins, secs, sum.Strategy)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Items: %d        Answers: %d        Rounds: %d/%d",
		sum.Items, sum.Answers, sum.RoundsCompleted, sum.RoundCount)
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Text), width, statsLine))
	b.WriteString("\n\n")

	if len(sum.Clusters) == 0 {
		return b.String()
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Clusters")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for _, c := range sum.Clusters {
		line := fmt.Sprintf("  cluster %d    %d items    %d passes    %s",
			c.ID, c.Size, c.Passes, listItems(c.Items))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Cluster(c.ID).Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

func listItems(ids []string) string {
	if len(ids) <= maxListedItems {
		return strings.Join(ids, ", ")
	}
	return strings.Join(ids[:maxListedItems], ", ") + fmt.Sprintf(" +%d", len(ids)-maxListedItems)
}
