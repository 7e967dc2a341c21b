package drill

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/LMDG1/LotteThesisMindSortCode/internal/ui/components"
	"github.com/LMDG1/LotteThesisMindSortCode/internal/ui/layout"
	"github.com/LMDG1/LotteThesisMindSortCode/internal/ui/theme"
)

func (d *DrillScreen) View(width, height int) string {
	if d.errMsg != "" {
		return renderError(width, d.errMsg)
	}
	switch d.phase {
	case phaseLoading:
		return layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, "\n\n  Sorting the deck...")
	}
	return d.renderCard(width)
}

// renderCard renders the info line, the prompt and either the input or
// the revealed answer.
func (d *DrillScreen) renderCard(width int) string {
	it := d.last
	if d.phase == phasePrompt {
		it = d.sess.Current()
	}
	if it == nil {
		return ""
	}

	var b strings.Builder

	clusterID := d.sess.ClusterOf(it)
	clusterLabel := "no clusters"
	if clusterID >= 0 {
		clusterLabel = fmt.Sprintf("cluster %d", clusterID)
	}
	infoLeft := theme.Cluster(clusterID).Bold(true).Render("  " + clusterLabel)

	mins := int(d.elapsed.Minutes())
	secs := int(d.elapsed.Seconds()) % 60
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("seen %d×  %d:%02d", it.TimesSeen(), mins, secs))

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), width, it.Prompt))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle(), width, "Answer: "+d.input.View()))
	b.WriteString("\n\n")

	if d.phase == phaseRevealed {
		b.WriteString(layout.Centered(theme.Revealed, width, it.Answer))
		b.WriteString("\n\n")
	}

	bar := components.NewProgressBar("Progress", d.sess.Answers(), d.sess.ExpectedAnswers(), min(width-8, 60))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))

	return b.String()
}

func renderError(width int, msg string) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(theme.Warning, width, "Could not run the session"))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, msg))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(theme.Hint, width, "Press any key to exit"))
	return b.String()
}
