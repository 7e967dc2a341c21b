// Package confirm is a yes/no dialog pushed over another screen.
package confirm

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/LMDG1/LotteThesisMindSortCode/internal/router"
	"github.com/LMDG1/LotteThesisMindSortCode/internal/screen"
	"github.com/LMDG1/LotteThesisMindSortCode/internal/ui/layout"
	"github.com/LMDG1/LotteThesisMindSortCode/internal/ui/theme"
)

// ConfirmScreen asks a question and pops itself with the opener's message
// for the chosen answer.
type ConfirmScreen struct {
	title    string
	question string
	detail   string
	yes      tea.Msg
	no       tea.Msg
}

var _ screen.Screen = (*ConfirmScreen)(nil)
var _ screen.KeyHintProvider = (*ConfirmScreen)(nil)

// New creates a dialog. yes and no are handed to the screen below when the
// dialog closes; either may be nil.
func New(title, question, detail string, yes, no tea.Msg) *ConfirmScreen {
	return &ConfirmScreen{
		title:    title,
		question: question,
		detail:   detail,
		yes:      yes,
		no:       no,
	}
}

func (c *ConfirmScreen) Init() tea.Cmd { return nil }

func (c *ConfirmScreen) Title() string { return c.title }

func (c *ConfirmScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Y", Description: "Yes"},
		{Key: "N", Description: "No"},
	}
}

func (c *ConfirmScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	switch kmsg.String() {
	case "y", "Y":
		return c, pop(c.yes)
	case "n", "N", "esc":
		return c, pop(c.no)
	}
	return c, nil
}

func pop(result tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return router.PopScreenMsg{Result: result}
	}
}

func (c *ConfirmScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(theme.Warning, width, c.question))
	if c.detail != "" {
		b.WriteString("\n\n")
		b.WriteString(layout.Centered(theme.Hint, width, c.detail))
	}
	return b.String()
}
