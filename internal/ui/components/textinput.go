package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/LMDG1/LotteThesisMindSortCode/internal/ui/theme"
)

// TextInput wraps bubbles/textinput for free-text responses. Once submitted
// it stops taking keys until Reset.
type TextInput struct {
	Model     textinput.Model
	MaxWidth  int
	submitted bool
}

// NewTextInput creates a new styled text input.
func NewTextInput(placeholder string, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()

	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}

	return TextInput{
		Model:    ti,
		MaxWidth: maxWidth,
	}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.submitted {
		return t, nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input.
func (t TextInput) View() string {
	if t.submitted {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render(t.Value())
	}
	return t.Model.View()
}

// Value returns the trimmed input value.
func (t TextInput) Value() string {
	return strings.TrimSpace(t.Model.Value())
}

// Submit freezes the input.
func (t *TextInput) Submit() {
	t.submitted = true
}

// Submitted reports whether Submit was called since the last Reset.
func (t TextInput) Submitted() bool {
	return t.submitted
}

// Reset clears the value and accepts keys again.
func (t *TextInput) Reset() tea.Cmd {
	t.submitted = false
	t.Model.Reset()
	return t.Model.Focus()
}
