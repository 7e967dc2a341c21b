package confirm

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/LMDG1/LotteThesisMindSortCode/internal/router"
)

type endMsg struct{}
type resumeMsg struct{}

func TestConfirm_Answers(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyPressMsg
		want tea.Msg
	}{
		{"yes", tea.KeyPressMsg{Code: 'y', Text: "y"}, endMsg{}},
		{"no", tea.KeyPressMsg{Code: 'n', Text: "n"}, resumeMsg{}},
		{"esc", tea.KeyPressMsg{Code: tea.KeyEscape}, resumeMsg{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New("Drill", "End this session?", "", endMsg{}, resumeMsg{})
			_, cmd := c.Update(tt.key)
			if cmd == nil {
				t.Fatal("expected a pop command")
			}
			msg, ok := cmd().(router.PopScreenMsg)
			if !ok {
				t.Fatalf("expected PopScreenMsg, got %T", cmd())
			}
			if msg.Result != tt.want {
				t.Errorf("result = %#v, want %#v", msg.Result, tt.want)
			}
		})
	}
}

func TestConfirm_IgnoresOtherKeys(t *testing.T) {
	c := New("Drill", "End this session?", "", endMsg{}, resumeMsg{})
	if _, cmd := c.Update(tea.KeyPressMsg{Code: 'x', Text: "x"}); cmd != nil {
		t.Error("expected no command for an unrelated key")
	}
}

func TestConfirm_View(t *testing.T) {
	c := New("Drill", "End this session?", "Answers so far are kept.", nil, nil)
	view := c.View(80, 20)
	if !strings.Contains(view, "End this session?") || !strings.Contains(view, "Answers so far are kept.") {
		t.Errorf("view missing question or detail:\n%s", view)
	}
	if c.Title() != "Drill" {
		t.Errorf("title = %q", c.Title())
	}
}
