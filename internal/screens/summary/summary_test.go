package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/LMDG1/LotteThesisMindSortCode/internal/session"
)

func testSummary() *session.Summary {
	return &session.Summary{
		SessionID:       "test-session-id",
		Strategy:        session.StrategyVector,
		Duration:        12 * time.Minute,
		Items:           6,
		Answers:         42,
		RoundsCompleted: 3,
		RoundCount:      3,
		Completed:       true,
		Clusters: []session.ClusterResult{
			{ID: 0, Size: 3, Passes: 7, Items: []string{"paris", "brussels", "amsterdam"}},
			{ID: 1, Size: 3, Passes: 7, Items: []string{"rome", "madrid", "lisbon"}},
		},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary())
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Session Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSummary())
	view := s.View(80, 24)
	for _, want := range []string{"Session complete!", "Answers: 42", "Rounds: 3/3", "cluster 1", "lisbon"} {
		if !strings.Contains(view, want) {
			t.Errorf("summary view missing %q", want)
		}
	}
}

func TestSummaryScreen_EndedEarly(t *testing.T) {
	sum := testSummary()
	sum.Completed = false
	sum.Clusters = nil
	view := New(sum).View(80, 24)
	if !strings.Contains(view, "Session ended early") {
		t.Error("expected early-end heading")
	}
	if strings.Contains(view, "Clusters") {
		t.Error("expected no cluster section without clusters")
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Error("expected a command on Enter (quit)")
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc (quit)")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testSummary())
	hints := s.KeyHints()
	if len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}

func TestListItems(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	if got := listItems(ids); got != "a, b, c, d, e, f +2" {
		t.Errorf("listItems = %q", got)
	}
	if got := listItems(ids[:2]); got != "a, b" {
		t.Errorf("listItems = %q", got)
	}
}
