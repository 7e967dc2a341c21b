package layout

import (
	"strings"
	"testing"
)

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{Status{}, ""},
		{Status{Strategy: "plain"}, "plain"},
		{Status{Strategy: "vector", Round: 0, Rounds: 3}, "vector · round 1/3"},
		{Status{Strategy: "vector", Round: 5, Rounds: 3}, "vector · round 3/3"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status%+v.String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(MinWidth-1, MinHeight) {
		t.Error("expected narrow terminal to be too small")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("expected minimum size to fit")
	}
}

func TestContentHeight(t *testing.T) {
	if got := ContentHeight(4); got != 0 {
		t.Errorf("ContentHeight(4) = %d, want 0", got)
	}
	if got := ContentHeight(24); got != 24-HeaderHeight-FooterHeight {
		t.Errorf("ContentHeight(24) = %d", got)
	}
}

func TestRenderHeader_ShowsStatus(t *testing.T) {
	out := RenderHeader("Drill", Status{Strategy: "random", Round: 1, Rounds: 3}, 80)
	for _, want := range []string{"MindSort", "Drill", "random", "round 2/3"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestRenderFooter_ShowsHints(t *testing.T) {
	out := RenderFooter([]KeyHint{{Key: "Enter", Description: "Submit"}}, 80)
	if !strings.Contains(out, "Enter") || !strings.Contains(out, "Submit") {
		t.Errorf("footer missing hint: %q", out)
	}
}
