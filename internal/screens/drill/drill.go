// Package drill is the interactive session screen: it shows the current
// prompt, takes a free-text response, reveals the stored answer and moves on
// in the order the session's selector decides.
package drill

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/LMDG1/LotteThesisMindSortCode/internal/item"
	"github.com/LMDG1/LotteThesisMindSortCode/internal/router"
	"github.com/LMDG1/LotteThesisMindSortCode/internal/screen"
	"github.com/LMDG1/LotteThesisMindSortCode/internal/screens/confirm"
	"github.com/LMDG1/LotteThesisMindSortCode/internal/screens/summary"
	"github.com/LMDG1/LotteThesisMindSortCode/internal/session"
	"github.com/LMDG1/LotteThesisMindSortCode/internal/ui/components"
	"github.com/LMDG1/LotteThesisMindSortCode/internal/ui/layout"
)

type phase int

const (
	phaseLoading phase = iota
	phasePrompt
	phaseRevealed
)

// DrillScreen implements screen.Screen for an active session.
type DrillScreen struct {
	sess    *session.Session
	input   components.TextInput
	phase   phase
	ticks   int
	shownAt time.Time
	last    *item.Item
	elapsed time.Duration
	errMsg  string
	now     func() time.Time
}

var _ screen.Screen = (*DrillScreen)(nil)
var _ screen.KeyHintProvider = (*DrillScreen)(nil)
var _ screen.StatusProvider = (*DrillScreen)(nil)

// New creates a DrillScreen for a session that has not been started.
func New(sess *session.Session) *DrillScreen {
	return &DrillScreen{
		sess:  sess,
		input: newInput(),
		now:   time.Now,
	}
}

func newInput() components.TextInput {
	return components.NewTextInput("Type your answer...", 120)
}

func (d *DrillScreen) Init() tea.Cmd {
	return tea.Batch(
		d.startSession(),
		d.input.Init(),
	)
}

func (d *DrillScreen) Title() string {
	return "Drill"
}

func (d *DrillScreen) HeaderStatus() layout.Status {
	if d.sess.Status() == session.StatusNotStarted {
		return layout.Status{Strategy: string(d.sess.Strategy())}
	}
	rounds := d.sess.RoundCount()
	if d.sess.Strategy() == session.StrategyPlain {
		// passes are shown in the body
		rounds = 0
	}
	return layout.Status{
		Strategy: string(d.sess.Strategy()),
		Round:    d.sess.Round(),
		Rounds:   rounds,
	}
}

func (d *DrillScreen) KeyHints() []layout.KeyHint {
	switch d.phase {
	case phaseRevealed:
		return []layout.KeyHint{
			{Key: "any key", Description: "Next"},
		}
	case phasePrompt:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return nil
}

func (d *DrillScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionStartedMsg:
		return d.handleStarted(msg)

	case sessionEndMsg:
		return d.handleSessionEnd()

	case resumeMsg:
		// ticks stop while the dialog is on top
		return d, d.tick()

	case tickMsg:
		if msg.gen != d.ticks || d.sess.Status() != session.StatusActive {
			return d, nil
		}
		d.elapsed = d.sess.Elapsed()
		return d, tickCmd(d.ticks)

	case tea.KeyMsg:
		return d.handleKey(msg)
	}

	if d.phase == phasePrompt {
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(msg)
		return d, cmd
	}
	return d, nil
}

func (d *DrillScreen) startSession() tea.Cmd {
	return func() tea.Msg {
		return sessionStartedMsg{Err: d.sess.Start(context.Background())}
	}
}

// tick starts a new tick chain. Ticks from an earlier chain are dropped.
func (d *DrillScreen) tick() tea.Cmd {
	d.ticks++
	return tickCmd(d.ticks)
}

func tickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (d *DrillScreen) handleStarted(msg sessionStartedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		d.errMsg = msg.Err.Error()
		return d, nil
	}
	if d.sess.Current() == nil {
		return d, func() tea.Msg { return sessionEndMsg{} }
	}
	d.phase = phasePrompt
	d.shownAt = d.now()
	return d, d.tick()
}

func (d *DrillScreen) handleSessionEnd() (screen.Screen, tea.Cmd) {
	d.sess.End(context.Background())
	sum := session.BuildSummary(d.sess)
	return d, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum)}
	}
}

func (d *DrillScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state: any key quits.
	if d.errMsg != "" {
		return d, tea.Quit
	}

	switch d.phase {
	case phaseRevealed:
		if key == "esc" {
			return d, d.confirmQuit()
		}
		return d.next()

	case phasePrompt:
		switch key {
		case "esc":
			return d, d.confirmQuit()
		case "enter":
			return d.submit()
		}
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(msg)
		return d, cmd
	}

	return d, nil
}

// confirmQuit opens the end-early dialog over the drill.
func (d *DrillScreen) confirmQuit() tea.Cmd {
	dialog := confirm.New(d.Title(), "End this session?",
		"Answers so far are kept in the transcript.", sessionEndMsg{}, resumeMsg{})
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: dialog}
	}
}

// submit records the response and reveals the stored answer.
func (d *DrillScreen) submit() (screen.Screen, tea.Cmd) {
	response := d.input.Value()
	if response == "" {
		return d, nil
	}

	d.last = d.sess.Current()
	latency := d.now().Sub(d.shownAt)
	if _, err := d.sess.Answer(context.Background(), response, latency); err != nil {
		d.errMsg = err.Error()
		return d, nil
	}

	d.input.Submit()
	d.phase = phaseRevealed
	return d, nil
}

// next leaves the reveal and shows the following prompt, or ends.
func (d *DrillScreen) next() (screen.Screen, tea.Cmd) {
	if d.sess.Status() == session.StatusFinished {
		return d, func() tea.Msg { return sessionEndMsg{} }
	}
	d.last = nil
	d.phase = phasePrompt
	d.shownAt = d.now()
	return d, d.input.Reset()
}
