// Package session drives one drill session: it owns the queue and the
// selector, records answers on items and keeps the transcript.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/LMDG1/LotteThesisMindSortCode/internal/cluster"
	"github.com/LMDG1/LotteThesisMindSortCode/internal/item"
	"github.com/LMDG1/LotteThesisMindSortCode/internal/selection"
)

var (
	// ErrFinished is returned when answering after the queue ran empty.
	ErrFinished = errors.New("session finished")

	// ErrNotStarted is returned when answering before Start.
	ErrNotStarted = errors.New("session not started")

	// ErrAlreadyStarted is returned by a second Start.
	ErrAlreadyStarted = errors.New("session already started")
)

// Status is the lifecycle state of a Session.
type Status int

const (
	StatusNotStarted Status = iota
	StatusActive
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusFinished:
		return "finished"
	default:
		return "not-started"
	}
}

// Session presents items in the order its selector decides.
// Not safe for concurrent use.
type Session struct {
	ID string

	opts       Options
	items      []*item.Item
	queue      []*item.Item
	selector   selection.Selector
	clustering *selection.ClusteringScheduler
	rec        recorder

	status    Status
	completed bool
	answers   int
	startedAt time.Time
	endedAt   time.Time
}

// New returns a session over items. Item indexes must be unique; the
// selector is built on Start.
func New(items []*item.Item, opts Options) (*Session, error) {
	if len(items) == 0 {
		return nil, &cluster.ConfigError{Field: "items", Reason: "item set is empty"}
	}
	if _, err := opts.AssignStrategy(); err != nil {
		return nil, err
	}
	seen := make(map[int]bool, len(items))
	for _, it := range items {
		if seen[it.Index] {
			return nil, &cluster.ConfigError{Field: "items", Reason: fmt.Sprintf("duplicate item index %d", it.Index)}
		}
		seen[it.Index] = true
	}

	own := make([]*item.Item, len(items))
	copy(own, items)
	return &Session{
		ID:    uuid.New().String(),
		opts:  opts,
		items: own,
		rec:   recorder{repo: opts.Repo},
	}, nil
}

// Start builds the selector and orders the queue for the first item.
func (s *Session) Start(ctx context.Context) error {
	if s.status != StatusNotStarted {
		return ErrAlreadyStarted
	}

	sel, err := s.buildSelector()
	if err != nil {
		return fmt.Errorf("build selector: %w", err)
	}
	queue, err := sel.Advance(s.items, nil)
	if err != nil {
		return fmt.Errorf("order queue: %w", err)
	}

	s.selector = sel
	s.queue = queue
	s.startedAt = s.opts.now()
	s.status = StatusActive

	s.rec.start(ctx, s)
	if len(s.queue) == 0 {
		s.completed = true
		s.finish(ctx)
	}
	return nil
}

func (s *Session) buildSelector() (selection.Selector, error) {
	var opts []selection.Option
	if s.opts.Rand != nil {
		opts = append(opts, selection.WithRand(s.opts.Rand))
	}

	strategy, err := s.opts.AssignStrategy()
	if err != nil {
		return nil, err
	}
	if strategy == nil {
		return selection.NewRepeatScheduler(len(s.items), s.opts.MaxPasses, opts...)
	}

	cs, err := selection.NewClusteringScheduler(s.items, strategy, s.opts.Rounds, opts...)
	if err != nil {
		return nil, err
	}
	s.clustering = cs
	return cs, nil
}

// Answer records response for the current item and moves on. It returns
// the next item, or nil when the session has just finished. A selector error
// ends the session without completing it.
func (s *Session) Answer(ctx context.Context, response string, latency time.Duration) (*item.Item, error) {
	switch s.status {
	case StatusNotStarted:
		return nil, ErrNotStarted
	case StatusFinished:
		return nil, ErrFinished
	}

	head := s.queue[0]
	head.RecordAnswer(item.AnswerRecord{Response: response, Latency: latency, At: s.opts.now()})
	s.answers++

	rotated := make([]*item.Item, 0, len(s.queue))
	rotated = append(rotated, s.queue[1:]...)
	rotated = append(rotated, head)

	next, err := s.selector.Advance(rotated, head)
	if err != nil {
		// The answer stands; the selector cannot go on from here.
		s.queue = rotated
		s.rec.answer(ctx, s, head, response, latency)
		s.finish(ctx)
		return nil, fmt.Errorf("advance after item %d: %w", head.Index, err)
	}
	s.queue = next

	s.rec.answer(ctx, s, head, response, latency)
	if len(s.queue) == 0 {
		s.completed = true
		s.finish(ctx)
		return nil, nil
	}
	return s.queue[0], nil
}

// End closes an active session early. It is a no-op once finished.
func (s *Session) End(ctx context.Context) {
	if s.status == StatusActive {
		s.finish(ctx)
	}
}

func (s *Session) finish(ctx context.Context) {
	s.status = StatusFinished
	s.endedAt = s.opts.now()
	s.rec.end(ctx, s)
}

// Current returns the item to present, or nil when nothing is queued.
func (s *Session) Current() *item.Item {
	if s.status != StatusActive || len(s.queue) == 0 {
		return nil
	}
	return s.queue[0]
}

// Status reports where the session is in its lifecycle.
func (s *Session) Status() Status { return s.status }

// Completed reports whether the selector ran out of items, as opposed to
// the session being ended early.
func (s *Session) Completed() bool { return s.completed }

// Strategy returns the configured strategy.
func (s *Session) Strategy() Strategy { return s.opts.Strategy }

// Items returns the session's items in input order.
func (s *Session) Items() []*item.Item { return s.items }

// Queue returns a copy of the pending presentation order.
func (s *Session) Queue() []*item.Item {
	out := make([]*item.Item, len(s.queue))
	copy(out, s.queue)
	return out
}

// Answers returns the number of answers recorded.
func (s *Session) Answers() int { return s.answers }

// Round returns the active round index. Plain sessions count full passes.
func (s *Session) Round() int {
	if s.clustering != nil {
		return s.clustering.Progress().RoundID
	}
	return min(s.answers/len(s.items), s.opts.MaxPasses-1)
}

// RoundOf returns the round the latest answer to it counted toward. Call it
// right after Answer.
func (s *Session) RoundOf(it *item.Item) int {
	if s.clustering != nil {
		return s.clustering.Progress().RoundID
	}
	return max(it.TimesSeen()-1, 0)
}

// RoundCount returns the number of rounds in the schedule.
func (s *Session) RoundCount() int {
	if s.clustering != nil {
		return len(s.clustering.Rounds())
	}
	return s.opts.MaxPasses
}

// ExpectedAnswers returns how many answers a completed session takes.
func (s *Session) ExpectedAnswers() int {
	if s.clustering != nil {
		return len(s.items) * s.clustering.Target()
	}
	return len(s.items) * s.opts.MaxPasses
}

// Clusters returns the partition, or nil before Start and for plain sessions.
func (s *Session) Clusters() []*cluster.Cluster {
	if s.clustering == nil {
		return nil
	}
	return cluster.SortedByID(s.clustering.Clusters())
}

// ClusterOf returns the ID of the cluster holding it, or -1 without clusters.
func (s *Session) ClusterOf(it *item.Item) int {
	if s.clustering == nil {
		return -1
	}
	c, err := s.clustering.ClusterOf(it)
	if err != nil {
		return -1
	}
	return c.ID
}

// Elapsed returns the session duration so far, or the final duration once
// finished.
func (s *Session) Elapsed() time.Duration {
	switch s.status {
	case StatusNotStarted:
		return 0
	case StatusFinished:
		return s.endedAt.Sub(s.startedAt)
	default:
		return s.opts.now().Sub(s.startedAt)
	}
}
