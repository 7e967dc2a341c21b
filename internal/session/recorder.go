package session

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/LMDG1/LotteThesisMindSortCode/internal/item"
	"github.com/LMDG1/LotteThesisMindSortCode/internal/store"
)

// recorder writes the transcript. Logging failures are reported on stderr
// and never fail the session.
type recorder struct {
	repo store.EventRepo
}

func (r recorder) start(ctx context.Context, s *Session) {
	if r.repo == nil {
		return
	}

	data := store.SessionEventData{
		SessionID: s.ID,
		Action:    store.ActionStart,
		Strategy:  string(s.opts.Strategy),
		Deck:      s.opts.Deck,
		ItemCount: len(s.items),
	}
	clusters := s.Clusters()
	if s.clustering != nil {
		data.ClusterCount = len(clusters)
		data.Rounds = s.clustering.Rounds()
	}
	if err := r.repo.AppendSessionEvent(ctx, data); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log session start: %v\n", err)
	}

	if len(clusters) == 0 {
		return
	}
	var assignments []store.ClusterAssignmentData
	for _, c := range clusters {
		for _, it := range c.Members() {
			assignments = append(assignments, store.ClusterAssignmentData{
				ClusterID: c.ID,
				ItemIndex: it.Index,
				ItemID:    it.ID,
			})
		}
	}
	if err := r.repo.AppendClusterAssignments(ctx, s.ID, assignments); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log cluster assignments: %v\n", err)
	}
}

func (r recorder) answer(ctx context.Context, s *Session, it *item.Item, response string, latency time.Duration) {
	if r.repo == nil {
		return
	}
	data := store.AnswerEventData{
		SessionID: s.ID,
		ItemIndex: it.Index,
		ItemID:    it.ID,
		ClusterID: s.ClusterOf(it),
		RoundID:   s.RoundOf(it),
		TimesSeen: it.TimesSeen(),
		Response:  response,
		LatencyMs: latency.Milliseconds(),
	}
	if err := r.repo.AppendAnswerEvent(ctx, data); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log answer event: %v\n", err)
	}
}

func (r recorder) end(ctx context.Context, s *Session) {
	if r.repo == nil {
		return
	}
	data := store.SessionEventData{
		SessionID:    s.ID,
		Action:       store.ActionEnd,
		Strategy:     string(s.opts.Strategy),
		Deck:         s.opts.Deck,
		ItemCount:    len(s.items),
		ClusterCount: len(s.Clusters()),
		Answers:      s.answers,
		DurationSecs: int(s.Elapsed().Seconds()),
	}
	if s.clustering != nil {
		data.Rounds = s.clustering.Rounds()
	}
	if err := r.repo.AppendSessionEvent(ctx, data); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log session end: %v\n", err)
	}
}
