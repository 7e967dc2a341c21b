package session

import "time"

// ClusterResult is one cluster's line on the summary screen.
type ClusterResult struct {
	ID     int      `json:"id"`
	Size   int      `json:"size"`
	Passes int      `json:"passes"`
	Items  []string `json:"items"`
}

// Summary holds the data displayed when a session ends.
type Summary struct {
	SessionID       string
	Strategy        Strategy
	Duration        time.Duration
	Items           int
	Answers         int
	RoundsCompleted int
	RoundCount      int
	Completed       bool
	Clusters        []ClusterResult
}

// BuildSummary creates a Summary from the current session state.
func BuildSummary(s *Session) *Summary {
	sum := &Summary{
		SessionID:  s.ID,
		Strategy:   s.opts.Strategy,
		Duration:   s.Elapsed(),
		Items:      len(s.items),
		Answers:    s.answers,
		RoundCount: s.RoundCount(),
		Completed:  s.completed,
	}

	switch {
	case sum.Completed:
		sum.RoundsCompleted = sum.RoundCount
	case s.clustering != nil:
		sum.RoundsCompleted = s.clustering.Progress().RoundID
	default:
		sum.RoundsCompleted = s.answers / len(s.items)
	}

	for _, c := range s.Clusters() {
		ids := make([]string, 0, c.Len())
		for _, it := range c.Members() {
			ids = append(ids, it.ID)
		}
		sum.Clusters = append(sum.Clusters, ClusterResult{
			ID:     c.ID,
			Size:   c.Len(),
			Passes: c.TimesSeen,
			Items:  ids,
		})
	}
	return sum
}
