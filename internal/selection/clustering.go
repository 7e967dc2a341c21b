package selection

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/LMDG1/LotteThesisMindSortCode/internal/cluster"
	"github.com/LMDG1/LotteThesisMindSortCode/internal/item"
)

// DefaultRounds is the default round schedule: four lockstep passes over
// every cluster, then two more, then one.
var DefaultRounds = []int{4, 2, 1}

// Progress is the round state of a ClusteringScheduler. RoundID and both
// thresholds never decrease over a session; NeedThisRound follows the
// schedule.
type Progress struct {
	// RoundID is the index of the active round.
	RoundID int

	// NeededPreviousRounds is the pass count that completes every earlier round.
	NeededPreviousRounds int

	// NeedThisRound is the number of passes the active round asks for.
	NeedThisRound int

	// NeedToGoToNextRound is the answer count past which an item has moved
	// into the next round.
	NeedToGoToNextRound int
}

// ClusteringScheduler presents clusters one at a time, round-robin, until
// every item has been seen the number of times the round schedule asks for.
type ClusteringScheduler struct {
	strategy string
	set      *cluster.Set
	rounds   []int
	target   int
	progress Progress
	rand     *rand.Rand
}

var _ Selector = (*ClusteringScheduler)(nil)

// NewClusteringScheduler partitions items with strategy and prepares round 0
// of rounds. The partition is validated before the scheduler is returned.
func NewClusteringScheduler(items []*item.Item, strategy cluster.Strategy, rounds []int, opts ...Option) (*ClusteringScheduler, error) {
	if len(items) == 0 {
		return nil, &cluster.ConfigError{Field: "items", Reason: "item set is empty"}
	}
	if len(rounds) == 0 {
		return nil, &cluster.ConfigError{Field: "rounds", Reason: "round schedule is empty"}
	}
	target := 0
	for i, r := range rounds {
		if r <= 0 {
			return nil, &cluster.ConfigError{Field: "rounds", Reason: fmt.Sprintf("round %d needs %d passes", i, r)}
		}
		target += r
	}

	clusters, err := strategy.Assign(items)
	if err != nil {
		return nil, fmt.Errorf("assign clusters: %w", err)
	}
	set, err := cluster.NewSet(items, clusters)
	if err != nil {
		return nil, fmt.Errorf("assign clusters: %w", err)
	}

	o := buildOptions(opts)
	rs := make([]int, len(rounds))
	copy(rs, rounds)
	return &ClusteringScheduler{
		strategy: strategy.Name(),
		set:      set,
		rounds:   rs,
		target:   target,
		progress: Progress{
			NeedThisRound:       rs[0],
			NeedToGoToNextRound: rs[0],
		},
		rand: o.rand,
	}, nil
}

func (s *ClusteringScheduler) Name() string { return s.strategy }

// Progress returns the current round state.
func (s *ClusteringScheduler) Progress() Progress { return s.progress }

// Clusters returns the scheduler's clusters in ID order.
func (s *ClusteringScheduler) Clusters() []*cluster.Cluster { return s.set.Clusters() }

// ClusterOf returns the cluster holding it.
func (s *ClusteringScheduler) ClusterOf(it *item.Item) (*cluster.Cluster, error) {
	return s.set.Of(it)
}

// Rounds returns a copy of the round schedule.
func (s *ClusteringScheduler) Rounds() []int {
	out := make([]int, len(s.rounds))
	copy(out, s.rounds)
	return out
}

// Target is the number of times every item is seen over the whole schedule.
func (s *ClusteringScheduler) Target() int { return s.target }

// Advance reorders queue after answered was answered. The previously shown
// item is expected at the tail of queue. The caller's slice is not modified.
func (s *ClusteringScheduler) Advance(queue []*item.Item, answered *item.Item) ([]*item.Item, error) {
	out := cloneQueue(queue)

	if answered == nil || s.set.Len() == 0 {
		if err := s.sortByCluster(out); err != nil {
			return nil, err
		}
		return out, nil
	}

	// Look up first so an unknown item leaves the round counters alone.
	current, err := s.set.Of(answered)
	if err != nil {
		return nil, err
	}
	if err := s.advanceRound(answered); err != nil {
		return nil, err
	}

	allSeenOnce := current.AllMembersSeenOnceMore()
	passesThisRound := current.RegisterPassIfComplete() - s.progress.NeededPreviousRounds
	if passesThisRound == s.progress.NeedThisRound {
		s.set.RotateAll()
	}

	if len(out) == 0 {
		return out, nil
	}
	previousHead := out[len(out)-1]

	if allSeenOnce {
		Shuffle(s.rand, out)
	}
	if err := s.sortByCluster(out); err != nil {
		return nil, err
	}

	if out[0] == previousHead && len(out) > 1 {
		out[0], out[1] = out[1], out[0]
	}

	if s.finished(out) {
		return []*item.Item{}, nil
	}
	return out, nil
}

// advanceRound moves to the next round when answered has crossed the
// current threshold. A count that crosses more than one boundary leaves the
// state untouched and is reported as a RoundOverrunError.
func (s *ClusteringScheduler) advanceRound(answered *item.Item) error {
	seen := answered.TimesSeen()
	p := s.progress
	if seen <= p.NeedToGoToNextRound {
		return nil
	}

	next := p.RoundID + 1
	if next >= len(s.rounds) || seen > p.NeedToGoToNextRound+s.rounds[next] {
		return &cluster.RoundOverrunError{
			ItemIndex: answered.Index,
			TimesSeen: seen,
			Threshold: p.NeedToGoToNextRound,
		}
	}

	p.NeededPreviousRounds += s.rounds[p.RoundID]
	p.RoundID = next
	p.NeedThisRound = s.rounds[next]
	p.NeedToGoToNextRound += p.NeedThisRound
	s.progress = p
	return nil
}

func (s *ClusteringScheduler) sortByCluster(queue []*item.Item) error {
	keys := make(map[*item.Item]int, len(queue))
	for _, it := range queue {
		c, err := s.set.Of(it)
		if err != nil {
			return err
		}
		keys[it] = c.SortingID
	}
	sort.SliceStable(queue, func(i, j int) bool {
		return keys[queue[i]] < keys[queue[j]]
	})
	return nil
}

// finished reports whether every queued item reached the cumulative target
// during the last round.
func (s *ClusteringScheduler) finished(queue []*item.Item) bool {
	if s.progress.RoundID != len(s.rounds)-1 {
		return false
	}
	for _, it := range queue {
		if it.TimesSeen() != s.target {
			return false
		}
	}
	return true
}
