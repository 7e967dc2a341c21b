package selection

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LMDG1/LotteThesisMindSortCode/internal/cluster"
	"github.com/LMDG1/LotteThesisMindSortCode/internal/item"
)

// fixedStrategy hands out a predetermined partition.
type fixedStrategy struct {
	sizes []int
}

func (f fixedStrategy) Name() string { return "fixed" }

func (f fixedStrategy) Assign(items []*item.Item) ([]*cluster.Cluster, error) {
	var clusters []*cluster.Cluster
	start := 0
	for i, n := range f.sizes {
		clusters = append(clusters, cluster.New(i, items[start:start+n]))
		start += n
	}
	return clusters, nil
}

func makeItems(n int) []*item.Item {
	items := make([]*item.Item, n)
	for i := range items {
		items[i] = item.New(i, "", "", "", item.Point{X: float64(i)})
	}
	return items
}

func seeded(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// runSession answers the head of the queue until the scheduler empties it,
// checking the per-call invariants along the way. It returns the number of
// answers given.
func runSession(t *testing.T, s *ClusteringScheduler, items []*item.Item, limit int) int {
	t.Helper()

	queue, err := s.Advance(items, nil)
	require.NoError(t, err)

	answers := 0
	prev := s.Progress()
	for len(queue) > 0 {
		require.Less(t, answers, limit, "session did not terminate")

		head := queue[0]
		head.RecordAnswer(item.AnswerRecord{})
		answers++
		queue = append(queue[1:], head)

		next, err := s.Advance(queue, head)
		require.NoError(t, err)

		if len(next) >= 2 {
			assert.NotSame(t, head, next[0], "answer %d: item repeated", answers)
		}
		for _, c := range s.Clusters() {
			assert.GreaterOrEqual(t, c.SortingID, 0)
			assert.Less(t, c.SortingID, len(s.Clusters()))
		}

		cur := s.Progress()
		assert.GreaterOrEqual(t, cur.RoundID, prev.RoundID)
		assert.GreaterOrEqual(t, cur.NeededPreviousRounds, prev.NeededPreviousRounds)
		assert.GreaterOrEqual(t, cur.NeedToGoToNextRound, prev.NeedToGoToNextRound)
		prev = cur

		queue = next
	}
	return answers
}

func TestBootstrap_SortsByClusterWithoutCounting(t *testing.T) {
	items := makeItems(5)
	s, err := NewClusteringScheduler(items, fixedStrategy{sizes: []int{2, 3}}, []int{1})
	require.NoError(t, err)

	// Put the second cluster's items first.
	queue := []*item.Item{items[3], items[0], items[4], items[1], items[2]}
	before := cloneQueue(queue)

	out, err := s.Advance(queue, nil)
	require.NoError(t, err)
	assert.Equal(t, []*item.Item{items[0], items[1], items[3], items[4], items[2]}, out)
	assert.Equal(t, before, queue, "caller's queue must not be modified")
	assert.Equal(t, Progress{NeedThisRound: 1, NeedToGoToNextRound: 1}, s.Progress())
	for _, c := range s.Clusters() {
		assert.Equal(t, 0, c.TimesSeen)
		assert.Equal(t, c.ID, c.SortingID)
	}
}

func TestScenario_TwoClustersSingleRound(t *testing.T) {
	items := makeItems(5)
	s, err := NewClusteringScheduler(items, fixedStrategy{sizes: []int{2, 3}}, []int{1}, seeded(1))
	require.NoError(t, err)

	queue, err := s.Advance(items, nil)
	require.NoError(t, err)

	for answers := 1; answers <= 5; answers++ {
		require.NotEmpty(t, queue, "queue emptied early after %d answers", answers-1)
		head := queue[0]
		require.Equal(t, 0, head.TimesSeen(), "item %d presented twice", head.Index)
		head.RecordAnswer(item.AnswerRecord{})
		queue, err = s.Advance(append(queue[1:], head), head)
		require.NoError(t, err)

		if answers < 5 {
			assert.NotEmpty(t, queue, "queue emptied after %d answers", answers)
		}
	}
	assert.Empty(t, queue)
	for _, it := range items {
		assert.Equal(t, 1, it.TimesSeen())
	}
}

func TestScenario_FirstClusterPresentedTogether(t *testing.T) {
	items := makeItems(5)
	s, err := NewClusteringScheduler(items, fixedStrategy{sizes: []int{2, 3}}, []int{1}, seeded(2))
	require.NoError(t, err)

	queue, err := s.Advance(items, nil)
	require.NoError(t, err)

	var order []int
	for len(queue) > 0 {
		head := queue[0]
		order = append(order, head.Index)
		head.RecordAnswer(item.AnswerRecord{})
		queue, err = s.Advance(append(queue[1:], head), head)
		require.NoError(t, err)
	}
	require.Len(t, order, 5)
	assert.ElementsMatch(t, []int{0, 1}, order[:2])
	assert.ElementsMatch(t, []int{2, 3, 4}, order[2:])
}

func TestFullSchedule_EveryItemReachesTarget(t *testing.T) {
	tests := []struct {
		name   string
		sizes  []int
		rounds []int
	}{
		{"default rounds four clusters", []int{3, 2, 4, 2}, DefaultRounds},
		{"two clusters", []int{2, 3}, []int{2, 1}},
		{"single cluster", []int{4}, []int{3}},
		{"three clusters long first round", []int{2, 2, 5}, []int{5, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := 0
			for _, sz := range tt.sizes {
				n += sz
			}
			items := makeItems(n)
			s, err := NewClusteringScheduler(items, fixedStrategy{sizes: tt.sizes}, tt.rounds, seeded(7))
			require.NoError(t, err)

			answers := runSession(t, s, items, 10*n*s.Target())

			assert.Equal(t, n*s.Target(), answers)
			for _, it := range items {
				assert.Equal(t, s.Target(), it.TimesSeen(), "item %d", it.Index)
			}
			assert.Equal(t, len(tt.rounds)-1, s.Progress().RoundID)
			for _, c := range s.Clusters() {
				assert.Equal(t, s.Target(), c.TimesSeen)
			}
		})
	}
}

func TestFullSchedule_ManySeeds(t *testing.T) {
	for seed := uint64(0); seed < 25; seed++ {
		items := makeItems(9)
		s, err := NewClusteringScheduler(items, fixedStrategy{sizes: []int{2, 4, 3}}, DefaultRounds, seeded(seed))
		require.NoError(t, err)
		answers := runSession(t, s, items, 1000)
		assert.Equal(t, 9*7, answers)
	}
}

func TestRoundAdvancement(t *testing.T) {
	items := makeItems(2)
	s, err := NewClusteringScheduler(items, fixedStrategy{sizes: []int{2}}, []int{2, 1}, seeded(3))
	require.NoError(t, err)

	queue, err := s.Advance(items, nil)
	require.NoError(t, err)

	answer := func() {
		head := queue[0]
		head.RecordAnswer(item.AnswerRecord{})
		queue, err = s.Advance(append(queue[1:], head), head)
		require.NoError(t, err)
	}

	for i := 0; i < 4; i++ {
		answer()
		assert.Equal(t, 0, s.Progress().RoundID, "answer %d", i+1)
	}

	answer()
	assert.Equal(t, Progress{
		RoundID:              1,
		NeededPreviousRounds: 2,
		NeedThisRound:        1,
		NeedToGoToNextRound:  3,
	}, s.Progress())

	answer()
	assert.Empty(t, queue)
}

func TestRotation_OnRoundQuotaOnly(t *testing.T) {
	items := makeItems(4)
	s, err := NewClusteringScheduler(items, fixedStrategy{sizes: []int{2, 2}}, []int{2}, seeded(4))
	require.NoError(t, err)
	c0, c1 := s.Clusters()[0], s.Clusters()[1]

	queue, err := s.Advance(items, nil)
	require.NoError(t, err)
	answer := func() {
		head := queue[0]
		head.RecordAnswer(item.AnswerRecord{})
		queue, err = s.Advance(append(queue[1:], head), head)
		require.NoError(t, err)
	}

	// First pass over cluster 0: no rotation yet.
	answer()
	answer()
	assert.Equal(t, 1, c0.TimesSeen)
	assert.Equal(t, 0, c0.SortingID)
	assert.Same(t, c0, mustCluster(t, s, queue[0]))

	// Second pass completes the round quota and hands over to cluster 1.
	answer()
	answer()
	assert.Equal(t, 2, c0.TimesSeen)
	assert.Equal(t, 1, c0.SortingID)
	assert.Equal(t, 0, c1.SortingID)
	assert.Same(t, c1, mustCluster(t, s, queue[0]))
}

func mustCluster(t *testing.T, s *ClusteringScheduler, it *item.Item) *cluster.Cluster {
	t.Helper()
	c, err := s.ClusterOf(it)
	require.NoError(t, err)
	return c
}

func TestAntiRepeat_SingletonClusterSwapsInNeighbour(t *testing.T) {
	items := makeItems(3)
	s, err := NewClusteringScheduler(items, fixedStrategy{sizes: []int{1, 2}}, []int{2}, seeded(5))
	require.NoError(t, err)

	queue, err := s.Advance(items, nil)
	require.NoError(t, err)
	require.Same(t, items[0], queue[0])

	items[0].RecordAnswer(item.AnswerRecord{})
	queue, err = s.Advance(append(queue[1:], items[0]), items[0])
	require.NoError(t, err)

	// Cluster 0 still leads, but its only item was just shown.
	assert.NotSame(t, items[0], queue[0])
	assert.Same(t, items[0], queue[1])
}

func TestAntiRepeat_SingleItemMayRepeat(t *testing.T) {
	items := makeItems(1)
	s, err := NewClusteringScheduler(items, fixedStrategy{sizes: []int{1}}, []int{3})
	require.NoError(t, err)

	queue, err := s.Advance(items, nil)
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		items[0].RecordAnswer(item.AnswerRecord{})
		queue, err = s.Advance(queue, items[0])
		require.NoError(t, err)
		if i < 3 {
			require.Len(t, queue, 1)
			assert.Same(t, items[0], queue[0])
		}
	}
	assert.Empty(t, queue)
}

func TestTermination_RequiresLastRound(t *testing.T) {
	items := makeItems(2)
	s, err := NewClusteringScheduler(items, fixedStrategy{sizes: []int{2}}, []int{1, 1})
	require.NoError(t, err)

	// Both items reach the cumulative target of round 0 only.
	items[0].RecordAnswer(item.AnswerRecord{})
	items[1].RecordAnswer(item.AnswerRecord{})
	queue, err := s.Advance([]*item.Item{items[0], items[1]}, items[1])
	require.NoError(t, err)
	assert.Len(t, queue, 2)
}

func TestAdvance_UnknownItem(t *testing.T) {
	items := makeItems(3)
	s, err := NewClusteringScheduler(items, fixedStrategy{sizes: []int{3}}, []int{1, 5})
	require.NoError(t, err)

	// Past the round 0 threshold: the failed lookup must not advance the round.
	stranger := item.New(42, "", "", "", item.Point{})
	stranger.RecordAnswer(item.AnswerRecord{})
	stranger.RecordAnswer(item.AnswerRecord{})
	before := s.Progress()
	_, err = s.Advance(items, stranger)
	assert.True(t, errors.Is(err, cluster.ErrStateInconsistency), "err = %v", err)
	assert.Equal(t, before, s.Progress())

	_, err = s.Advance([]*item.Item{stranger}, nil)
	assert.True(t, errors.Is(err, cluster.ErrStateInconsistency), "err = %v", err)
}

func TestAdvance_RoundOverrun(t *testing.T) {
	items := makeItems(2)
	s, err := NewClusteringScheduler(items, fixedStrategy{sizes: []int{2}}, []int{1, 1, 1})
	require.NoError(t, err)

	// Jump from 0 straight past the round 1 threshold.
	for i := 0; i < 3; i++ {
		items[0].RecordAnswer(item.AnswerRecord{})
	}
	before := s.Progress()

	_, err = s.Advance(items, items[0])
	var overrun *cluster.RoundOverrunError
	require.True(t, errors.As(err, &overrun), "err = %v", err)
	assert.Equal(t, 3, overrun.TimesSeen)
	assert.True(t, errors.Is(err, cluster.ErrStateInconsistency))
	assert.Equal(t, before, s.Progress(), "progress must not change on overrun")
}

func TestAdvance_PastLastRound(t *testing.T) {
	items := makeItems(1)
	s, err := NewClusteringScheduler(items, fixedStrategy{sizes: []int{1}}, []int{1})
	require.NoError(t, err)

	items[0].RecordAnswer(item.AnswerRecord{})
	items[0].RecordAnswer(item.AnswerRecord{})
	_, err = s.Advance(items, items[0])
	assert.True(t, errors.Is(err, cluster.ErrStateInconsistency), "err = %v", err)
}

func TestNewClusteringScheduler_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name   string
		items  []*item.Item
		rounds []int
	}{
		{"no items", nil, []int{1}},
		{"no rounds", makeItems(2), nil},
		{"zero round", makeItems(2), []int{2, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClusteringScheduler(tt.items, fixedStrategy{sizes: []int{len(tt.items)}}, tt.rounds)
			assert.True(t, errors.Is(err, cluster.ErrInvalidConfiguration), "err = %v", err)
		})
	}

	_, err := NewClusteringScheduler(makeItems(3), cluster.NewVector(0), []int{1})
	assert.True(t, errors.Is(err, cluster.ErrInvalidConfiguration), "err = %v", err)
}

func TestNewClusteringScheduler_RejectsOverlappingStrategy(t *testing.T) {
	items := makeItems(3)
	overlapping := fixedStrategy{sizes: []int{2, 2}}
	_, err := NewClusteringScheduler(append(items, items[0]), overlapping, []int{1})
	assert.True(t, errors.Is(err, cluster.ErrStateInconsistency), "err = %v", err)
}

func TestNewClusteringScheduler_WithVectorStrategy(t *testing.T) {
	items := makeItems(8)
	for i, it := range items {
		it.Position = item.Point{X: float64(i / 4 * 100), Y: float64(i % 4)}
	}
	s, err := NewClusteringScheduler(items, cluster.NewVector(2), DefaultRounds, seeded(9))
	require.NoError(t, err)
	assert.Equal(t, "vector", s.Name())
	assert.Len(t, s.Clusters(), 2)
	assert.Equal(t, 7, s.Target())

	answers := runSession(t, s, items, 1000)
	assert.Equal(t, 8*7, answers)
}
