package selection

import (
	"fmt"
	"math/rand/v2"

	"github.com/LMDG1/LotteThesisMindSortCode/internal/cluster"
	"github.com/LMDG1/LotteThesisMindSortCode/internal/item"
)

// DefaultMaxPasses is the number of full passes the plain scheduler makes.
const DefaultMaxPasses = 7

// RepeatScheduler presents the whole queue in a fresh random order on every
// pass, for a fixed number of passes. It has no clusters and no anti-repeat
// rule.
type RepeatScheduler struct {
	passesCompleted int
	queueLength     int
	maxPasses       int
	rand            *rand.Rand
}

var _ Selector = (*RepeatScheduler)(nil)

// NewRepeatScheduler returns a scheduler for a queue of queueLength items.
func NewRepeatScheduler(queueLength, maxPasses int, opts ...Option) (*RepeatScheduler, error) {
	if queueLength <= 0 {
		return nil, &cluster.ConfigError{Field: "queue length", Reason: fmt.Sprintf("must be positive, got %d", queueLength)}
	}
	if maxPasses <= 0 {
		return nil, &cluster.ConfigError{Field: "max passes", Reason: fmt.Sprintf("must be positive, got %d", maxPasses)}
	}
	o := buildOptions(opts)
	return &RepeatScheduler{
		queueLength: queueLength,
		maxPasses:   maxPasses,
		rand:        o.rand,
	}, nil
}

func (s *RepeatScheduler) Name() string { return "plain" }

// Calls returns how many times Advance has run.
func (s *RepeatScheduler) Calls() int { return s.passesCompleted }

// Advance shuffles the queue whenever a new pass begins and empties it once
// maxPasses passes are done. answered is ignored.
func (s *RepeatScheduler) Advance(queue []*item.Item, _ *item.Item) ([]*item.Item, error) {
	out := cloneQueue(queue)
	if s.passesCompleted == 0 || s.passesCompleted%s.queueLength == 0 {
		Shuffle(s.rand, out)
	}
	s.passesCompleted++
	if s.passesCompleted-1 == s.maxPasses*s.queueLength {
		return []*item.Item{}, nil
	}
	return out, nil
}
