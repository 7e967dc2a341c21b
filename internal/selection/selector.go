// Package selection decides which item to present next after every answer.
//
// A Selector receives the pending queue and the item that was just answered
// and returns the reordered queue. The caller presents the head of the
// returned queue; an empty queue means the session is over. Selectors are
// owned by one session and are not safe for concurrent use.
package selection

import (
	"math/rand/v2"

	"github.com/LMDG1/LotteThesisMindSortCode/internal/item"
)

// Selector is implemented by ClusteringScheduler and RepeatScheduler.
type Selector interface {
	// Advance returns the new presentation order. answered is nil on the
	// first call of a session.
	Advance(queue []*item.Item, answered *item.Item) ([]*item.Item, error)

	// Name identifies the selector in transcripts and the UI.
	Name() string
}

// Shuffle permutes queue in place uniformly at random. A nil r uses the
// package-level source.
func Shuffle(r *rand.Rand, queue []*item.Item) {
	swap := func(i, j int) { queue[i], queue[j] = queue[j], queue[i] }
	if r != nil {
		r.Shuffle(len(queue), swap)
		return
	}
	rand.Shuffle(len(queue), swap)
}

// Option configures a selector.
type Option func(*options)

type options struct {
	rand *rand.Rand
}

// WithRand makes shuffles draw from r, which makes a session reproducible.
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rand = r }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func cloneQueue(queue []*item.Item) []*item.Item {
	out := make([]*item.Item, len(queue))
	copy(out, queue)
	return out
}
