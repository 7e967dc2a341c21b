package session

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/LMDG1/LotteThesisMindSortCode/internal/cluster"
	"github.com/LMDG1/LotteThesisMindSortCode/internal/config"
	"github.com/LMDG1/LotteThesisMindSortCode/internal/kmeans"
	"github.com/LMDG1/LotteThesisMindSortCode/internal/store"
)

// Strategy selects how the next item is chosen.
type Strategy string

const (
	// StrategyVector clusters items by position.
	StrategyVector Strategy = config.StrategyVector

	// StrategyRandom uses clusters of the vector sizes filled at random.
	StrategyRandom Strategy = config.StrategyRandom

	// StrategyPlain repeats the whole deck in shuffled passes.
	StrategyPlain Strategy = config.StrategyPlain
)

// Options configures a Session.
type Options struct {
	Strategy      Strategy
	Rounds        []int
	Clusters      int
	MaxPasses     int
	MaxIterations int

	// Deck names the item source in the transcript.
	Deck string

	// Rand drives every shuffle of the session. Nil uses the package source.
	Rand *rand.Rand

	// Repo receives the transcript. Nil disables recording.
	Repo store.EventRepo

	// Now is the clock. Nil uses time.Now.
	Now func() time.Time
}

// DefaultOptions mirrors config.DefaultConfig.
func DefaultOptions() Options {
	return OptionsFromConfig(config.DefaultConfig())
}

// OptionsFromConfig maps the scheduling fields of cfg onto Options.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Strategy:      Strategy(cfg.Strategy),
		Rounds:        cfg.Rounds,
		Clusters:      cfg.Clusters,
		MaxPasses:     cfg.MaxPasses,
		MaxIterations: cfg.MaxIterations,
		Deck:          cfg.DeckPath,
	}
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o Options) primitive() kmeans.Func {
	if o.MaxIterations > 0 {
		return kmeans.New(kmeans.WithMaxIterations(o.MaxIterations))
	}
	return kmeans.New()
}

// AssignStrategy returns the cluster assignment strategy for s, or nil for
// the plain strategy.
func (o Options) AssignStrategy() (cluster.Strategy, error) {
	switch o.Strategy {
	case StrategyVector:
		return &cluster.Vector{K: o.Clusters, Primitive: o.primitive()}, nil
	case StrategyRandom:
		return &cluster.SizeMatchedRandom{K: o.Clusters, Primitive: o.primitive(), Rand: o.Rand}, nil
	case StrategyPlain:
		return nil, nil
	default:
		return nil, &cluster.ConfigError{Field: "strategy", Reason: fmt.Sprintf("unknown strategy %q", o.Strategy)}
	}
}
