package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/LMDG1/LotteThesisMindSortCode/internal/cluster"
	"github.com/LMDG1/LotteThesisMindSortCode/internal/kmeans"
	"github.com/LMDG1/LotteThesisMindSortCode/internal/selection"
)

// Strategy names accepted by the Strategy field.
const (
	StrategyVector = "vector"
	StrategyRandom = "random"
	StrategyPlain  = "plain"
)

// Config holds all session configuration.
type Config struct {
	// DBPath is the SQLite transcript database. Empty means the default path.
	DBPath string `yaml:"db_path"`

	// DeckPath is the deck file drilled by play and simulate.
	DeckPath string `yaml:"deck"`

	// Strategy selects the scheduler.
	// Values: "vector", "random", "plain"
	Strategy string `yaml:"strategy"`

	// Rounds is the round schedule of the clustering strategies.
	Rounds []int `yaml:"rounds"`

	// Clusters is the number of clusters (K). Default: 4.
	Clusters int `yaml:"clusters"`

	// MaxPasses is the number of passes of the plain strategy. Default: 7.
	MaxPasses int `yaml:"max_passes"`

	// MaxIterations bounds the k-means iterations. Default: 300.
	MaxIterations int `yaml:"max_iterations"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	rounds := make([]int, len(selection.DefaultRounds))
	copy(rounds, selection.DefaultRounds)
	return Config{
		Strategy:      StrategyVector,
		Rounds:        rounds,
		Clusters:      cluster.DefaultK,
		MaxPasses:     selection.DefaultMaxPasses,
		MaxIterations: kmeans.DefaultMaxIterations,
	}
}

// DefaultConfigPath returns ~/.config/mindsort/config.yaml, honouring
// XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "mindsort", "config.yaml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "mindsort", "config.yaml")
}

// Load builds a Config from defaults, then the YAML file at path (a missing
// file is not an error), then MINDSORT_* environment variables.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = DefaultConfigPath()
	}
	if err := cfg.mergeFile(path); err != nil {
		return cfg, err
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	err := cfg.applyEnv()
	return cfg, err
}

func (c *Config) mergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	var fc Config
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.DBPath != "" {
		c.DBPath = fc.DBPath
	}
	if fc.DeckPath != "" {
		c.DeckPath = resolveRelative(path, fc.DeckPath)
	}
	if fc.Strategy != "" {
		c.Strategy = fc.Strategy
	}
	if len(fc.Rounds) > 0 {
		c.Rounds = fc.Rounds
	}
	if fc.Clusters != 0 {
		c.Clusters = fc.Clusters
	}
	if fc.MaxPasses != 0 {
		c.MaxPasses = fc.MaxPasses
	}
	if fc.MaxIterations != 0 {
		c.MaxIterations = fc.MaxIterations
	}
	return nil
}

func (c *Config) applyEnv() error {
	if p := os.Getenv("MINDSORT_DB"); p != "" {
		c.DBPath = p
	}
	if p := os.Getenv("MINDSORT_DECK"); p != "" {
		c.DeckPath = p
	}
	if s := os.Getenv("MINDSORT_STRATEGY"); s != "" {
		c.Strategy = s
	}
	if r := os.Getenv("MINDSORT_ROUNDS"); r != "" {
		rounds, err := ParseRounds(r)
		if err != nil {
			return fmt.Errorf("MINDSORT_ROUNDS: %w", err)
		}
		c.Rounds = rounds
	}
	if k := os.Getenv("MINDSORT_CLUSTERS"); k != "" {
		n, err := strconv.Atoi(k)
		if err != nil {
			return fmt.Errorf("MINDSORT_CLUSTERS: %w", err)
		}
		c.Clusters = n
	}
	if p := os.Getenv("MINDSORT_MAX_PASSES"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("MINDSORT_MAX_PASSES: %w", err)
		}
		c.MaxPasses = n
	}
	return nil
}

// ParseRounds parses a comma separated round schedule such as "4,2,1".
func ParseRounds(s string) ([]int, error) {
	var rounds []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("parse round %q: %w", part, err)
		}
		rounds = append(rounds, n)
	}
	return rounds, nil
}

// Validate checks that the configuration can start a session.
func (c Config) Validate() error {
	switch c.Strategy {
	case StrategyVector, StrategyRandom:
		if c.Clusters <= 0 {
			return fmt.Errorf("clusters must be positive, got %d", c.Clusters)
		}
		if len(c.Rounds) == 0 {
			return fmt.Errorf("rounds must not be empty for the %s strategy", c.Strategy)
		}
		for i, r := range c.Rounds {
			if r <= 0 {
				return fmt.Errorf("round %d must need at least one pass, got %d", i, r)
			}
		}
	case StrategyPlain:
		if c.MaxPasses <= 0 {
			return fmt.Errorf("max passes must be positive, got %d", c.MaxPasses)
		}
	default:
		return fmt.Errorf("unknown strategy: %q", c.Strategy)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("max iterations must be positive, got %d", c.MaxIterations)
	}
	return nil
}

func resolveRelative(configPath, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(configPath), p)
}
