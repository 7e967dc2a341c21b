package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LMDG1/LotteThesisMindSortCode/internal/config"
	"github.com/LMDG1/LotteThesisMindSortCode/internal/deck"
	"github.com/LMDG1/LotteThesisMindSortCode/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mindsort [deck]",
	Short: "Clustered rehearsal of a study deck",
	Long: "MindSort drills a deck of prompt/answer items in an order decided after every answer.\n" +
		"Items placed close together on the sorting canvas are rehearsed together, round by round.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd, args)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MINDSORT_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (default ~/.config/mindsort/config.yaml)")
	rootCmd.PersistentFlags().String("deck", "", "Deck file to drill (overrides MINDSORT_DECK env var)")
	rootCmd.PersistentFlags().String("strategy", "", "Scheduling strategy: vector, random or plain")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(clustersCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveConfig loads the config file and environment, then applies flags
// and an optional positional deck argument, highest priority last.
func resolveConfig(cmd *cobra.Command, args []string) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}

	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if p, _ := cmd.Flags().GetString("deck"); p != "" {
		cfg.DeckPath = p
	}
	if len(args) > 0 {
		cfg.DeckPath = args[0]
	}
	if s, _ := cmd.Flags().GetString("strategy"); s != "" {
		cfg.Strategy = s
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// loadDeck reads the configured deck file.
func loadDeck(cfg config.Config) (*deck.Deck, error) {
	if cfg.DeckPath == "" {
		return nil, errors.New("no deck given: pass a deck file, --deck, or set MINDSORT_DECK")
	}
	d, err := deck.Load(cfg.DeckPath)
	if err != nil {
		return nil, fmt.Errorf("load deck: %w", err)
	}
	return d, nil
}

// openStore opens the transcript database using the configured path, then
// MINDSORT_DB, then the default XDG path.
func openStore(cfg config.Config) (*store.Store, error) {
	dbPath := cfg.DBPath
	if dbPath != "" {
		if err := store.EnsureDir(dbPath); err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
	} else {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		dbPath = p
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
