package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LMDG1/LotteThesisMindSortCode/internal/app"
	"github.com/LMDG1/LotteThesisMindSortCode/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play [deck]",
	Short: "Start an interactive drill session",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd, args)
	},
}

// runPlay opens the store, builds the session, and launches the TUI.
func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	d, err := loadDeck(cfg)
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	opts := session.OptionsFromConfig(cfg)
	opts.Deck = d.Name
	opts.Repo = st.EventRepo()

	sess, err := session.New(d.Items, opts)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return app.Run(sess)
}
