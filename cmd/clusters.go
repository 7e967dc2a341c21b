package cmd

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/LMDG1/LotteThesisMindSortCode/internal/cluster"
	"github.com/LMDG1/LotteThesisMindSortCode/internal/session"
)

var clustersCmd = &cobra.Command{
	Use:   "clusters [deck]",
	Short: "Show how the chosen strategy partitions a deck",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seed, _ := cmd.Flags().GetUint64("seed")

		cfg, err := resolveConfig(cmd, args)
		if err != nil {
			return err
		}
		d, err := loadDeck(cfg)
		if err != nil {
			return err
		}

		opts := session.OptionsFromConfig(cfg)
		if seed != 0 {
			opts.Rand = rand.New(rand.NewPCG(seed, seed))
		}
		strategy, err := opts.AssignStrategy()
		if err != nil {
			return err
		}
		if strategy == nil {
			return fmt.Errorf("the %s strategy does not cluster items", cfg.Strategy)
		}

		clusters, err := strategy.Assign(d.Items)
		if err != nil {
			return fmt.Errorf("assign clusters: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d items in %d clusters (%s, K=%d)\n\n",
			d.Name, len(d.Items), len(clusters), strategy.Name(), cfg.Clusters)
		for _, c := range cluster.SortedByID(clusters) {
			fmt.Fprintf(out, "cluster %d (%d items)\n", c.ID, c.Len())
			for _, it := range c.Members() {
				fmt.Fprintf(out, "  %-24s  (%7.2f, %7.2f)  %s\n", it.ID, it.Position.X, it.Position.Y, it.Prompt)
			}
		}
		warnSingletons(cmd.ErrOrStderr(), clusters)
		return nil
	},
}

func init() {
	clustersCmd.Flags().Uint64("seed", 0, "Seed for the random strategy (0 = random)")
}

// warnSingletons prints a warning when the partition has one-item clusters.
func warnSingletons(w io.Writer, clusters []*cluster.Cluster) {
	ids := cluster.Singletons(clusters)
	if len(ids) == 0 {
		return
	}
	fmt.Fprintf(w, "warning: clusters %v hold a single item; sessions on this partition usually stop early with a round overrun (try fewer clusters)\n", ids)
}
