package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/LMDG1/LotteThesisMindSortCode/internal/session"
	"github.com/LMDG1/LotteThesisMindSortCode/internal/ui/theme"
)

// simulationStep is one presentation in a simulated session.
type simulationStep struct {
	Step      int    `json:"step"`
	ItemID    string `json:"item"`
	ClusterID int    `json:"cluster"`
	Round     int    `json:"round"`
	TimesSeen int    `json:"times_seen"`
}

// simulationResult is the machine-readable output of simulate --json.
type simulationResult struct {
	SessionID string                  `json:"session_id"`
	Deck      string                  `json:"deck"`
	Strategy  string                  `json:"strategy"`
	Items     int                     `json:"items"`
	Answers   int                     `json:"answers"`
	Completed bool                    `json:"completed"`
	Clusters  []session.ClusterResult `json:"clusters,omitempty"`
	Order     []simulationStep        `json:"order"`
}

var simulateCmd = &cobra.Command{
	Use:   "simulate [deck]",
	Short: "Run a session with a scripted learner and print the presentation order",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		seed, _ := cmd.Flags().GetUint64("seed")
		record, _ := cmd.Flags().GetBool("record")
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, err := resolveConfig(cmd, args)
		if err != nil {
			return err
		}
		d, err := loadDeck(cfg)
		if err != nil {
			return err
		}

		opts := session.OptionsFromConfig(cfg)
		opts.Deck = d.Name
		if seed != 0 {
			opts.Rand = rand.New(rand.NewPCG(seed, seed))
		}
		if record {
			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()
			opts.Repo = st.EventRepo()
		}

		sess, err := session.New(d.Items, opts)
		if err != nil {
			return fmt.Errorf("create session: %w", err)
		}
		result, err := simulate(cmd.Context(), sess, limit, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		result.Deck = d.Name

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}
		printSimulation(out, result)
		return nil
	},
}

func init() {
	simulateCmd.Flags().Bool("json", false, "Print the result as JSON")
	simulateCmd.Flags().Uint64("seed", 0, "Seed for reproducible shuffles (0 = random)")
	simulateCmd.Flags().Bool("record", false, "Write the transcript to the database")
	simulateCmd.Flags().Int("limit", 10000, "Stop after this many answers")
}

// simulate answers every presented item with its stored answer until the
// session finishes or limit answers were given. Warnings go to warn.
func simulate(ctx context.Context, sess *session.Session, limit int, warn io.Writer) (*simulationResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := sess.Start(ctx); err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	warnSingletons(warn, sess.Clusters())

	res := &simulationResult{
		SessionID: sess.ID,
		Strategy:  string(sess.Strategy()),
		Items:     len(sess.Items()),
	}
	for it := sess.Current(); it != nil && len(res.Order) < limit; {
		next, err := sess.Answer(ctx, it.Answer, time.Second)
		if err != nil {
			return nil, fmt.Errorf("answer %s: %w", it.ID, err)
		}
		res.Order = append(res.Order, simulationStep{
			Step:      len(res.Order) + 1,
			ItemID:    it.ID,
			ClusterID: sess.ClusterOf(it),
			Round:     sess.RoundOf(it),
			TimesSeen: it.TimesSeen(),
		})
		it = next
	}
	sess.End(ctx)

	sum := session.BuildSummary(sess)
	res.Answers = sum.Answers
	res.Completed = sum.Completed
	res.Clusters = sum.Clusters
	return res, nil
}

func printSimulation(w io.Writer, res *simulationResult) {
	heading := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	fmt.Fprintln(w, heading.Render(fmt.Sprintf("%s · %s · %d items", res.Deck, res.Strategy, res.Items)))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-6s  %-24s  %-8s  %-6s  %s\n", "Step", "Item", "Cluster", "Round", "Seen")
	fmt.Fprintln(w, strings.Repeat("─", 56))
	for _, s := range res.Order {
		cluster := "-"
		if s.ClusterID >= 0 {
			cluster = fmt.Sprintf("%d", s.ClusterID)
		}
		fmt.Fprintf(w, "%-6d  %-24s  %-8s  %-6d  %d\n", s.Step, s.ItemID, cluster, s.Round+1, s.TimesSeen)
	}

	fmt.Fprintln(w)
	status := "completed"
	if !res.Completed {
		status = "stopped at limit"
	}
	fmt.Fprintf(w, "%d answers, %s\n", res.Answers, status)
	for _, c := range res.Clusters {
		fmt.Fprintf(w, "cluster %d: %d items, %d passes\n", c.ID, c.Size, c.Passes)
	}
}
