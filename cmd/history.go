package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/LMDG1/LotteThesisMindSortCode/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		sessionID, _ := cmd.Flags().GetString("answers")
		since, _ := cmd.Flags().GetDuration("since")

		cfg, err := resolveConfig(cmd, nil)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		repo := st.EventRepo()

		if sessionID != "" {
			return printAnswers(cmd, repo, sessionID)
		}

		opts := store.QueryOpts{Limit: limit}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}
		sessions, err := repo.QuerySessionSummaries(ctx, opts)
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No sessions found.")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-19s  %-8s  %-20s  %5s  %8s  %7s  %s\n",
			"Session", "Ended", "Strategy", "Deck", "Items", "Clusters", "Answers", "Duration")
		fmt.Fprintln(out, strings.Repeat("─", 124))
		for _, s := range sessions {
			deck := s.Deck
			if len(deck) > 20 {
				deck = deck[:20]
			}
			fmt.Fprintf(out, "%-36s  %-19s  %-8s  %-20s  %5d  %8d  %7d  %s\n",
				s.SessionID,
				s.Timestamp.Local().Format("2006-01-02 15:04:05"),
				s.Strategy,
				deck,
				s.ItemCount,
				s.ClusterCount,
				s.Answers,
				(time.Duration(s.DurationSecs) * time.Second).String(),
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of sessions to list (0 = all)")
	historyCmd.Flags().String("answers", "", "Show the answers and partition of one session")
	historyCmd.Flags().Duration("since", 0, "Only list sessions that ended within this duration")
}

func printAnswers(cmd *cobra.Command, repo store.EventRepo, sessionID string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	assignments, err := repo.ClusterAssignments(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("query cluster assignments: %w", err)
	}
	answers, err := repo.SessionAnswers(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("query answers: %w", err)
	}
	if len(answers) == 0 && len(assignments) == 0 {
		return fmt.Errorf("session %s not found", sessionID)
	}

	if len(assignments) > 0 {
		byCluster := map[int][]string{}
		var order []int
		for _, a := range assignments {
			if _, ok := byCluster[a.ClusterID]; !ok {
				order = append(order, a.ClusterID)
			}
			byCluster[a.ClusterID] = append(byCluster[a.ClusterID], a.ItemID)
		}
		for _, id := range order {
			fmt.Fprintf(out, "cluster %d: %s\n", id, strings.Join(byCluster[id], ", "))
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "%-5s  %-8s  %-24s  %-7s  %-5s  %-4s  %-7s  %s\n",
		"#", "Time", "Item", "Cluster", "Round", "Seen", "Ms", "Response")
	fmt.Fprintln(out, strings.Repeat("─", 90))
	for i, a := range answers {
		cluster := "-"
		if a.ClusterID >= 0 {
			cluster = fmt.Sprintf("%d", a.ClusterID)
		}
		fmt.Fprintf(out, "%-5d  %-8s  %-24s  %-7s  %-5d  %-4d  %-7d  %s\n",
			i+1,
			a.Timestamp.Local().Format("15:04:05"),
			a.ItemID,
			cluster,
			a.RoundID+1,
			a.TimesSeen,
			a.LatencyMs,
			a.Response,
		)
	}
	return nil
}
