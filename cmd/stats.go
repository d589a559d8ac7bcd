package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/grammiz/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recent practice sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		sessions, err := s.Sessions().QuerySessions(commandContext(cmd), cfg.UserID, store.QueryOpts{Limit: limit}).Get()
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No sessions yet. Run `grammiz practice` to start.")
			return nil
		}

		fmt.Fprintf(out, "%-10s  %7s  %8s  %6s\n", "Date", "Score", "Accuracy", "Streak")
		fmt.Fprintln(out, strings.Repeat("─", 38))

		var total, correct int
		for _, rec := range sessions {
			fmt.Fprintf(out, "%-10s  %3d/%-3d  %7d%%  %6d\n",
				rec.Date.Format(store.DateLayout), rec.Correct, rec.Total, percent(rec.Correct, rec.Total), rec.BestStreak)
			total += rec.Total
			correct += rec.Correct
		}

		fmt.Fprintln(out, strings.Repeat("─", 38))
		fmt.Fprintf(out, "%-10s  %3d/%-3d  %7d%%\n", "TOTAL", correct, total, percent(correct, total))
		return nil
	},
}

func percent(n, of int) int {
	if of == 0 {
		return 0
	}
	return n * 100 / of
}

func init() {
	statsCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
}
