package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/grammiz/internal/diagnosis"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Show recurring mistakes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		patterns, err := diagnosis.NewTracker(s.Patterns(), log).List(commandContext(cmd), cfg.UserID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(patterns) == 0 {
			fmt.Fprintln(out, "No mistakes recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "%-30s  %-12s  %5s  %-9s  %-10s  %s\n",
			"Pattern", "Word", "Count", "Status", "Last seen", "Example")
		fmt.Fprintln(out, strings.Repeat("─", 96))
		for _, p := range patterns {
			fmt.Fprintf(out, "%-30s  %-12s  %5d  %-9s  %-10s  %s\n",
				p.Kind, truncate(p.Token, 12), p.Occurrences, p.Status,
				p.LastSeen.Local().Format("2006-01-02"), p.Example)
		}
		fmt.Fprintf(out, "\nA pattern becomes active after %d mistakes; active words are practised more often.\n",
			diagnosis.ActiveThreshold)
		return nil
	},
}
