package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/grammiz/internal/spacedrep"
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "Show the review schedule and what is due today",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		sched := spacedrep.NewScheduler(s.Reviews(), log)
		ctx := commandContext(cmd)
		today := spacedrep.Day(time.Now())

		items, err := sched.List(ctx, cfg.UserID)
		if err != nil {
			return err
		}
		due := sched.DueItems(ctx, cfg.UserID, today)

		out := cmd.OutOrStdout()
		if due.Empty() {
			fmt.Fprintln(out, "Nothing due today.")
		} else {
			fmt.Fprintf(out, "Due today: %d words, %d topics\n", len(due.Tokens), len(due.Topics))
		}
		if len(items) == 0 {
			return nil
		}

		fmt.Fprintln(out)
		fmt.Fprintf(out, "%-6s  %-16s  %-22s  %8s  %-10s  %s\n",
			"Kind", "Item", "Topic", "Interval", "Next", "Status")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for _, it := range items {
			if !all && !it.IsDue(today) {
				continue
			}
			next := it.NextReview.Format("2006-01-02")
			if it.IsDue(today) {
				next = "today"
			}
			fmt.Fprintf(out, "%-6s  %-16s  %-22s  %7dd  %-10s  %s\n",
				it.Key.Kind, truncate(it.Key.ID, 16), truncate(it.Topic, 22), it.IntervalDays, next, it.Status)
		}
		return nil
	},
}

func init() {
	dueCmd.Flags().BoolP("all", "a", false, "Show every scheduled item, not only those due")
}
