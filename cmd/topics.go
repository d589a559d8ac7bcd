package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/grammiz/internal/catalog"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List grammar topics and the filter phrases that select them",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := catalog.Open(cfg.CatalogPath)
		if err != nil {
			log.Warn("catalog unavailable, showing fallback templates", "path", cfg.CatalogPath, "error", err)
		}
		counts := c.TopicCounts()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-18s  %-20s  %9s\n", "Key", "Topic", "Templates")
		fmt.Fprintln(out, strings.Repeat("─", 51))
		for _, k := range catalog.AllTopics() {
			fmt.Fprintf(out, "%-18s  %-20s  %9d\n", k, k.Label(), counts[k])
		}
		fmt.Fprintf(out, "%-18s  %-20s  %9d\n", "", "total", c.Len())

		fmt.Fprintln(out)
		fmt.Fprintf(out, "Filter phrases (first match wins, table v%d)\n", catalog.AliasTableVersion)
		fmt.Fprintln(out, strings.Repeat("─", 51))
		for _, a := range catalog.Aliases() {
			labels := make([]string, len(a.Topics))
			for i, t := range a.Topics {
				labels[i] = t.Label()
			}
			fmt.Fprintf(out, "%-20q  %s\n", a.Phrase, strings.Join(labels, ", "))
		}
		return nil
	},
}
