package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/grammiz/internal/llm"
	"github.com/abhisek/grammiz/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM request/response events",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM events",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.LLMEvents().QueryLLMEvents(commandContext(cmd), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM events found.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-11s  %-10s  %-28s  %6s  %6s  %7s  %s\n",
			"ID", "Timestamp", "Purpose", "Provider", "Model", "In", "Out", "Ms", "OK")
		fmt.Fprintln(out, strings.Repeat("─", 108))
		for _, e := range events {
			if purpose != "" && e.Purpose != purpose {
				continue
			}
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-11s  %-10s  %-28s  %6d  %6d  %7d  %s\n",
				e.ID, e.Timestamp.Local().Format(timeLayout), e.Purpose, e.Provider,
				truncate(e.Model, 28), e.InputTokens, e.OutputTokens, e.LatencyMs, ok)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View full request/response for an LLM event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.LLMEvents().GetLLMEvent(commandContext(cmd), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		out := cmd.OutOrStdout()
		fields := [][2]string{
			{"ID", strconv.Itoa(e.ID)},
			{"Time", e.Timestamp.Local().Format(timeLayout)},
			{"Provider", e.Provider},
			{"Model", e.Model},
			{"Purpose", e.Purpose},
			{"Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens)},
			{"Latency", fmt.Sprintf("%dms", e.LatencyMs)},
			{"Success", strconv.FormatBool(e.Success)},
		}
		if usd, ok := llm.EstimateCost(e.Model, e.InputTokens, e.OutputTokens); ok {
			fields = append(fields, [2]string{"Cost", formatCost(usd)})
		}
		if e.ErrorMessage != "" {
			fields = append(fields, [2]string{"Error", e.ErrorMessage})
		}
		for _, f := range fields {
			fmt.Fprintf(out, "%-10s %s\n", f[0]+":", f[1])
		}

		fmt.Fprintln(out)
		printSection(out, "REQUEST", e.RequestBody)
		printSection(out, "RESPONSE", e.ResponseBody)
		return nil
	},
}

func printSection(w io.Writer, title, body string) {
	sep := strings.Repeat("─", 60)
	if body == "" {
		body = "(not captured)"
	}
	fmt.Fprintf(w, "%s\n%s\n%s\n%s\n", sep, title, sep, body)
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage and estimated cost",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := commandContext(cmd)
		byPurpose, err := s.LLMEvents().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(byPurpose) == 0 {
			fmt.Fprintln(out, "No LLM usage recorded yet.")
			return nil
		}

		rule := strings.Repeat("─", 72)
		fmt.Fprintln(out, "Usage by Purpose")
		fmt.Fprintln(out, rule)
		fmt.Fprintf(out, "%-16s  %6s  %10s  %10s  %10s  %8s\n",
			"Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
		fmt.Fprintln(out, rule)

		var calls, in, outTokens int
		for _, u := range byPurpose {
			fmt.Fprintf(out, "%-16s  %6d  %10d  %10d  %10d  %8d\n",
				u.Purpose, u.Calls, u.InputTokens, u.OutputTokens, u.InputTokens+u.OutputTokens, u.AvgLatencyMs)
			calls += u.Calls
			in += u.InputTokens
			outTokens += u.OutputTokens
		}
		fmt.Fprintln(out, rule)
		fmt.Fprintf(out, "%-16s  %6d  %10d  %10d  %10d\n", "TOTAL", calls, in, outTokens, in+outTokens)

		byModel, err := s.LLMEvents().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		if len(byModel) == 0 {
			return nil
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Estimated Cost (USD)")
		fmt.Fprintln(out, rule)
		fmt.Fprintf(out, "%-32s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "Input", "Output", "Cost")
		fmt.Fprintln(out, rule)

		var total float64
		var unpriced []string
		for _, u := range byModel {
			cost := "?"
			if usd, ok := llm.EstimateCost(u.Model, u.InputTokens, u.OutputTokens); ok {
				total += usd
				cost = formatCost(usd)
			} else {
				unpriced = append(unpriced, u.Model)
			}
			fmt.Fprintf(out, "%-32s  %6d  %10d  %10d  %10s\n",
				truncate(u.Model, 32), u.Calls, u.InputTokens, u.OutputTokens, cost)
		}
		fmt.Fprintln(out, rule)

		label := "TOTAL"
		if len(unpriced) > 0 {
			label = "TOTAL (partial)"
		}
		fmt.Fprintf(out, "%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(total))
		if len(unpriced) > 0 {
			fmt.Fprintf(out, "\nPricing unavailable for: %s\n", strings.Join(unpriced, ", "))
		}
		return nil
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (explain, vocabulary)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
