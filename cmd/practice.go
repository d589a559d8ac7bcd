package cmd

import (
	"github.com/spf13/cobra"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Start a practice session",
	Long: "Start a practice session. Words and topics due for review come first,\n" +
		"then your topic filter, then words you keep getting wrong.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		n, _ := cmd.Flags().GetInt("exercises")
		return runPractice(cmd, topic, n)
	},
}

func runPractice(cmd *cobra.Command, topic string, exercises int) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	_, err = a.Practice(commandContext(cmd), cmd.InOrStdin(), cmd.OutOrStdout(), topic, exercises)
	return err
}

func init() {
	practiceCmd.Flags().StringP("topic", "t", "", `Topic filter, e.g. "past simple" or "irregular verbs"`)
	practiceCmd.Flags().IntP("exercises", "n", 0, "Number of exercises, 5 to 15 (default from config)")
}
