package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var explainCmd = &cobra.Command{
	Use:   "explain <word>",
	Short: "Explain what a word means, with an example",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		text, ok := a.Explainer.Vocabulary(commandContext(cmd), strings.Join(args, " "))
		if !ok {
			return errors.New("no explanation available; set an LLM provider API key to enable this")
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}
