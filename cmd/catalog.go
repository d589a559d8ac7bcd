package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/grammiz/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Work with exercise catalogs",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a catalog file for structural problems",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		strict, _ := cmd.Flags().GetBool("strict")

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open catalog: %w", err)
		}
		defer f.Close()

		templates, err := catalog.Parse(f)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		if err := catalog.Validate(templates, strict); err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}

		c := catalog.New(templates)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d templates in %d topics, %d words\n",
			args[0], c.Len(), len(c.TopicCounts()), len(c.Tokens()))
		return nil
	},
}

func init() {
	catalogValidateCmd.Flags().Bool("strict", false, "Require at least one template for every topic")
	catalogCmd.AddCommand(catalogValidateCmd)
}
