package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// version is overridden with -ldflags "-X github.com/abhisek/grammiz/cmd.version=...".
var version = "(devel)"

var versionVerbose bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the grammiz version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		if _, err := fmt.Fprintf(out, "grammiz %s\n", version); err != nil {
			return err
		}
		if versionVerbose {
			_, err := fmt.Fprintf(out, "go:      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			return err
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVarP(&versionVerbose, "verbose", "v", false, "also print the Go toolchain and platform")
}
