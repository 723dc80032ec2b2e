package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "oyster-measure %s\n", info.Version)
			fmt.Fprintf(out, "  Build time: %s\n", info.BuildTime)
			fmt.Fprintf(out, "  Git commit: %s\n", info.GitCommit)
		},
	}
}
