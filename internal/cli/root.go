// Package cli defines the oyster-measure command tree.
package cli

import (
	"io"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// BuildInfo identifies the running binary.
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// NewRootCmd builds the command tree.
func NewRootCmd(info BuildInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "oyster-measure",
		Short: "Measure oyster length and width from field photographs",
		Long: `oyster-measure finds oysters photographed on a light background, measures
the length and width of each one with a minimum-area oriented rectangle and
writes the results as a table together with annotated copies of every photo.

Tag numbers and dates are read from file names such as img_tag42_20230615.jpg.
Parameters default to values tuned for the Sequim outplant photos and can be
overridden with OYSTER_* environment variables (a .env file is loaded if
present) or with flags.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(newAnalyzeCmd())
	cmd.AddCommand(newMaskCmd())
	cmd.AddCommand(newVersionCmd(info))

	return cmd
}

// newLogger returns a text logger on w; verbose enables debug records.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
