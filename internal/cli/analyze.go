package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/RobertsLab/polyIC-larvae/internal/batch"
	"github.com/RobertsLab/polyIC-larvae/internal/config"
	"github.com/RobertsLab/polyIC-larvae/internal/report"
	"github.com/RobertsLab/polyIC-larvae/internal/tagocr"
)

func newAnalyzeCmd() *cobra.Command {
	binder := newFlagBinder()
	var verbose bool

	cmd := &cobra.Command{
		Use:   "analyze [directory]",
		Short: "Measure every oyster in a directory of photographs",
		Long: `Analyze every .jpg/.jpeg photograph in a directory (default: the current
directory).

For each photo, oysters are detected, measured and drawn onto an annotated
copy under <directory>/annotated/. All measurements are written to a single
table (<directory>/oyster_measurements.csv by default) and summarized on
stdout, overall and per tag.

Unreadable files are skipped. The command fails if the directory does not
exist, or if no oyster was measured in any photograph.`,
		Example: `  # Analyze the current directory
  oyster-measure analyze

  # Analyze a survey folder with a calibrated scale and 4 workers
  oyster-measure analyze data/outplant/sequim/size --unit-scale 0.085 --workers 4

  # Write Parquet and a YAML summary
  oyster-measure analyze photos --format parquet --summary photos/summary.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv(config.Default())
			if err != nil {
				return err
			}
			binder.apply(cmd.Flags(), &cfg)
			if len(args) == 1 {
				cfg.Batch.InputDir = args[0]
			}

			logger := newLogger(cmd.ErrOrStderr(), verbose)
			return runAnalyze(cmd.Context(), cfg, cmd.OutOrStdout(), logger)
		},
	}

	binder.analyzeFlags(cmd.Flags())
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	return cmd
}

// runAnalyze executes one batch run and writes its outputs.
func runAnalyze(ctx context.Context, cfg config.Config, out io.Writer, logger *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	opts := []batch.Option{batch.WithLogger(logger)}
	if cfg.Batch.OCRTags {
		reader, err := tagocr.New(tagocr.Options{TessdataPrefix: os.Getenv("OYSTER_TESSDATA")})
		if err != nil {
			logger.Warn("OCR tag fallback disabled", "error", err)
		} else {
			defer reader.Close()
			logger.Debug("OCR tag fallback enabled", "tesseract", reader.Version())
			opts = append(opts, batch.WithTagReader(reader))
		}
	}

	analyzer, err := batch.NewAnalyzer(cfg, opts...)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Starting oyster measurement analysis...")
	res, err := analyzer.Run(ctx)
	if errors.Is(err, batch.ErrNoMeasurements) {
		fmt.Fprintln(out, "No measurements were extracted. Please check the images and parameters.")
		return err
	}
	if err != nil {
		return err
	}

	path, err := report.WriteTable(analyzer.OutputPath(), cfg.Batch.Format, res.Measurements)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Results saved to %s\n", path)

	if res.Failed > 0 {
		fmt.Fprintf(out, "Skipped %d unreadable image(s)\n", res.Failed)
	}
	if err := report.PrintSummary(out, report.Summarize(res.Measurements), cfg.Measure.Unit); err != nil {
		return fmt.Errorf("failed to print summary: %w", err)
	}

	if cfg.Batch.SummaryFile != "" {
		if err := report.WriteSummaryYAML(cfg.Batch.SummaryFile, report.NewDocument(cfg, path, res)); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nSummary saved to %s\n", cfg.Batch.SummaryFile)
	}
	return nil
}
