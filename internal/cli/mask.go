package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/RobertsLab/polyIC-larvae/internal/config"
	"github.com/RobertsLab/polyIC-larvae/internal/detection"
	oysterimg "github.com/RobertsLab/polyIC-larvae/internal/imaging"
)

func newMaskCmd() *cobra.Command {
	binder := newFlagBinder()
	var output string

	cmd := &cobra.Command{
		Use:   "mask <image>",
		Short: "Write the binary mask of one photograph",
		Long: `Run only the preprocessing stage on one photograph and save the resulting
mask as a black and white PNG (white = oyster candidate).

Useful for checking threshold and kernel settings before a full run.`,
		Example: `  oyster-measure mask img_tag42_20230615.jpg
  oyster-measure mask img_tag42_20230615.jpg --threshold-block 21 -o mask.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv(config.Default())
			if err != nil {
				return err
			}
			binder.apply(cmd.Flags(), &cfg)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			src := args[0]
			if output == "" {
				output = strings.TrimSuffix(src, filepath.Ext(src)) + "_mask.png"
			}

			img, err := oysterimg.Load(src)
			if err != nil {
				return err
			}
			mask := oysterimg.Preprocess(img, cfg.Preprocess)
			if err := imaging.Save(mask.Gray(), output); err != nil {
				return fmt.Errorf("failed to save mask: %w", err)
			}

			candidates := detection.Detect(mask, cfg.Filter)
			fmt.Fprintf(cmd.OutOrStdout(), "Mask saved to %s (%d foreground pixels, %d candidate regions)\n",
				output, mask.Count(), len(candidates))
			return nil
		},
	}

	binder.preprocessFlags(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output PNG path (default <image>_mask.png)")

	return cmd
}
