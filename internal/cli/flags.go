package cli

import (
	"github.com/spf13/pflag"

	"github.com/RobertsLab/polyIC-larvae/internal/config"
)

// flagBinder registers flags backed by a private Config and copies only the
// flags the user actually set onto a target Config. This keeps the
// precedence defaults < environment < flags.
type flagBinder struct {
	src     *config.Config
	setters map[string]func(dst *config.Config)
}

func newFlagBinder() *flagBinder {
	cfg := config.Default()
	return &flagBinder{
		src:     &cfg,
		setters: make(map[string]func(dst *config.Config)),
	}
}

// bind defines one flag with define (e.g. fs.IntVar) on the field selected
// by field.
func bind[T any](b *flagBinder, define func(*T, string, T, string), name string, field func(*config.Config) *T, usage string) {
	p := field(b.src)
	define(p, name, *p, usage)
	b.setters[name] = func(dst *config.Config) {
		*field(dst) = *field(b.src)
	}
}

// apply copies every changed flag in fs onto dst.
func (b *flagBinder) apply(fs *pflag.FlagSet, dst *config.Config) {
	fs.Visit(func(f *pflag.Flag) {
		if set, ok := b.setters[f.Name]; ok {
			set(dst)
		}
	})
}

func (b *flagBinder) preprocessFlags(fs *pflag.FlagSet) {
	bind(b, fs.IntVar, "blur-kernel", func(c *config.Config) *int { return &c.Preprocess.BlurKernel }, "Side of the Gaussian smoothing kernel (odd)")
	bind(b, fs.IntVar, "threshold-block", func(c *config.Config) *int { return &c.Preprocess.ThresholdBlock }, "Side of the adaptive threshold neighbourhood (odd, >= 3)")
	bind(b, fs.Float64Var, "threshold-c", func(c *config.Config) *float64 { return &c.Preprocess.ThresholdC }, "Constant subtracted from the local mean")
	bind(b, fs.StringVar, "threshold-method", func(c *config.Config) *string { return &c.Preprocess.ThresholdMethod }, "Local mean weighting: mean or gaussian")
	bind(b, fs.IntVar, "morph-kernel", func(c *config.Config) *int { return &c.Preprocess.MorphKernel }, "Side of the closing/opening structuring element (odd)")
}

func (b *flagBinder) analyzeFlags(fs *pflag.FlagSet) {
	b.preprocessFlags(fs)

	bind(b, fs.Float64Var, "min-area", func(c *config.Config) *float64 { return &c.Filter.MinArea }, "Minimum contour area in square pixels (exclusive)")
	bind(b, fs.Float64Var, "min-aspect", func(c *config.Config) *float64 { return &c.Filter.MinAspect }, "Minimum bounding-box width/height (exclusive)")
	bind(b, fs.Float64Var, "max-aspect", func(c *config.Config) *float64 { return &c.Filter.MaxAspect }, "Maximum bounding-box width/height (exclusive)")

	bind(b, fs.Float64Var, "unit-scale", func(c *config.Config) *float64 { return &c.Measure.UnitScale }, "Physical units per pixel")
	bind(b, fs.StringVar, "unit", func(c *config.Config) *string { return &c.Measure.Unit }, "Unit label used in the report")
	bind(b, fs.Float64Var, "min-plausible-width", func(c *config.Config) *float64 { return &c.Measure.MinPlausibleWidth }, "Flag measurements narrower than this (0 disables)")

	bind(b, fs.BoolVar, "draw-oriented", func(c *config.Config) *bool { return &c.Annotate.DrawOriented }, "Also outline the oriented rectangle on annotated images")
	bind(b, fs.StringVar, "box-color", func(c *config.Config) *string { return &c.Annotate.BoxColor }, "Annotation box color (hex)")

	bind(b, fs.StringSliceVar, "ext", func(c *config.Config) *[]string { return &c.Batch.Extensions }, "Image file extensions to process (case-insensitive)")
	bind(b, fs.StringVar, "annotated-dir", func(c *config.Config) *string { return &c.Batch.AnnotatedDir }, "Directory for annotated copies, relative to the input directory")
	bind(b, fs.StringVar, "output", func(c *config.Config) *string { return &c.Batch.OutputFile }, "Results table, relative to the input directory")
	bind(b, fs.StringVar, "format", func(c *config.Config) *string { return &c.Batch.Format }, "Results table format: csv or parquet")
	bind(b, fs.StringVar, "summary", func(c *config.Config) *string { return &c.Batch.SummaryFile }, "Also write a YAML run summary to this path")
	bind(b, fs.IntVar, "workers", func(c *config.Config) *int { return &c.Batch.Workers }, "Number of images analysed in parallel")
	bind(b, fs.BoolVar, "ocr-tags", func(c *config.Config) *bool { return &c.Batch.OCRTags }, "Read tag labels from the photo when the file name has none")
}
