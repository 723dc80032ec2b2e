// Package config holds the tunable parameters of the oyster measurement
// pipeline.
//
// Every threshold, kernel size and scale factor used by preprocessing,
// detection and measurement lives here with a documented default. Callers
// start from Default, optionally overlay OYSTER_* environment variables with
// FromEnv, apply their own overrides (CLI flags) and call Validate before
// handing the structure to the pipeline.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Threshold methods accepted by Preprocess.ThresholdMethod.
const (
	ThresholdMean     = "mean"
	ThresholdGaussian = "gaussian"
)

// Output formats accepted by Batch.Format.
const (
	FormatCSV     = "csv"
	FormatParquet = "parquet"
)

// Preprocess controls the image -> binary mask stage.
type Preprocess struct {
	// BlurKernel is the side of the square smoothing kernel. Must be odd.
	// Default 5.
	BlurKernel int `yaml:"blur_kernel"`

	// ThresholdBlock is the side of the neighbourhood used to compute each
	// pixel's local threshold. Must be odd and >= 3. Default 11.
	ThresholdBlock int `yaml:"threshold_block"`

	// ThresholdC is subtracted from the local mean. A pixel is foreground
	// when its intensity is <= mean - C. Default 2.
	ThresholdC float64 `yaml:"threshold_c"`

	// ThresholdMethod selects how the local mean is weighted: "mean" (box)
	// or "gaussian". Default "mean".
	ThresholdMethod string `yaml:"threshold_method"`

	// MorphKernel is the side of the square structuring element used for
	// closing and opening. Must be odd. Default 3.
	MorphKernel int `yaml:"morph_kernel"`
}

// Filter controls which contours become candidate regions.
type Filter struct {
	// MinArea is the exclusive lower bound on contour area in square pixels.
	// Default 1000.
	MinArea float64 `yaml:"min_area"`

	// MinAspect and MaxAspect bound bounding-box width/height. Both ends are
	// exclusive. Defaults 0.5 and 2.0.
	MinAspect float64 `yaml:"min_aspect"`
	MaxAspect float64 `yaml:"max_aspect"`
}

// Measure controls pixel -> physical unit conversion.
type Measure struct {
	// UnitScale is physical units per pixel. Default 0.1.
	UnitScale float64 `yaml:"unit_scale"`

	// Unit is the label printed next to measurements. Default "mm".
	Unit string `yaml:"unit"`

	// MinPlausibleWidth flags (but does not alter) measurements whose width
	// is below this many units. Zero disables flagging. Default 1.0.
	MinPlausibleWidth float64 `yaml:"min_plausible_width"`
}

// Annotate controls the annotated copies written next to the input.
type Annotate struct {
	BoxColor      string `yaml:"box_color"`
	BoxThickness  int    `yaml:"box_thickness"`
	DrawOriented  bool   `yaml:"draw_oriented"`
	OrientedColor string `yaml:"oriented_color"`
	JPEGQuality   int    `yaml:"jpeg_quality"`
}

// Batch controls enumeration and output locations.
type Batch struct {
	InputDir        string   `yaml:"input_dir"`
	Extensions      []string `yaml:"extensions"`
	AnnotatedDir    string   `yaml:"annotated_dir"`
	AnnotatedPrefix string   `yaml:"annotated_prefix"`
	OutputFile      string   `yaml:"output_file"`
	Format          string   `yaml:"format"`
	SummaryFile     string   `yaml:"summary_file,omitempty"`
	Workers         int      `yaml:"workers"`
	OCRTags         bool     `yaml:"ocr_tags"`
}

// Config is the complete parameter set for one run.
type Config struct {
	Preprocess Preprocess `yaml:"preprocess"`
	Filter     Filter     `yaml:"filter"`
	Measure    Measure    `yaml:"measure"`
	Annotate   Annotate   `yaml:"annotate"`
	Batch      Batch      `yaml:"batch"`
}

// Default returns the documented defaults.
func Default() Config {
	return Config{
		Preprocess: Preprocess{
			BlurKernel:      5,
			ThresholdBlock:  11,
			ThresholdC:      2,
			ThresholdMethod: ThresholdMean,
			MorphKernel:     3,
		},
		Filter: Filter{
			MinArea:   1000,
			MinAspect: 0.5,
			MaxAspect: 2.0,
		},
		Measure: Measure{
			UnitScale:         0.1,
			Unit:              "mm",
			MinPlausibleWidth: 1.0,
		},
		Annotate: Annotate{
			BoxColor:      "#00FF00",
			BoxThickness:  2,
			OrientedColor: "#FF00FF",
			JPEGQuality:   95,
		},
		Batch: Batch{
			InputDir:        ".",
			Extensions:      []string{".jpg", ".jpeg"},
			AnnotatedDir:    "annotated",
			AnnotatedPrefix: "annotated_",
			OutputFile:      "oyster_measurements.csv",
			Format:          FormatCSV,
			Workers:         1,
		},
	}
}

// Validate reports the first invalid parameter.
func (c Config) Validate() error {
	p := c.Preprocess
	if err := checkKernel("blur kernel", p.BlurKernel, 1); err != nil {
		return err
	}
	if err := checkKernel("threshold block", p.ThresholdBlock, 3); err != nil {
		return err
	}
	if err := checkKernel("morph kernel", p.MorphKernel, 1); err != nil {
		return err
	}
	switch p.ThresholdMethod {
	case ThresholdMean, ThresholdGaussian:
	default:
		return fmt.Errorf("unknown threshold method %q (want %q or %q)", p.ThresholdMethod, ThresholdMean, ThresholdGaussian)
	}

	f := c.Filter
	if f.MinArea < 0 {
		return fmt.Errorf("min area must be >= 0, got %v", f.MinArea)
	}
	if f.MinAspect < 0 || f.MinAspect >= f.MaxAspect {
		return fmt.Errorf("aspect ratio range (%v, %v) is empty", f.MinAspect, f.MaxAspect)
	}

	if c.Measure.UnitScale <= 0 {
		return fmt.Errorf("unit scale must be > 0, got %v", c.Measure.UnitScale)
	}
	if c.Measure.MinPlausibleWidth < 0 {
		return fmt.Errorf("min plausible width must be >= 0, got %v", c.Measure.MinPlausibleWidth)
	}

	if c.Annotate.BoxThickness < 1 {
		return fmt.Errorf("box thickness must be >= 1, got %d", c.Annotate.BoxThickness)
	}
	if q := c.Annotate.JPEGQuality; q < 1 || q > 100 {
		return fmt.Errorf("jpeg quality must be in [1, 100], got %d", q)
	}

	b := c.Batch
	if b.InputDir == "" {
		return fmt.Errorf("input directory is required")
	}
	if len(b.Extensions) == 0 {
		return fmt.Errorf("at least one image extension is required")
	}
	if b.OutputFile == "" {
		return fmt.Errorf("output file is required")
	}
	switch b.Format {
	case FormatCSV, FormatParquet:
	default:
		return fmt.Errorf("unknown output format %q (want %q or %q)", b.Format, FormatCSV, FormatParquet)
	}
	if b.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", b.Workers)
	}
	return nil
}

func checkKernel(name string, size, min int) error {
	if size < min || size%2 == 0 {
		return fmt.Errorf("%s must be an odd number >= %d, got %d", name, min, size)
	}
	return nil
}

// FromEnv overlays OYSTER_* environment variables onto cfg.
//
// Unset or empty variables leave the field untouched. A variable that is set
// but does not parse is an error.
func FromEnv(cfg Config) (Config, error) {
	var err error
	setInt := func(key string, dst *int) {
		if err != nil {
			return
		}
		if v := os.Getenv(key); v != "" {
			n, perr := strconv.Atoi(v)
			if perr != nil {
				err = fmt.Errorf("invalid %s=%q: %w", key, v, perr)
				return
			}
			*dst = n
		}
	}
	setFloat := func(key string, dst *float64) {
		if err != nil {
			return
		}
		if v := os.Getenv(key); v != "" {
			f, perr := strconv.ParseFloat(v, 64)
			if perr != nil {
				err = fmt.Errorf("invalid %s=%q: %w", key, v, perr)
				return
			}
			*dst = f
		}
	}
	setBool := func(key string, dst *bool) {
		if err != nil {
			return
		}
		if v := os.Getenv(key); v != "" {
			b, perr := strconv.ParseBool(v)
			if perr != nil {
				err = fmt.Errorf("invalid %s=%q: %w", key, v, perr)
				return
			}
			*dst = b
		}
	}
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setInt("OYSTER_BLUR_KERNEL", &cfg.Preprocess.BlurKernel)
	setInt("OYSTER_THRESHOLD_BLOCK", &cfg.Preprocess.ThresholdBlock)
	setFloat("OYSTER_THRESHOLD_C", &cfg.Preprocess.ThresholdC)
	setString("OYSTER_THRESHOLD_METHOD", &cfg.Preprocess.ThresholdMethod)
	setInt("OYSTER_MORPH_KERNEL", &cfg.Preprocess.MorphKernel)
	setFloat("OYSTER_MIN_AREA", &cfg.Filter.MinArea)
	setFloat("OYSTER_MIN_ASPECT", &cfg.Filter.MinAspect)
	setFloat("OYSTER_MAX_ASPECT", &cfg.Filter.MaxAspect)
	setFloat("OYSTER_UNIT_SCALE", &cfg.Measure.UnitScale)
	setString("OYSTER_UNIT", &cfg.Measure.Unit)
	setFloat("OYSTER_MIN_PLAUSIBLE_WIDTH", &cfg.Measure.MinPlausibleWidth)
	setString("OYSTER_ANNOTATED_DIR", &cfg.Batch.AnnotatedDir)
	setString("OYSTER_OUTPUT", &cfg.Batch.OutputFile)
	setString("OYSTER_FORMAT", &cfg.Batch.Format)
	setString("OYSTER_SUMMARY", &cfg.Batch.SummaryFile)
	setInt("OYSTER_WORKERS", &cfg.Batch.Workers)
	setBool("OYSTER_OCR_TAGS", &cfg.Batch.OCRTags)
	setString("OYSTER_BOX_COLOR", &cfg.Annotate.BoxColor)
	setBool("OYSTER_DRAW_ORIENTED", &cfg.Annotate.DrawOriented)
	if v := os.Getenv("OYSTER_EXTENSIONS"); v != "" {
		cfg.Batch.Extensions = splitList(v)
	}
	if err != nil {
		return cfg, err
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !strings.HasPrefix(part, ".") {
			part = "." + part
		}
		out = append(out, strings.ToLower(part))
	}
	return out
}
