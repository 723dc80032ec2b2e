package batch

import "errors"

var (
	// ErrNoMeasurements means the run completed but no image yielded a
	// single measurement. No table is written in this case.
	ErrNoMeasurements = errors.New("no measurements were extracted")

	// ErrInputDir means the input directory is missing or unreadable.
	ErrInputDir = errors.New("input directory not usable")
)

// Measurement is one oyster measured in one photograph. It maps to one row
// of the results table.
type Measurement struct {
	// Image is the source file name, without directory.
	Image string `yaml:"image"`

	// Date is the 8-digit date token from the file name, or Placeholder.
	Date string `yaml:"date"`

	// Tag is the numeric tag token, or Placeholder.
	Tag string `yaml:"tag"`

	// Oyster is "oyster<N>", N being the 1-based rank by detected area.
	Oyster string `yaml:"oyster"`

	// Length and Width are in physical units, rounded to 2 decimals.
	Length float64 `yaml:"length"`
	Width  float64 `yaml:"width"`

	// Implausible is set when Width is below the configured plausibility
	// bound. The values themselves are left untouched.
	Implausible bool `yaml:"implausible,omitempty"`
}

// ImageResult is the outcome of analysing one photograph.
type ImageResult struct {
	// Path is the input path as enumerated.
	Path string

	// Name is the base file name.
	Name string

	// Measurements holds one entry per detected oyster, largest first.
	// Empty for a successful image with no detections.
	Measurements []Measurement

	// AnnotatedPath is where the annotated copy was written, or empty if it
	// could not be written.
	AnnotatedPath string

	// TagFromOCR reports that Tag was read from the photograph rather than
	// the file name.
	TagFromOCR bool

	// Err is non-nil when the image could not be analysed at all.
	Err error
}

// Success reports whether the image was analysed.
func (r ImageResult) Success() bool {
	return r.Err == nil
}

// RunResult aggregates the per-image results of one run, in input order.
type RunResult struct {
	Images []ImageResult

	// Measurements is the concatenation of every image's measurements.
	Measurements []Measurement

	// Processed and Failed count images by outcome.
	Processed int
	Failed    int

	// Implausible counts measurements flagged as implausible.
	Implausible int
}

func newRunResult(images []ImageResult) *RunResult {
	res := &RunResult{Images: images}
	for _, img := range images {
		if !img.Success() {
			res.Failed++
			continue
		}
		res.Processed++
		for _, m := range img.Measurements {
			if m.Implausible {
				res.Implausible++
			}
		}
		res.Measurements = append(res.Measurements, img.Measurements...)
	}
	return res
}
