package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/RobertsLab/polyIC-larvae/internal/batch"
	"github.com/RobertsLab/polyIC-larvae/internal/config"
)

// TagStats aggregates the measurements sharing one tag.
type TagStats struct {
	Tag   string `yaml:"tag"`
	Count int    `yaml:"count"`

	// Std fields are sample standard deviations (n-1 denominator) and are
	// NaN for a group of one.
	LengthMean float64 `yaml:"length_mean"`
	LengthStd  float64 `yaml:"length_std"`
	WidthMean  float64 `yaml:"width_mean"`
	WidthStd   float64 `yaml:"width_std"`
}

// Summary aggregates a whole measurement set.
type Summary struct {
	Images       int        `yaml:"images"`
	Measurements int        `yaml:"measurements"`
	MeanLength   float64    `yaml:"mean_length"`
	MeanWidth    float64    `yaml:"mean_width"`
	Implausible  int        `yaml:"implausible"`
	ByTag        []TagStats `yaml:"by_tag"`
}

// Summarize computes run-level and per-tag statistics. Tags are ordered by
// their string value. An empty set yields a zero Summary.
func Summarize(ms []batch.Measurement) Summary {
	if len(ms) == 0 {
		return Summary{}
	}

	images := make(map[string]struct{})
	groups := make(map[string][]batch.Measurement)
	lengths := make([]float64, len(ms))
	widths := make([]float64, len(ms))
	s := Summary{Measurements: len(ms)}

	for i, m := range ms {
		images[m.Image] = struct{}{}
		groups[m.Tag] = append(groups[m.Tag], m)
		lengths[i] = m.Length
		widths[i] = m.Width
		if m.Implausible {
			s.Implausible++
		}
	}
	s.Images = len(images)
	s.MeanLength = mean(lengths)
	s.MeanWidth = mean(widths)

	tags := make([]string, 0, len(groups))
	for tag := range groups {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	for _, tag := range tags {
		g := groups[tag]
		l := make([]float64, len(g))
		w := make([]float64, len(g))
		for i, m := range g {
			l[i] = m.Length
			w[i] = m.Width
		}
		s.ByTag = append(s.ByTag, TagStats{
			Tag:        tag,
			Count:      len(g),
			LengthMean: mean(l),
			LengthStd:  sampleStd(l),
			WidthMean:  mean(w),
			WidthStd:   sampleStd(w),
		})
	}
	return s
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func sampleStd(xs []float64) float64 {
	if len(xs) < 2 {
		return math.NaN()
	}
	m := mean(xs)
	var ss float64
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}

// PrintSummary writes the console report. Values are shown with two
// decimals; unit labels the run-level means.
func PrintSummary(w io.Writer, s Summary, unit string) error {
	fmt.Fprintln(w, "\nSummary:")
	fmt.Fprintf(w, "Total images analyzed: %d\n", s.Images)
	fmt.Fprintf(w, "Total oysters measured: %d\n", s.Measurements)
	fmt.Fprintf(w, "Average length: %.2f %s\n", s.MeanLength, unit)
	fmt.Fprintf(w, "Average width: %.2f %s\n", s.MeanWidth, unit)
	if s.Implausible > 0 {
		fmt.Fprintf(w, "Implausible measurements: %d\n", s.Implausible)
	}

	fmt.Fprintln(w, "\nSummary by tag:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Tag\tCount\tLength mean\tLength std\tWidth mean\tWidth std\t")
	for _, t := range s.ByTag {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\t%.2f\t%.2f\t\n",
			t.Tag, t.Count, t.LengthMean, t.LengthStd, t.WidthMean, t.WidthStd)
	}
	return tw.Flush()
}

// Document is the YAML run summary: the statistics together with the
// parameters that produced them.
type Document struct {
	InputDir     string        `yaml:"input_dir"`
	Table        string        `yaml:"table"`
	Processed    int           `yaml:"processed"`
	FailedImages []string      `yaml:"failed_images,omitempty"`
	Summary      Summary       `yaml:"summary"`
	Config       config.Config `yaml:"config"`
}

// NewDocument assembles a Document for a finished run.
func NewDocument(cfg config.Config, table string, res *batch.RunResult) Document {
	doc := Document{
		InputDir:  cfg.Batch.InputDir,
		Table:     table,
		Processed: res.Processed,
		Summary:   Summarize(res.Measurements),
		Config:    cfg,
	}
	for _, img := range res.Images {
		if !img.Success() {
			doc.FailedImages = append(doc.FailedImages, img.Name)
		}
	}
	return doc
}

// WriteSummaryYAML writes doc to path.
func WriteSummaryYAML(path string, doc Document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
