package batch

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/RobertsLab/polyIC-larvae/internal/config"
	"github.com/RobertsLab/polyIC-larvae/internal/detection"
	"github.com/RobertsLab/polyIC-larvae/internal/imaging"
)

// TagReader reads a tag number printed inside a photograph. It is consulted
// only when the file name carries no tag token.
type TagReader interface {
	ReadTag(img image.Image) (string, error)
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithTagReader enables the in-image tag fallback.
func WithTagReader(r TagReader) Option {
	return func(a *Analyzer) {
		a.tags = r
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = l
	}
}

// Analyzer runs the measurement pipeline over photographs.
//
// An Analyzer is safe for concurrent use as long as its TagReader is.
type Analyzer struct {
	cfg    config.Config
	style  imaging.AnnotateStyle
	logger *slog.Logger
	tags   TagReader
}

// NewAnalyzer validates cfg and returns an Analyzer for it.
func NewAnalyzer(cfg config.Config, opts ...Option) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	style, err := imaging.StyleFromConfig(cfg.Annotate)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	a := &Analyzer{
		cfg:    cfg,
		style:  style,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// AnnotatedDir is the directory annotated copies are written to.
func (a *Analyzer) AnnotatedDir() string {
	return resolve(a.cfg.Batch.InputDir, a.cfg.Batch.AnnotatedDir)
}

// OutputPath is the path of the results table.
func (a *Analyzer) OutputPath() string {
	return resolve(a.cfg.Batch.InputDir, a.cfg.Batch.OutputFile)
}

// resolve interprets p relative to base unless it is absolute.
func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// AnalyzeImage measures every oyster in one photograph and writes its
// annotated copy.
//
// The returned result carries Err when the image cannot be loaded; that is
// the only per-image failure. An image with no detections succeeds with no
// measurements and still gets an annotated copy. Failing to write the copy
// is logged but does not discard the measurements.
func (a *Analyzer) AnalyzeImage(ctx context.Context, path string) ImageResult {
	name := filepath.Base(path)
	res := ImageResult{Path: path, Name: name}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	log := a.logger.With("image", name)
	log.Debug("Analyzing image")

	img, err := imaging.Load(path)
	if err != nil {
		log.Warn("Skipping unreadable image", "error", err)
		res.Err = err
		return res
	}
	if info, err := imaging.Inspect(path, img); err == nil {
		log.Debug("Loaded image",
			"width", info.Width,
			"height", info.Height,
			"format", info.Format,
			"bytes", info.FileSizeBytes)
	}

	mask := imaging.Preprocess(img, a.cfg.Preprocess)
	candidates := detection.Detect(mask, a.cfg.Filter)
	log.Info("Found oysters", "count", len(candidates))

	date, tag := ParseFilename(name)
	if tag == Placeholder && a.tags != nil {
		if t, err := a.tags.ReadTag(img); err != nil {
			log.Debug("No tag found in image", "error", err)
		} else {
			tag = t
			res.TagFromOCR = true
			log.Debug("Read tag from image", "tag", tag)
		}
	}

	anns := make([]imaging.Annotation, 0, len(candidates))
	for i, c := range candidates {
		m := imaging.Measure(c.Contour, a.cfg.Measure.UnitScale)

		implausible := a.cfg.Measure.MinPlausibleWidth > 0 && m.Width < a.cfg.Measure.MinPlausibleWidth
		if implausible {
			log.Warn("Implausible measurement",
				"oyster", i+1,
				"length", m.Length,
				"width", m.Width,
				"unit", a.cfg.Measure.Unit)
		}

		res.Measurements = append(res.Measurements, Measurement{
			Image:       name,
			Date:        date,
			Tag:         tag,
			Oyster:      "oyster" + strconv.Itoa(i+1),
			Length:      m.Length,
			Width:       m.Width,
			Implausible: implausible,
		})

		rect := m.Rect
		anns = append(anns, imaging.Annotation{
			Box:   c.Box,
			Label: strconv.Itoa(i + 1),
			Rect:  &rect,
		})
	}

	out := filepath.Join(a.AnnotatedDir(), a.cfg.Batch.AnnotatedPrefix+name)
	if err := a.writeAnnotated(img, anns, out); err != nil {
		log.Warn("Could not write annotated image", "path", out, "error", err)
	} else {
		res.AnnotatedPath = out
	}

	return res
}

func (a *Analyzer) writeAnnotated(img image.Image, anns []imaging.Annotation, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create annotated directory: %w", err)
	}
	return imaging.SaveAnnotated(imaging.Annotate(img, anns, a.style), path, a.cfg.Annotate.JPEGQuality)
}

// Run analyses every whitelisted image in the input directory.
//
// Images are processed by up to Batch.Workers goroutines; results are
// stored by input index so the returned order never depends on scheduling.
//
// Returns:
//   - *RunResult: Per-image outcomes and the combined measurement set. Also
//     returned alongside ErrNoMeasurements.
//   - error: ErrInputDir (wrapped) for setup problems, ErrNoMeasurements
//     when nothing was measured, or the context error if ctx is cancelled.
func (a *Analyzer) Run(ctx context.Context) (*RunResult, error) {
	paths, err := ListImages(a.cfg.Batch.InputDir, a.cfg.Batch.Extensions)
	if err != nil {
		return nil, err
	}
	a.logger.Info("Starting analysis",
		"dir", a.cfg.Batch.InputDir,
		"images", len(paths),
		"workers", a.cfg.Batch.Workers)

	results := make([]ImageResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Batch.Workers)
	for i, path := range paths {
		g.Go(func() error {
			results[i] = a.AnalyzeImage(gctx, path)
			return nil
		})
	}
	// Workers never return errors; per-image failures live in results.
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analysis interrupted: %w", err)
	}

	res := newRunResult(results)
	a.logger.Info("Analysis complete",
		"processed", res.Processed,
		"failed", res.Failed,
		"measurements", len(res.Measurements))

	if len(res.Measurements) == 0 {
		return res, ErrNoMeasurements
	}
	return res, nil
}
