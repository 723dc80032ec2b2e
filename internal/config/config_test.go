package config

import (
	"reflect"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Filter.MinArea != 1000 {
		t.Errorf("MinArea: got %v, want 1000", cfg.Filter.MinArea)
	}
	if cfg.Filter.MinAspect != 0.5 || cfg.Filter.MaxAspect != 2.0 {
		t.Errorf("aspect range: got (%v, %v), want (0.5, 2.0)", cfg.Filter.MinAspect, cfg.Filter.MaxAspect)
	}
	if cfg.Measure.UnitScale != 0.1 {
		t.Errorf("UnitScale: got %v, want 0.1", cfg.Measure.UnitScale)
	}
	if cfg.Preprocess.BlurKernel != 5 || cfg.Preprocess.ThresholdBlock != 11 || cfg.Preprocess.MorphKernel != 3 {
		t.Errorf("kernels: got %+v", cfg.Preprocess)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"even blur kernel", func(c *Config) { c.Preprocess.BlurKernel = 4 }, "blur kernel"},
		{"tiny threshold block", func(c *Config) { c.Preprocess.ThresholdBlock = 1 }, "threshold block"},
		{"zero morph kernel", func(c *Config) { c.Preprocess.MorphKernel = 0 }, "morph kernel"},
		{"unknown method", func(c *Config) { c.Preprocess.ThresholdMethod = "otsu" }, "threshold method"},
		{"negative area", func(c *Config) { c.Filter.MinArea = -1 }, "min area"},
		{"empty aspect range", func(c *Config) { c.Filter.MinAspect = 2; c.Filter.MaxAspect = 2 }, "aspect"},
		{"zero scale", func(c *Config) { c.Measure.UnitScale = 0 }, "unit scale"},
		{"bad quality", func(c *Config) { c.Annotate.JPEGQuality = 0 }, "jpeg quality"},
		{"no input", func(c *Config) { c.Batch.InputDir = "" }, "input directory"},
		{"no extensions", func(c *Config) { c.Batch.Extensions = nil }, "extension"},
		{"unknown format", func(c *Config) { c.Batch.Format = "xlsx" }, "output format"},
		{"zero workers", func(c *Config) { c.Batch.Workers = 0 }, "workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("OYSTER_MIN_AREA", "2500")
	t.Setenv("OYSTER_UNIT_SCALE", "0.05")
	t.Setenv("OYSTER_THRESHOLD_METHOD", "gaussian")
	t.Setenv("OYSTER_WORKERS", "4")
	t.Setenv("OYSTER_EXTENSIONS", "jpg, .PNG")

	cfg, err := FromEnv(Default())
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if cfg.Filter.MinArea != 2500 {
		t.Errorf("MinArea: got %v, want 2500", cfg.Filter.MinArea)
	}
	if cfg.Measure.UnitScale != 0.05 {
		t.Errorf("UnitScale: got %v, want 0.05", cfg.Measure.UnitScale)
	}
	if cfg.Preprocess.ThresholdMethod != ThresholdGaussian {
		t.Errorf("ThresholdMethod: got %q", cfg.Preprocess.ThresholdMethod)
	}
	if cfg.Batch.Workers != 4 {
		t.Errorf("Workers: got %d, want 4", cfg.Batch.Workers)
	}
	if want := []string{".jpg", ".png"}; !reflect.DeepEqual(cfg.Batch.Extensions, want) {
		t.Errorf("Extensions: got %v, want %v", cfg.Batch.Extensions, want)
	}
	// Untouched fields keep their defaults.
	if cfg.Filter.MaxAspect != 2.0 {
		t.Errorf("MaxAspect changed: %v", cfg.Filter.MaxAspect)
	}
}

func TestFromEnv_Invalid(t *testing.T) {
	t.Setenv("OYSTER_MIN_AREA", "lots")

	if _, err := FromEnv(Default()); err == nil {
		t.Fatal("expected parse error for OYSTER_MIN_AREA")
	}
}

func TestFromEnv_OutputAndAnnotation(t *testing.T) {
	t.Setenv("OYSTER_MIN_PLAUSIBLE_WIDTH", "2.5")
	t.Setenv("OYSTER_ANNOTATED_DIR", "boxes")
	t.Setenv("OYSTER_OUTPUT", "sizes.csv")
	t.Setenv("OYSTER_SUMMARY", "/tmp/run.yaml")
	t.Setenv("OYSTER_OCR_TAGS", "true")
	t.Setenv("OYSTER_BOX_COLOR", "#FF0000")
	t.Setenv("OYSTER_DRAW_ORIENTED", "1")

	cfg, err := FromEnv(Default())
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if cfg.Measure.MinPlausibleWidth != 2.5 {
		t.Errorf("MinPlausibleWidth: got %v, want 2.5", cfg.Measure.MinPlausibleWidth)
	}
	if cfg.Batch.AnnotatedDir != "boxes" || cfg.Batch.OutputFile != "sizes.csv" || cfg.Batch.SummaryFile != "/tmp/run.yaml" {
		t.Errorf("paths: got %q %q %q", cfg.Batch.AnnotatedDir, cfg.Batch.OutputFile, cfg.Batch.SummaryFile)
	}
	if !cfg.Batch.OCRTags {
		t.Error("OCRTags not applied")
	}
	if cfg.Annotate.BoxColor != "#FF0000" || !cfg.Annotate.DrawOriented {
		t.Errorf("annotation: got %q oriented=%v", cfg.Annotate.BoxColor, cfg.Annotate.DrawOriented)
	}
}

func TestFromEnv_InvalidBool(t *testing.T) {
	t.Setenv("OYSTER_DRAW_ORIENTED", "sometimes")

	if _, err := FromEnv(Default()); err == nil {
		t.Fatal("expected parse error for OYSTER_DRAW_ORIENTED")
	}
}
