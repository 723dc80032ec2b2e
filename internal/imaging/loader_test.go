package imaging

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeTestImage encodes img into dir/name, choosing the encoder from the
// extension.
func writeTestImage(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", name, err)
	}
	defer f.Close()

	switch filepath.Ext(name) {
	case ".png":
		err = png.Encode(f, img)
	default:
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	}
	if err != nil {
		t.Fatalf("failed to encode %s: %v", name, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		file string
	}{
		{"jpeg", "sample.jpg"},
		{"upper-case extension", "SAMPLE.JPEG"},
		{"png", "sample.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTestImage(t, dir, tt.file, createSolidImage(64, 48, color.RGBA{200, 100, 50, 255}))

			img, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
				t.Errorf("dimensions: got %dx%d, want 64x48", b.Dx(), b.Dy())
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "corrupt.jpg")
	if err := os.WriteFile(corrupt, []byte("this is not a jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "missing.jpg")},
		{"corrupt file", corrupt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	img := createSolidImage(30, 20, color.White)
	path := writeTestImage(t, dir, "photo.JPG", img)

	info, err := Inspect(path, img)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if info.Width != 30 || info.Height != 20 {
		t.Errorf("dimensions: got %dx%d, want 30x20", info.Width, info.Height)
	}
	if info.Format != "jpeg" {
		t.Errorf("Format: got %q, want jpeg", info.Format)
	}
	if info.FileSizeBytes <= 0 {
		t.Errorf("FileSizeBytes: got %d", info.FileSizeBytes)
	}

	if _, err := Inspect(filepath.Join(dir, "gone.jpg"), img); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestHasExtension(t *testing.T) {
	exts := []string{".jpg", "jpeg"}
	tests := []struct {
		name string
		want bool
	}{
		{"img_tag1_20230101.jpg", true},
		{"IMG_TAG1_20230101.JPG", true},
		{"photo.Jpeg", true},
		{"photo.png", false},
		{"notes.txt", false},
		{"jpg", false},
		{"archive.jpg.bak", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasExtension(tt.name, exts); got != tt.want {
				t.Errorf("HasExtension(%q): got %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
