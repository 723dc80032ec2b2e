//go:build cgo

package tagocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// Tesseract reads tag labels with a native Tesseract engine.
type Tesseract struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// New initializes a Tesseract engine with opts.
//
// Returns an error if the language data cannot be configured. Call Close to
// release the engine.
func New(opts Options) (*Tesseract, error) {
	lang := opts.Language
	if lang == "" {
		lang = DefaultLanguage
	}

	client := gosseract.NewClient()
	if opts.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(opts.TessdataPrefix); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set tessdata path: %w", err)
		}
	}
	if err := client.SetLanguage(lang); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetWhitelist(whitelist); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set whitelist: %w", err)
	}
	return &Tesseract{client: client}, nil
}

// ReadTag recognizes the text in img and returns the tag number it names.
//
// The image is converted to grayscale and handed to Tesseract as an
// in-memory PNG. Returns ErrNoTag if recognition succeeds but no tag label
// is present.
func (t *Tesseract) ReadTag(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, imaging.Grayscale(img)); err != nil {
		return "", fmt.Errorf("failed to encode image for OCR: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}
	text, err := t.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	tag, ok := ParseTag(strings.TrimSpace(text))
	if !ok {
		return "", ErrNoTag
	}
	return tag, nil
}

// Version returns the Tesseract library version.
func (t *Tesseract) Version() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.client.Version()
}

// Close releases the engine.
func (t *Tesseract) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.client.Close()
}
