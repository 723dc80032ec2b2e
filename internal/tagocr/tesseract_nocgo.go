//go:build !cgo

package tagocr

import "image"

// Tesseract is unavailable without CGO.
type Tesseract struct{}

// New always returns ErrUnavailable in builds without CGO.
func New(Options) (*Tesseract, error) {
	return nil, ErrUnavailable
}

// ReadTag always returns ErrUnavailable.
func (*Tesseract) ReadTag(image.Image) (string, error) {
	return "", ErrUnavailable
}

// Version returns an empty string.
func (*Tesseract) Version() string { return "" }

// Close is a no-op.
func (*Tesseract) Close() error { return nil }
