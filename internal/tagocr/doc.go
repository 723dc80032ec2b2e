// Package tagocr reads oyster tag numbers printed inside a photograph.
//
// Field photographs normally carry the tag in their file name
// ("img_tag42_20230615.jpg"). When a photo was saved without one, a label
// card in frame ("TAG 42", "tag #42") is often still legible. This package
// runs Tesseract OCR (via gosseract/v2) over the image and extracts the
// number following the word "tag".
//
// # Prerequisites
//
// Tesseract and its English language data must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// The binary must be built with CGO enabled. Without CGO, New returns
// ErrUnavailable and callers should run without the fallback.
//
// # Thread Safety
//
// A Tesseract reader owns one engine handle and serializes calls to it, so
// it can be shared by concurrent workers.
package tagocr
