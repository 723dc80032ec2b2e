package tagocr

import (
	"errors"
	"regexp"
)

var (
	// ErrNoTag is returned when the recognized text holds no tag label.
	ErrNoTag = errors.New("no tag label found")

	// ErrUnavailable is returned by New when OCR support is not compiled in.
	ErrUnavailable = errors.New("OCR support not available in this build")
)

// DefaultLanguage is the Tesseract language used when Options leaves it
// empty.
const DefaultLanguage = "eng"

// whitelist limits recognition to the characters a tag label can contain.
const whitelist = "tagTAG#: 0123456789"

// Options configures a Tesseract reader.
type Options struct {
	// Language is a Tesseract language code. Default "eng".
	Language string

	// TessdataPrefix overrides the directory holding *.traineddata files.
	// Empty uses the system default (or TESSDATA_PREFIX).
	TessdataPrefix string
}

var tagLabel = regexp.MustCompile(`(?i)\btag\s*[#:]?\s*(\d+)`)

// ParseTag extracts the first tag number from OCR text. Recognition is
// case-insensitive and tolerates "#" or ":" and spaces between the word and
// the digits.
//
// Examples:
//
//	ParseTag("TAG 42")   // "42", true
//	ParseTag("tag#7")    // "7", true
//	ParseTag("Tray 3")   // "", false
func ParseTag(text string) (string, bool) {
	m := tagLabel.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}
