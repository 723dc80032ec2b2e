package batch

import "regexp"

// Placeholder is substituted for a filename token that is not present.
const Placeholder = "unknown"

var (
	tagPattern  = regexp.MustCompile(`tag(\d+)`)
	datePattern = regexp.MustCompile(`(\d{8})`)
)

// ParseFilename extracts the 8-digit date token and the digits following
// the literal "tag" from a file name. The two searches are independent; a
// missing token yields Placeholder.
//
// Example:
//
//	date, tag := ParseFilename("img_tag42_20230615.jpg") // "20230615", "42"
func ParseFilename(name string) (date, tag string) {
	date, tag = Placeholder, Placeholder
	if m := datePattern.FindStringSubmatch(name); m != nil {
		date = m[1]
	}
	if m := tagPattern.FindStringSubmatch(name); m != nil {
		tag = m[1]
	}
	return date, tag
}
