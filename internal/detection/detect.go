package detection

import (
	"image"
	"sort"

	"github.com/RobertsLab/polyIC-larvae/internal/config"
	"github.com/RobertsLab/polyIC-larvae/internal/imaging"
)

// Candidate is a contour that passed the area and aspect-ratio filters.
type Candidate struct {
	// Contour is the outer boundary.
	Contour Contour `json:"-"`

	// Area is the enclosed area in square pixels.
	Area float64 `json:"area"`

	// Box is the upright bounding box (Max exclusive).
	Box image.Rectangle `json:"box"`

	// AspectRatio is Box width divided by Box height.
	AspectRatio float64 `json:"aspect_ratio"`
}

// Detect finds plausible oyster outlines in a mask.
//
// Parameters:
//   - m: Binary mask from imaging.Preprocess.
//   - f: Area threshold and aspect-ratio bounds.
//
// Returns candidates sorted by area, largest first. The position in this
// slice is the ordinal reported for each oyster, so ties keep the raster
// order of the regions to stay deterministic.
//
// # Filtering
//
// A contour is kept only when both hold:
//   - area > f.MinArea
//   - f.MinAspect < width/height < f.MaxAspect
//
// Both comparisons are strict: an aspect ratio of exactly 0.5 or 2.0 is
// rejected with the default bounds.
func Detect(m *imaging.Mask, f config.Filter) []Candidate {
	candidates := make([]Candidate, 0)

	for _, c := range FindExternalContours(m) {
		area := c.Area()
		if area <= f.MinArea {
			continue
		}
		box := c.BoundingRect()
		aspect := AspectRatio(box)
		if !Accept(area, aspect, f) {
			continue
		}
		candidates = append(candidates, Candidate{
			Contour:     c,
			Area:        area,
			Box:         box,
			AspectRatio: aspect,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Area > candidates[j].Area
	})
	return candidates
}

// AspectRatio returns width/height of r, or 0 for a zero-height box.
func AspectRatio(r image.Rectangle) float64 {
	if r.Dy() <= 0 {
		return 0
	}
	return float64(r.Dx()) / float64(r.Dy())
}

// Accept applies the candidate filters to precomputed area and aspect ratio.
func Accept(area, aspect float64, f config.Filter) bool {
	return area > f.MinArea && aspect > f.MinAspect && aspect < f.MaxAspect
}
