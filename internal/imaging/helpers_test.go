package imaging

import (
	"image"
	"image/color"
	"math"
)

// createSolidImage creates a solid color test image.
func createSolidImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createEllipseImage draws a filled ellipse (semi-axes a along angle degrees,
// b across it) of color fg on a bg background.
func createEllipseImage(width, height int, cx, cy, a, b, angle float64, fg, bg color.Color) *image.RGBA {
	img := createSolidImage(width, height, bg)
	rad := angle * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			u := dx*cos + dy*sin
			v := -dx*sin + dy*cos
			if (u*u)/(a*a)+(v*v)/(b*b) <= 1 {
				img.Set(x, y, fg)
			}
		}
	}
	return img
}

// maskFromRows builds a mask from strings where '#' is foreground.
func maskFromRows(rows ...string) *Mask {
	m := NewMask(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, ch := range row {
			if ch == '#' {
				m.Set(x, y, true)
			}
		}
	}
	return m
}
