package imaging

import (
	"image"
	"math"
	"sort"
)

// Point is a pixel position in image coordinates.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PointF is a point with sub-pixel coordinates.
type PointF struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RotatedRect is a rectangle at arbitrary orientation.
//
// Width runs along the direction given by Angle (degrees, measured from the +X
// axis towards +Y); Height is perpendicular to it. Neither is guaranteed to be
// the larger side.
type RotatedRect struct {
	Center PointF  `json:"center"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Angle  float64 `json:"angle"`
}

// Corners returns the four vertices in drawing order.
func (r RotatedRect) Corners() [4]PointF {
	rad := r.Angle * math.Pi / 180
	ux, uy := math.Cos(rad), math.Sin(rad)
	vx, vy := -uy, ux
	hw, hh := r.Width/2, r.Height/2

	return [4]PointF{
		{r.Center.X - hw*ux - hh*vx, r.Center.Y - hw*uy - hh*vy},
		{r.Center.X + hw*ux - hh*vx, r.Center.Y + hw*uy - hh*vy},
		{r.Center.X + hw*ux + hh*vx, r.Center.Y + hw*uy + hh*vy},
		{r.Center.X - hw*ux + hh*vx, r.Center.Y - hw*uy + hh*vy},
	}
}

// BoundingRect returns the upright box enclosing pts. Max is exclusive, so a
// single pixel yields a 1x1 rectangle.
func BoundingRect(pts []Point) image.Rectangle {
	if len(pts) == 0 {
		return image.Rectangle{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// ConvexHull returns the convex hull of pts in counter-clockwise order
// (Andrew's monotone chain). Collinear points are dropped. Fewer than three
// distinct points are returned as-is, deduplicated.
func ConvexHull(pts []Point) []Point {
	sorted := make([]Point, len(pts))
	copy(sorted, pts)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})

	uniq := sorted[:0]
	for i, p := range sorted {
		if i == 0 || p != sorted[i-1] {
			uniq = append(uniq, p)
		}
	}
	if len(uniq) < 3 {
		return uniq
	}

	hull := make([]Point, 0, 2*len(uniq))
	for _, p := range uniq {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(uniq) - 2; i >= 0; i-- {
		p := uniq[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

func cross(o, a, b Point) int {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// MinAreaRect returns the minimum-area rectangle, at any rotation, enclosing
// pts. Points are treated as pixel centres.
//
// One side of the optimal rectangle is always collinear with a hull edge, so
// every hull edge is tried as a base and the smallest resulting box wins
// (rotating calipers). Degenerate inputs yield zero-length sides: a single
// point gives a 0x0 rectangle, collinear points a rectangle of zero height.
func MinAreaRect(pts []Point) RotatedRect {
	hull := ConvexHull(pts)
	switch len(hull) {
	case 0:
		return RotatedRect{}
	case 1:
		return RotatedRect{Center: PointF{float64(hull[0].X), float64(hull[0].Y)}}
	}

	var best RotatedRect
	bestArea := math.Inf(1)
	for i := range hull {
		a := hull[i]
		b := hull[(i+1)%len(hull)]
		ex, ey := float64(b.X-a.X), float64(b.Y-a.Y)
		n := math.Hypot(ex, ey)
		if n == 0 {
			continue
		}
		ux, uy := ex/n, ey/n
		vx, vy := -uy, ux

		minU, maxU := math.Inf(1), math.Inf(-1)
		minV, maxV := math.Inf(1), math.Inf(-1)
		for _, p := range hull {
			dx, dy := float64(p.X-a.X), float64(p.Y-a.Y)
			u := dx*ux + dy*uy
			v := dx*vx + dy*vy
			minU = math.Min(minU, u)
			maxU = math.Max(maxU, u)
			minV = math.Min(minV, v)
			maxV = math.Max(maxV, v)
		}

		w, h := maxU-minU, maxV-minV
		if area := w * h; area < bestArea-1e-9 {
			bestArea = area
			cu, cv := (minU+maxU)/2, (minV+maxV)/2
			best = RotatedRect{
				Center: PointF{
					X: float64(a.X) + cu*ux + cv*vx,
					Y: float64(a.Y) + cu*uy + cv*vy,
				},
				Width:  w,
				Height: h,
				Angle:  math.Atan2(uy, ux) * 180 / math.Pi,
			}
		}
	}
	return best
}

// Measurement is the physical size of one contour.
type Measurement struct {
	// Length and Width are in physical units, rounded to 2 decimals.
	// Length is the longer oriented side, so Length >= Width always holds.
	Length float64 `json:"length"`
	Width  float64 `json:"width"`

	// LengthPixels and WidthPixels are the unscaled, unrounded sides.
	LengthPixels float64 `json:"length_pixels"`
	WidthPixels  float64 `json:"width_pixels"`

	// Box is the upright bounding box, for annotation only.
	Box image.Rectangle `json:"box"`

	// Rect is the oriented rectangle the sides were taken from.
	Rect RotatedRect `json:"rect"`
}

// Measure fits the minimum-area oriented rectangle around a contour and
// converts its sides to physical units with unitScale (units per pixel).
//
// A degenerate contour produces a zero-length side; it is passed through
// unchanged rather than rejected.
func Measure(pts []Point, unitScale float64) Measurement {
	rect := MinAreaRect(pts)
	long, short := rect.Width, rect.Height
	if short > long {
		long, short = short, long
	}

	return Measurement{
		Length:       round2(long * unitScale),
		Width:        round2(short * unitScale),
		LengthPixels: long,
		WidthPixels:  short,
		Box:          BoundingRect(pts),
		Rect:         rect,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
