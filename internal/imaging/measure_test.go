package imaging

import (
	"image"
	"math"
	"math/rand"
	"testing"
)

// rectPixels returns every pixel of a filled w x h block at the origin.
func rectPixels(w, h int) []Point {
	pts := make([]Point, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pts = append(pts, Point{X: x, Y: y})
		}
	}
	return pts
}

func TestConvexHull(t *testing.T) {
	pts := []Point{
		{0, 0}, {10, 0}, {10, 10}, {0, 10},
		// interior and collinear
		{5, 5}, {2, 7}, {5, 0},
		// duplicate
		{10, 10},
	}
	hull := ConvexHull(pts)
	if len(hull) != 4 {
		t.Fatalf("expected 4 hull points, got %d: %v", len(hull), hull)
	}
	want := map[Point]bool{{0, 0}: true, {10, 0}: true, {10, 10}: true, {0, 10}: true}
	for _, p := range hull {
		if !want[p] {
			t.Errorf("unexpected hull point %v", p)
		}
	}
}

func TestConvexHull_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		pts  []Point
		want int
	}{
		{"empty", nil, 0},
		{"single", []Point{{3, 4}}, 1},
		{"duplicates", []Point{{3, 4}, {3, 4}}, 1},
		{"collinear", []Point{{0, 0}, {1, 1}, {2, 2}, {5, 5}}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConvexHull(tt.pts); len(got) != tt.want {
				t.Errorf("got %d points (%v), want %d", len(got), got, tt.want)
			}
		})
	}
}

func TestMinAreaRect_AxisAligned(t *testing.T) {
	r := MinAreaRect(rectPixels(100, 40))

	long, short := math.Max(r.Width, r.Height), math.Min(r.Width, r.Height)
	if math.Abs(long-99) > 1e-9 || math.Abs(short-39) > 1e-9 {
		t.Errorf("sides: got %.3f x %.3f, want 99 x 39", long, short)
	}
	if math.Abs(r.Center.X-49.5) > 1e-9 || math.Abs(r.Center.Y-19.5) > 1e-9 {
		t.Errorf("center: got %+v, want (49.5, 19.5)", r.Center)
	}
}

func TestMinAreaRect_Rotated(t *testing.T) {
	// Corners of a 50 x 20 rectangle whose long side follows (3, 4).
	pts := []Point{{0, 0}, {30, 40}, {14, 52}, {-16, 12}}
	r := MinAreaRect(pts)

	long, short := math.Max(r.Width, r.Height), math.Min(r.Width, r.Height)
	if math.Abs(long-50) > 1e-9 || math.Abs(short-20) > 1e-9 {
		t.Errorf("sides: got %.3f x %.3f, want 50 x 20", long, short)
	}

	// The corners must reproduce the input polygon.
	for _, c := range r.Corners() {
		matched := false
		for _, p := range pts {
			if math.Hypot(c.X-float64(p.X), c.Y-float64(p.Y)) < 1e-6 {
				matched = true
			}
		}
		if !matched {
			t.Errorf("corner %+v does not match any input vertex", c)
		}
	}
}

func TestMinAreaRect_Diamond(t *testing.T) {
	pts := []Point{{0, 50}, {50, 0}, {100, 50}, {50, 100}}
	r := MinAreaRect(pts)

	side := 50 * math.Sqrt2
	if math.Abs(r.Width-side) > 1e-6 || math.Abs(r.Height-side) > 1e-6 {
		t.Errorf("sides: got %.3f x %.3f, want %.3f square", r.Width, r.Height, side)
	}
}

func TestMeasure(t *testing.T) {
	m := Measure(rectPixels(100, 40), 0.1)

	if m.Length != 9.9 {
		t.Errorf("Length: got %v, want 9.9", m.Length)
	}
	if m.Width != 3.9 {
		t.Errorf("Width: got %v, want 3.9", m.Width)
	}
	if m.Box != image.Rect(0, 0, 100, 40) {
		t.Errorf("Box: got %v", m.Box)
	}
}

func TestMeasure_LengthIsLongerSide(t *testing.T) {
	// Tall block: the oriented width would be the short side either way.
	m := Measure(rectPixels(30, 90), 1)
	if m.Length != 89 || m.Width != 29 {
		t.Errorf("got length %v width %v, want 89 / 29", m.Length, m.Width)
	}
}

func TestMeasure_Rounding(t *testing.T) {
	pts := []Point{{0, 0}, {10, 0}, {10, 3}, {0, 3}}
	m := Measure(pts, 0.1234)

	if m.Length != 1.23 {
		t.Errorf("Length: got %v, want 1.23", m.Length)
	}
	if m.Width != 0.37 {
		t.Errorf("Width: got %v, want 0.37", m.Width)
	}
	if math.Abs(m.LengthPixels-10) > 1e-9 {
		t.Errorf("LengthPixels: got %v, want 10", m.LengthPixels)
	}
}

func TestMeasure_Degenerate(t *testing.T) {
	tests := []struct {
		name       string
		pts        []Point
		wantLength float64
		wantWidth  float64
	}{
		{"no points", nil, 0, 0},
		{"single point", []Point{{5, 5}}, 0, 0},
		{"horizontal line", []Point{{0, 0}, {1, 0}, {2, 0}, {30, 0}}, 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Measure(tt.pts, 0.1)
			if m.Length != tt.wantLength || m.Width != tt.wantWidth {
				t.Errorf("got %v x %v, want %v x %v", m.Length, m.Width, tt.wantLength, tt.wantWidth)
			}
		})
	}
}

func TestMeasure_LengthNeverBelowWidth(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		n := 1 + rng.Intn(40)
		pts := make([]Point, n)
		for j := range pts {
			pts[j] = Point{X: rng.Intn(500), Y: rng.Intn(500)}
		}
		m := Measure(pts, 0.1)
		if m.Length < m.Width {
			t.Fatalf("case %d: length %v < width %v for %v", i, m.Length, m.Width, pts)
		}
	}
}

func TestMinAreaRect_NotLargerThanUpright(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		pts := make([]Point, 3+rng.Intn(30))
		for j := range pts {
			pts[j] = Point{X: rng.Intn(200), Y: rng.Intn(200)}
		}
		r := MinAreaRect(pts)
		box := BoundingRect(pts)
		upright := float64((box.Dx() - 1) * (box.Dy() - 1))
		if r.Width*r.Height > upright+1e-6 {
			t.Fatalf("case %d: oriented area %.2f exceeds upright area %.2f", i, r.Width*r.Height, upright)
		}
	}
}

func TestBoundingRect(t *testing.T) {
	pts := []Point{{3, 7}, {10, 2}, {5, 5}}
	if got := BoundingRect(pts); got != image.Rect(3, 2, 11, 8) {
		t.Errorf("BoundingRect: got %v", got)
	}
	if got := BoundingRect(nil); got != (image.Rectangle{}) {
		t.Errorf("BoundingRect(nil): got %v", got)
	}
}
