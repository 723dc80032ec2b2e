package detection

import (
	"image"

	"github.com/RobertsLab/polyIC-larvae/internal/imaging"
)

// Contour is the ordered outer boundary of one connected foreground region,
// traced clockwise (in image coordinates) from its top-left pixel.
type Contour []imaging.Point

// Area returns the area enclosed by the boundary polygon through the pixel
// centres (shoelace formula). A filled w x h block therefore has area
// (w-1)*(h-1); lines and single pixels have area 0.
func (c Contour) Area() float64 {
	n := len(c)
	if n < 3 {
		return 0
	}
	var sum int
	for i := 0; i < n; i++ {
		a := c[i]
		b := c[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	if sum < 0 {
		sum = -sum
	}
	return float64(sum) / 2
}

// BoundingRect returns the upright bounding box of the contour, Max exclusive.
func (c Contour) BoundingRect() image.Rectangle {
	return imaging.BoundingRect(c)
}

// FindExternalContours traces the outer boundary of every connected
// foreground region of m that is not nested inside a hole of another region.
//
// Parameters:
//   - m: Binary mask. Foreground uses 8-connectivity, background 4.
//
// Returns one Contour per outer region, in raster order of each region's
// top-left pixel. Holes are not traced, and regions sitting inside another
// region's hole are skipped entirely.
//
// # Algorithm
//
//  1. Exterior flood: background reachable from the frame edge through
//     4-connected background pixels is marked as exterior
//  2. Labelling: an iterative stack flood-fill groups 8-connected
//     foreground pixels; a region is outer when it touches the frame edge
//     or a 4-neighbour is exterior background
//  3. Tracing: Moore-neighbour tracing walks the outer boundary of each
//     outer region starting from its first pixel in raster order, stopping
//     when the start pixel is re-entered along the same first move
func FindExternalContours(m *imaging.Mask) []Contour {
	w, h := m.Width, m.Height
	exterior := exteriorBackground(m)
	visited := make([]bool, w*h)

	contours := make([]Contour, 0)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if !m.Pix[i] || visited[i] {
				continue
			}
			size, outer := floodFill(m, visited, exterior, x, y)
			if !outer {
				continue
			}
			contours = append(contours, traceBoundary(m, imaging.Point{X: x, Y: y}, size))
		}
	}
	return contours
}

// exteriorBackground marks background pixels 4-connected to the frame edge.
func exteriorBackground(m *imaging.Mask) []bool {
	w, h := m.Width, m.Height
	exterior := make([]bool, w*h)
	stack := make([]imaging.Point, 0)

	push := func(x, y int) {
		if x < 0 || x >= w || y < 0 || y >= h {
			return
		}
		i := y*w + x
		if m.Pix[i] || exterior[i] {
			return
		}
		exterior[i] = true
		stack = append(stack, imaging.Point{X: x, Y: y})
	}

	for x := 0; x < w; x++ {
		push(x, 0)
		push(x, h-1)
	}
	for y := 0; y < h; y++ {
		push(0, y)
		push(w-1, y)
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		push(p.X+1, p.Y)
		push(p.X-1, p.Y)
		push(p.X, p.Y+1)
		push(p.X, p.Y-1)
	}
	return exterior
}

// floodFill performs iterative flood-fill from a starting point.
//
// Uses a stack-based approach (not recursive) to avoid stack overflow
// on large regions. Uses 8-connectivity (includes diagonal neighbors).
// Returns the region's pixel count and whether it borders the exterior.
func floodFill(m *imaging.Mask, visited, exterior []bool, startX, startY int) (int, bool) {
	w, h := m.Width, m.Height
	stack := []imaging.Point{{X: startX, Y: startY}}
	visited[startY*w+startX] = true
	size := 0
	outer := false

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		size++

		if !outer {
			if p.X == 0 || p.Y == 0 || p.X == w-1 || p.Y == h-1 {
				outer = true
			} else if exterior[p.Y*w+p.X-1] || exterior[p.Y*w+p.X+1] ||
				exterior[(p.Y-1)*w+p.X] || exterior[(p.Y+1)*w+p.X] {
				outer = true
			}
		}

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := p.X+dx, p.Y+dy
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				i := ny*w + nx
				if visited[i] || !m.Pix[i] {
					continue
				}
				visited[i] = true
				stack = append(stack, imaging.Point{X: nx, Y: ny})
			}
		}
	}
	return size, outer
}

// moore lists the 8 neighbours clockwise (y down), starting west.
var moore = [8]imaging.Point{
	{X: -1, Y: 0}, {X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
	{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: -1, Y: 1},
}

func mooreIndex(dx, dy int) int {
	for i, d := range moore {
		if d.X == dx && d.Y == dy {
			return i
		}
	}
	return 0
}

// traceBoundary walks the outer boundary of the region containing start,
// which must be the region's first pixel in raster order (so its west
// neighbour is background).
func traceBoundary(m *imaging.Mask, start imaging.Point, size int) Contour {
	contour := Contour{start}
	c := start
	back := 0 // west
	limit := 4*size + 4

	for steps := 0; steps < limit; steps++ {
		found := -1
		for k := 1; k <= 8; k++ {
			d := (back + k) % 8
			if m.At(c.X+moore[d].X, c.Y+moore[d].Y) {
				found = d
				break
			}
		}
		if found < 0 {
			break // isolated pixel
		}

		next := imaging.Point{X: c.X + moore[found].X, Y: c.Y + moore[found].Y}
		prev := moore[(found+7)%8]
		back = mooreIndex(c.X+prev.X-next.X, c.Y+prev.Y-next.Y)

		if c == start && len(contour) > 1 && next == contour[1] {
			contour = contour[:len(contour)-1]
			break
		}
		contour = append(contour, next)
		c = next
	}
	return contour
}
