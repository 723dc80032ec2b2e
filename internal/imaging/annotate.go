package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/RobertsLab/polyIC-larvae/internal/config"
)

// labelOffset is how far above the box the label baseline sits.
const labelOffset = 10

// Annotation is one box to draw on an output image.
type Annotation struct {
	// Box is the upright bounding box, Max exclusive.
	Box image.Rectangle

	// Label is drawn just above the box's top-left corner.
	Label string

	// Rect, when non-nil and the style enables it, is outlined as well.
	Rect *RotatedRect
}

// AnnotateStyle is the resolved drawing style.
type AnnotateStyle struct {
	BoxColor      color.NRGBA
	Thickness     int
	DrawOriented  bool
	OrientedColor color.NRGBA
}

// StyleFromConfig parses the hex colors in a.
func StyleFromConfig(a config.Annotate) (AnnotateStyle, error) {
	box, err := parseHexColor(a.BoxColor)
	if err != nil {
		return AnnotateStyle{}, fmt.Errorf("invalid box color: %w", err)
	}
	oriented, err := parseHexColor(a.OrientedColor)
	if err != nil {
		return AnnotateStyle{}, fmt.Errorf("invalid oriented color: %w", err)
	}
	return AnnotateStyle{
		BoxColor:      box,
		Thickness:     a.BoxThickness,
		DrawOriented:  a.DrawOriented,
		OrientedColor: oriented,
	}, nil
}

// parseHexColor parses "#RRGGBB" or "RRGGBB" (also the 3-digit short forms).
func parseHexColor(hex string) (color.NRGBA, error) {
	if hex == "" {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(strings.ToLower(hex))
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// Annotate returns a copy of img with every annotation drawn on it. The
// source image is not modified. With no annotations the copy is identical to
// the source.
func Annotate(img image.Image, anns []Annotation, style AnnotateStyle) *image.NRGBA {
	dst := imaging.Clone(img)

	for _, a := range anns {
		drawBox(dst, a.Box, style.BoxColor, style.Thickness)
		if style.DrawOriented && a.Rect != nil {
			drawPolygon(dst, a.Rect.Corners(), style.OrientedColor)
		}
		if a.Label != "" {
			drawLabel(dst, a.Box.Min.X, a.Box.Min.Y-labelOffset, a.Label, style.BoxColor)
		}
	}
	return dst
}

// SaveAnnotated writes img to path. The format follows the file extension;
// JPEG output uses the given quality.
func SaveAnnotated(img image.Image, path string, quality int) error {
	if err := imaging.Save(img, path, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("failed to save annotated image: %w", err)
	}
	return nil
}

// drawBox outlines r with lines of the given thickness centred on its edges.
func drawBox(img *image.NRGBA, r image.Rectangle, c color.NRGBA, thickness int) {
	if r.Empty() {
		return
	}
	x0, y0 := r.Min.X, r.Min.Y
	x1, y1 := r.Max.X-1, r.Max.Y-1
	lo := -(thickness - 1) / 2
	hi := lo + thickness - 1

	for d := lo; d <= hi; d++ {
		fillRect(img, image.Rect(x0+lo, y0+d, x1+hi+1, y0+d+1), c)
		fillRect(img, image.Rect(x0+lo, y1+d, x1+hi+1, y1+d+1), c)
		fillRect(img, image.Rect(x0+d, y0+lo, x0+d+1, y1+hi+1), c)
		fillRect(img, image.Rect(x1+d, y0+lo, x1+d+1, y1+hi+1), c)
	}
}

func fillRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	draw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

// drawPolygon joins consecutive corners with 1-pixel lines.
func drawPolygon(img *image.NRGBA, corners [4]PointF, c color.NRGBA) {
	for i := range corners {
		a := corners[i]
		b := corners[(i+1)%len(corners)]
		drawLine(img,
			int(math.Round(a.X)), int(math.Round(a.Y)),
			int(math.Round(b.X)), int(math.Round(b.Y)), c)
	}
}

// drawLine rasterises a segment with Bresenham's algorithm, clipped to img.
func drawLine(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	bounds := img.Bounds()

	for {
		if (image.Point{X: x0, Y: y0}).In(bounds) {
			img.SetNRGBA(x0, y0, c)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// drawLabel draws text with its baseline at (x, y). Glyphs falling outside
// the image are clipped.
func drawLabel(img *image.NRGBA, x, y int, text string, fg color.NRGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
