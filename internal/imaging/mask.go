package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
)

// Mask is a binary foreground/background grid with the same dimensions as the
// image it was derived from. Pix is row-major: index = y*Width + x.
type Mask struct {
	Width  int
	Height int
	Pix    []bool
}

// NewMask returns an all-background mask of the given size.
func NewMask(width, height int) *Mask {
	return &Mask{
		Width:  width,
		Height: height,
		Pix:    make([]bool, width*height),
	}
}

// At reports whether (x, y) is foreground. Coordinates outside the mask are
// background.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.Pix[y*m.Width+x]
}

// Set marks (x, y) as foreground or background. Out-of-range writes are ignored.
func (m *Mask) Set(x, y int, v bool) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	m.Pix[y*m.Width+x] = v
}

// Count returns the number of foreground pixels.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Pix {
		if v {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of m.
func (m *Mask) Clone() *Mask {
	out := NewMask(m.Width, m.Height)
	copy(out.Pix, m.Pix)
	return out
}

// Gray renders the mask as an 8-bit image, foreground white.
func (m *Mask) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for i, v := range m.Pix {
		if v {
			img.Pix[i] = 255
		}
	}
	return img
}

// Dilate grows the foreground with a k x k square structuring element.
// The frame edge is extended outward, so no foreground enters from outside.
func (m *Mask) Dilate(k int) *Mask {
	if k/2 <= 0 {
		return m.Clone()
	}
	return maskFromRGBA(effect.Dilate(m.Gray(), float64(k/2)))
}

// Erode shrinks the foreground with a k x k square structuring element.
// The frame edge is extended outward, so it does not erode.
func (m *Mask) Erode(k int) *Mask {
	if k/2 <= 0 {
		return m.Clone()
	}
	return maskFromRGBA(effect.Erode(m.Gray(), float64(k/2)))
}

// Close is dilate-then-erode. It fills gaps narrower than k.
func (m *Mask) Close(k int) *Mask {
	return m.Dilate(k).Erode(k)
}

// Open is erode-then-dilate. It removes specks narrower than k.
func (m *Mask) Open(k int) *Mask {
	return m.Erode(k).Dilate(k)
}

// maskFromRGBA reads a rendered mask back, foreground where red >= 128.
func maskFromRGBA(img *image.RGBA) *Mask {
	b := img.Bounds()
	m := NewMask(b.Dx(), b.Dy())
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			m.Pix[y*m.Width+x] = img.Pix[img.PixOffset(b.Min.X+x, b.Min.Y+y)] >= 128
		}
	}
	return m
}
