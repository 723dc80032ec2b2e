package imaging

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"

	"github.com/RobertsLab/polyIC-larvae/internal/config"
)

// Preprocess converts a decoded photograph into a binary mask in which dark
// objects (oysters) are foreground.
//
// Parameters:
//   - img: Source image (any color model). Must already be decoded.
//   - p: Kernel sizes, threshold bias and threshold method.
//
// Returns a mask with exactly the same width and height as img.
//
// # Algorithm
//
//  1. Grayscale conversion: ITU-R BT.601 luminance
//     (0.299*R + 0.587*G + 0.114*B)
//
//  2. Smoothing: Gaussian blur with a BlurKernel x BlurKernel footprint to
//     suppress speckle that would fragment contours
//
//  3. Adaptive threshold: each pixel is compared with the mean of its
//     ThresholdBlock x ThresholdBlock neighbourhood (box or Gaussian
//     weighted, with the frame edge replicated outward). A pixel is
//     foreground when intensity <= round(mean) - ThresholdC, i.e. the
//     inverted polarity maps darker-than-surroundings pixels to "on"
//
//  4. Morphology: closing (dilate then erode) fills small gaps inside a
//     silhouette, then opening (erode then dilate) removes isolated specks,
//     both with a MorphKernel x MorphKernel square
//
// A locally adaptive threshold is used because field photographs are lit
// unevenly; a single global cutoff splits the frame into bright and dark
// halves instead of objects and background.
func Preprocess(img image.Image, p config.Preprocess) *Mask {
	gray := toGray(img)
	if p.BlurKernel > 1 {
		gray = rgbaToGray(blur.Gaussian(gray, float64(p.BlurKernel/2)))
	}

	local := localMean(gray, p)

	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	mask := NewMask(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			v := float64(gray.Pix[y*gray.Stride+x])
			if v <= math.Round(local[i])-p.ThresholdC {
				mask.Pix[i] = true
			}
		}
	}

	return mask.Close(p.MorphKernel).Open(p.MorphKernel)
}

// localMean returns the ThresholdBlock-wide neighbourhood mean of every pixel,
// row-major.
func localMean(gray *image.Gray, p config.Preprocess) []float64 {
	r := float64(p.ThresholdBlock / 2)
	if p.ThresholdMethod == config.ThresholdGaussian {
		return grayToFloat(rgbaToGray(blur.Gaussian(gray, r)))
	}
	return grayToFloat(rgbaToGray(blur.Box(gray, r)))
}

// toGray converts img to an origin-anchored 8-bit grayscale image.
func toGray(img image.Image) *image.Gray {
	g := imaging.Grayscale(img)
	w, h := g.Rect.Dx(), g.Rect.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		src := g.Pix[y*g.Stride : y*g.Stride+w*4]
		dst := out.Pix[y*out.Stride : y*out.Stride+w]
		for x := range dst {
			dst[x] = src[x*4]
		}
	}
	return out
}

// rgbaToGray keeps the red channel of an RGBA image produced from a gray
// source, where all three color channels are equal.
func rgbaToGray(img *image.RGBA) *image.Gray {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Pix[y*out.Stride+x] = img.Pix[img.PixOffset(b.Min.X+x, b.Min.Y+y)]
		}
	}
	return out
}

func grayToFloat(img *image.Gray) []float64 {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	out := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out[y*w+x] = float64(img.Pix[y*img.Stride+x])
		}
	}
	return out
}
