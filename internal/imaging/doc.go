// Package imaging provides the pixel-level stages of the oyster measurement
// pipeline: loading photographs, turning them into binary masks, fitting
// oriented rectangles to contours and drawing annotated copies.
//
// All operations work with standard Go image.Image types and use a coordinate
// system where (0,0) is at the top-left corner, X increases rightward, and Y
// increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - Contour points are pixel centres; a rectangle fitted to a run of N
//     pixels therefore has a side of N-1
//   - image.Rectangle values use inclusive Min and exclusive Max
//
// # Masks
//
// A Mask is a boolean grid the size of the source image. Preprocess produces
// one with dark objects as foreground; Dilate, Erode, Close and Open apply
// square structuring elements and ignore neighbours outside the frame.
//
// # Measurement
//
// MinAreaRect fits the smallest rectangle at any rotation around a set of
// points. Measure takes its longer side as length and shorter side as width,
// scales both by a fixed units-per-pixel ratio and rounds to 2 decimals.
//
// # Thread Safety
//
// Every function is stateless. Distinct images may be processed from
// concurrent goroutines.
//
// # Error Handling
//
// Only Load, Inspect and SaveAnnotated touch the filesystem and return errors.
// Preprocess and Measure cannot fail on a decoded image: degenerate inputs
// produce empty masks or zero-length sides instead.
package imaging
