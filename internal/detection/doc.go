// Package detection finds candidate oyster outlines in a binary mask.
//
// # Algorithm Overview
//
//  1. Contour Extraction: Outer boundaries of connected foreground regions
//     (FindExternalContours). Holes and anything nested inside a hole are
//     ignored, since only whole-shell silhouettes are measured.
//  2. Geometry: Enclosed area (shoelace over boundary pixel centres) and the
//     upright bounding box of each contour.
//  3. Filtering: Regions at or below the minimum area, or with a bounding-box
//     aspect ratio outside the open interval (MinAspect, MaxAspect), are
//     dropped. The aspect bounds are a shape prior for oysters photographed
//     from above, not a physical law.
//  4. Ordering: Survivors are sorted by area descending. This order defines
//     the oyster ordinal written to the results table.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - Bounding boxes use inclusive top-left and exclusive bottom-right
//
// # Performance Considerations
//
// Every stage is linear in the number of pixels. Labels and visit flags use
// one byte per pixel, so a 12 MP photograph needs roughly 24 MB of scratch
// space per call.
package detection
