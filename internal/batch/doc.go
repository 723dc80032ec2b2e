// Package batch runs the measurement pipeline over a directory of
// photographs.
//
// # Workflow
//
//  1. ListImages enumerates the input directory, keeping regular files whose
//     extension is whitelisted (case-insensitive), in lexical order.
//  2. Analyzer.AnalyzeImage loads one photograph, preprocesses it into a
//     mask, detects candidate regions, measures each one and writes an
//     annotated copy. Filename tokens (tag and date) are attached to every
//     measurement.
//  3. Analyzer.Run fans the images out to a bounded worker pool and
//     reassembles the per-image results in input order, so the combined
//     measurement set is identical regardless of the worker count.
//
// # Error Handling
//
// A single image never aborts a run. Unreadable or corrupt files produce an
// ImageResult with Err set and are logged and skipped. Run itself fails only
// for setup problems (ErrInputDir) or when no image yielded a measurement
// (ErrNoMeasurements); the latter still returns the per-image results so the
// caller can report what happened.
package batch
