// Package report serializes a measurement set and summarizes it.
//
// Tables are written as CSV (the default) or Parquet with the fixed column
// order Image, Date, Tag, Oyster, Length, Width. Summaries cover the whole
// run (distinct images, measurement count, mean length and width) and each
// tag (count, mean and sample standard deviation of length and width).
package report
