package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/RobertsLab/polyIC-larvae/internal/batch"
	"github.com/RobertsLab/polyIC-larvae/internal/config"
)

// Columns is the fixed header of the results table.
var Columns = []string{"Image", "Date", "Tag", "Oyster", "Length", "Width"}

// Row is the on-disk shape of one measurement.
type Row struct {
	Image  string  `parquet:"Image"`
	Date   string  `parquet:"Date"`
	Tag    string  `parquet:"Tag"`
	Oyster string  `parquet:"Oyster"`
	Length float64 `parquet:"Length"`
	Width  float64 `parquet:"Width"`
}

// Rows converts measurements to table rows, preserving order.
func Rows(ms []batch.Measurement) []Row {
	rows := make([]Row, len(ms))
	for i, m := range ms {
		rows[i] = Row{
			Image:  m.Image,
			Date:   m.Date,
			Tag:    m.Tag,
			Oyster: m.Oyster,
			Length: m.Length,
			Width:  m.Width,
		}
	}
	return rows
}

// WriteCSV writes the header and one row per measurement. Length and Width
// are written with exactly two decimals.
func WriteCSV(w io.Writer, ms []batch.Measurement) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range Rows(ms) {
		record := []string{
			r.Image,
			r.Date,
			r.Tag,
			r.Oyster,
			strconv.FormatFloat(r.Length, 'f', 2, 64),
			strconv.FormatFloat(r.Width, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteParquet writes the measurements as a Parquet file at path.
func WriteParquet(path string, ms []batch.Measurement) error {
	if err := parquet.WriteFile(path, Rows(ms)); err != nil {
		return fmt.Errorf("failed to write parquet: %w", err)
	}
	return nil
}

// TablePath returns the path the table is written to for format. Parquet
// output swaps the file extension to ".parquet".
func TablePath(path, format string) string {
	if format != config.FormatParquet {
		return path
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".parquet"
}

// WriteTable writes ms to path in the given format and returns the path
// actually written (see TablePath). The file is replaced if it exists.
func WriteTable(path, format string, ms []batch.Measurement) (string, error) {
	path = TablePath(path, format)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	switch format {
	case config.FormatParquet:
		if err := WriteParquet(path, ms); err != nil {
			return "", err
		}
	case config.FormatCSV, "":
		f, err := os.Create(path)
		if err != nil {
			return "", fmt.Errorf("failed to create output file: %w", err)
		}
		if err := WriteCSV(f, ms); err != nil {
			f.Close()
			return "", err
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("failed to close output file: %w", err)
		}
	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
	return path, nil
}
