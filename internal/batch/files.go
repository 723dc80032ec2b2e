package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/RobertsLab/polyIC-larvae/internal/imaging"
)

// ListImages returns the paths of the regular files in dir whose extension
// is one of exts (case-insensitive), sorted by file name. Subdirectories are
// not descended into.
//
// A missing or unreadable directory is a setup error wrapping ErrInputDir.
func ListImages(dir string, exts []string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInputDir, dir)
	}

	// ReadDir returns entries sorted by file name.
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputDir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !imaging.HasExtension(e.Name(), exts) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if !e.Type().IsRegular() {
			// Follow symlinks, skip anything that is not a file behind them.
			fi, err := os.Stat(path)
			if err != nil || !fi.Mode().IsRegular() {
				continue
			}
		}
		paths = append(paths, path)
	}
	return paths, nil
}
