// walker.go: enumerates eligible image files under a directory root.
package pipeline

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/phototag/phototag-go/internal/errors"
)

// EnumerateImages returns the absolute paths of all files under root whose
// extension matches the filter. Enumeration is eager so directory jobs can
// report the discovered file count before any tagging starts. Matching is
// case-insensitive; unreadable subdirectories are skipped, not fatal.
func EnumerateImages(root string, extensions []string, recursive bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.New(err).
			Component("pipeline").
			Category(errors.CategoryFileIO).
			Context("root", root).
			Build()
	}
	if !info.IsDir() {
		return nil, errors.Newf("not a directory: %s", root).
			Component("pipeline").
			Category(errors.CategoryValidation).
			Context("root", root).
			Build()
	}
	if len(extensions) == 0 {
		return nil, errors.Newf("no file extensions configured").
			Component("pipeline").
			Category(errors.CategoryValidation).
			Build()
	}

	eligible := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		eligible[strings.ToLower(ext)] = true
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.New(err).
			Component("pipeline").
			Category(errors.CategoryFileIO).
			Context("root", root).
			Build()
	}

	var files []string
	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip unreadable entries instead of aborting the enumeration.
			getLogger().Warn("Skipping unreadable entry", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if !recursive && path != absRoot {
				return fs.SkipDir
			}
			return nil
		}
		if eligible[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, errors.New(walkErr).
			Component("pipeline").
			Category(errors.CategoryFileIO).
			Context("root", root).
			Build()
	}

	return files, nil
}
