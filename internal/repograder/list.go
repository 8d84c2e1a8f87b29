package repograder

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// sourceExtensions is the fixed allow-list of gradable file types.
var sourceExtensions = map[string]struct{}{
	".py":   {},
	".c":    {},
	".cpp":  {},
	".java": {},
	".js":   {},
	".ts":   {},
	".go":   {},
	".html": {},
	".css":  {},
}

// ListSourceFiles walks the clone tree and returns the relative paths of all
// source files, excluding version-control metadata. Paths are sorted for a
// stable listing.
func ListSourceFiles(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := sourceExtensions[strings.ToLower(filepath.Ext(path))]; !ok {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk clone tree: %w", err)
	}

	sort.Strings(files)
	return files, nil
}
