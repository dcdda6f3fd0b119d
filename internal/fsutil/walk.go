package fsutil

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultIgnoreDirs are generated artifacts that are not part of a template's layout
var DefaultIgnoreDirs = []string{".git", "venv", ".venv", "node_modules", "__pycache__"}

// WalkOptions configures directory traversal behavior
type WalkOptions struct {
	IgnoreDirs     []string // Directory names to skip (default: DefaultIgnoreDirs)
	IgnorePatterns []string // File name patterns to skip (e.g., ".devgenesis.json")
	IncludeHidden  bool     // Include dot files/dirs (default: false)
}

// Walk traverses a directory tree with configurable ignore rules.
// The visitor receives paths relative to root, slash-separated, and is not
// called for root itself. Return filepath.SkipDir from visitor to skip a directory.
func Walk(root string, opts WalkOptions, visitor func(rel string, d fs.DirEntry) error) error {
	ignoreDirs := opts.IgnoreDirs
	if ignoreDirs == nil {
		ignoreDirs = DefaultIgnoreDirs
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}

		name := d.Name()

		// Skip hidden files/directories unless explicitly included
		if !opts.IncludeHidden && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			for _, ignore := range ignoreDirs {
				if name == ignore {
					return filepath.SkipDir
				}
			}
		} else {
			for _, pattern := range opts.IgnorePatterns {
				if matched, _ := filepath.Match(pattern, name); matched {
					return nil
				}
			}
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		return visitor(filepath.ToSlash(rel), d)
	})
}

// List returns the sorted relative directory and file paths under root.
func List(root string, opts WalkOptions) (dirs, files []string, err error) {
	err = Walk(root, opts, func(rel string, d fs.DirEntry) error {
		if d.IsDir() {
			dirs = append(dirs, rel)
		} else {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	sort.Strings(dirs)
	sort.Strings(files)
	return dirs, files, nil
}
