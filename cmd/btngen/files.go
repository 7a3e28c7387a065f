package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const sourceExt = ".dcx"

// collectDcxFiles finds all .dcx files from the given paths.
// Supports:
//   - Direct file paths: "menu.dcx"
//   - Directory paths: "./components" (non-recursive)
//   - Recursive pattern: "./..."
//   - Globs: "ui/**/*.dcx", "menus/*.dcx"
//
// The result is sorted and free of duplicates.
func collectDcxFiles(paths []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		if root, ok := recursiveRoot(path); ok {
			err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() && p != root && skipDir(d.Name()) {
					return filepath.SkipDir
				}
				if !d.IsDir() && strings.HasSuffix(p, sourceExt) {
					files = append(files, p)
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("walking %s: %w", root, err)
			}
			continue
		}

		if isGlob(path) {
			matches, err := doublestar.FilepathGlob(path, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("expanding %s: %w", path, err)
			}
			for _, m := range matches {
				if strings.HasSuffix(m, sourceExt) {
					files = append(files, m)
				}
			}
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		if info.IsDir() {
			entries, err := os.ReadDir(path)
			if err != nil {
				return nil, fmt.Errorf("reading directory %s: %w", path, err)
			}
			for _, entry := range entries {
				if !entry.IsDir() && strings.HasSuffix(entry.Name(), sourceExt) {
					files = append(files, filepath.Join(path, entry.Name()))
				}
			}
		} else if strings.HasSuffix(path, sourceExt) {
			files = append(files, path)
		} else {
			return nil, fmt.Errorf("%s is not a %s file", path, sourceExt)
		}
	}

	for i, f := range files {
		files[i] = filepath.Clean(f)
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

// recursiveRoot reports whether path is a "dir/..." pattern and returns dir.
func recursiveRoot(path string) (string, bool) {
	if path == "..." {
		return ".", true
	}
	root, ok := strings.CutSuffix(path, "/...")
	if !ok {
		return "", false
	}
	if root == "" {
		root = "."
	}
	return root, true
}

// isGlob reports whether path contains glob metacharacters.
func isGlob(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}

// skipDir reports whether a recursive walk should not descend into name.
func skipDir(name string) bool {
	return name == "vendor" || name == "testdata" || (strings.HasPrefix(name, ".") && name != ".") || strings.HasPrefix(name, "_")
}

// inputPaths defaults to the current directory when no paths are given.
func inputPaths(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}
