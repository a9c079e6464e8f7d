// Package discovery finds wordlist files on disk.
//
// Walk descends the whole tree below a root and prunes reserved
// directories; TopLevel only looks at the root itself. Both return paths
// sorted lexically so that every run processes files in the same order.
package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ErrNotDirectory is returned when the root is not a directory.
var ErrNotDirectory = errors.New("root is not a directory")

// Options selects which files count as wordlists.
type Options struct {
	// Extensions are matched case-sensitively against filepath.Ext.
	Extensions []string

	// SkipDirs are directory names excluded anywhere below the root.
	SkipDirs []string
}

func (o Options) matches(name string) bool {
	return slices.Contains(o.Extensions, filepath.Ext(name))
}

// skipped reports whether any segment of rel is a reserved directory name.
func (o Options) skipped(rel string) bool {
	for _, segment := range strings.Split(filepath.ToSlash(rel), "/") {
		if slices.Contains(o.SkipDirs, segment) {
			return true
		}
	}
	return false
}

// Walk returns every wordlist below root, excluding paths that contain a
// reserved directory segment. The root itself is never excluded, even if
// its own name is reserved.
func Walk(root string, opts Options) ([]string, error) {
	if err := checkRoot(root); err != nil {
		return nil, err
	}

	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}

		if d.IsDir() {
			if slices.Contains(opts.SkipDirs, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() && d.Type()&fs.ModeSymlink == 0 {
			return nil
		}
		if opts.matches(d.Name()) && !opts.skipped(rel) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	slices.Sort(found)
	return found, nil
}

// TopLevel returns the wordlists directly inside root, without recursion.
func TopLevel(root string, extensions []string) ([]string, error) {
	if err := checkRoot(root); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", root, err)
	}

	opts := Options{Extensions: extensions}
	var found []string
	for _, entry := range entries {
		if entry.IsDir() || !opts.matches(entry.Name()) {
			continue
		}
		found = append(found, filepath.Join(root, entry.Name()))
	}

	slices.Sort(found)
	return found, nil
}

func checkRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to access root %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", root, ErrNotDirectory)
	}
	return nil
}
