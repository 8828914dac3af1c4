package fs

import (
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"
)

// allFiles matches every entry below the walk root.
const allFiles = "**/*"

// Discover returns the prompt files below root, recursively, sorted by path.
// Extension matching is case-insensitive.
func Discover(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrap(err, "prompts folder")
	}
	if !info.IsDir() {
		return nil, errors.Newf("prompts folder %s is not a directory", root)
	}

	var paths []string
	err = doublestar.GlobWalk(os.DirFS(root), allFiles, func(path string, d iofs.DirEntry) error {
		if d.IsDir() || !IsPromptFile(path) {
			return nil
		}
		paths = append(paths, filepath.Join(root, filepath.FromSlash(path)))
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walk %s", root)
	}
	sort.Strings(paths)
	return paths, nil
}

// IsPromptFile reports whether path carries one of the recognised extensions.
func IsPromptFile(path string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	return ext != "" && slices.Contains(Extensions, ext)
}
