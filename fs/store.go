package fs

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/passagecli/passage"
)

// Interface compliance check.
var _ passage.FileStore = (*Store)(nil)

// Store implements [passage.FileStore] on a directory. Names are resolved
// relative to the directory; no directories are created.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir. An empty dir means the process
// working directory.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = "."
	}
	return &Store{dir: dir}
}

// Path returns the location of name inside the store.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Read returns the full content of name. A missing file is reported as
// exists=false with a nil error.
func (s *Store) Read(name string) (string, bool, error) {
	data, err := os.ReadFile(s.Path(name))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "read file")
	}
	return string(data), true, nil
}

// Write replaces name with content. The content goes to a temporary file in
// the same directory which is then renamed over the target, so readers see
// either the old or the new content. Existing permissions are kept.
func (s *Store) Write(name, content string) error {
	path := s.Path(name)
	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	cleanup := func() { _ = os.Remove(tmp.Name()) }

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		cleanup()
		return errors.Wrap(err, "write temp file")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return errors.Wrap(err, "sync temp file")
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return errors.Wrap(err, "close temp file")
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		cleanup()
		return errors.Wrap(err, "chmod temp file")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		cleanup()
		return errors.Wrap(err, "rename temp file")
	}
	return nil
}
