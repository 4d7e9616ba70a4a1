// Package local implements storage.Storage on the local filesystem.
package local

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kbukum/resultkit/errors"
	"github.com/kbukum/resultkit/storage"
)

const (
	dirPerm  = 0o750
	filePerm = 0o640
)

// Storage implements storage.Storage using the local filesystem.
type Storage struct {
	basePath string
}

// Option configures a Storage.
type Option func(*options)

type options struct {
	noCreate bool
}

// WithoutCreate keeps the base path exactly as given: it is neither made
// absolute nor created.
func WithoutCreate() Option {
	return func(o *options) { o.noCreate = true }
}

// NewStorage creates a new local filesystem storage rooted at basePath. By
// default the path is made absolute and created if missing.
func NewStorage(basePath string, opts ...Option) (*Storage, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.noCreate {
		return &Storage{basePath: basePath}, nil
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, errors.IO("resolve base path", err)
	}
	if err := os.MkdirAll(abs, dirPerm); err != nil {
		return nil, errors.IO("create base directory", err)
	}
	return &Storage{basePath: abs}, nil
}

// BasePath returns the root directory.
func (s *Storage) BasePath() string { return s.basePath }

// Resolve maps path to a location on disk. An absolute path inside the root
// is used as-is; anything else is taken relative to the root. Relative paths
// that escape the root are rejected.
func (s *Storage) Resolve(path string) (string, error) {
	if filepath.IsAbs(path) {
		if s.inside(path) {
			return filepath.Clean(path), nil
		}
	}
	clean := filepath.Clean(path)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", errors.InvalidInput("path", fmt.Sprintf("%q escapes the storage root", path))
	}
	return filepath.Join(s.basePath, clean), nil
}

func (s *Storage) inside(abs string) bool {
	base, err := filepath.Abs(s.basePath)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(base, abs)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Upload writes data from reader to a temporary file next to the target and
// renames it into place, so concurrent readers see either the old or the new
// content. Concurrent uploads to the same path resolve last-writer-wins.
func (s *Storage) Upload(_ context.Context, path string, reader io.Reader) error {
	fullPath, err := s.Resolve(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return errors.IO("create directory", err).WithDetail("path", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(fullPath)+".tmp.*")
	if err != nil {
		return errors.IO("create file", err).WithDetail("path", fullPath)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := io.Copy(tmp, reader); err != nil {
		return errors.IO("write file", err).WithDetail("path", fullPath)
	}
	if err := tmp.Chmod(filePerm); err != nil {
		return errors.IO("write file", err).WithDetail("path", fullPath)
	}
	_ = tmp.Sync() // best-effort durability
	if err := tmp.Close(); err != nil {
		return errors.IO("write file", err).WithDetail("path", fullPath)
	}
	if err := os.Rename(tmpName, fullPath); err != nil {
		return errors.IO("commit file", err).WithDetail("path", fullPath)
	}
	return nil
}

// Download returns a reader for the local file at the given path.
func (s *Storage) Download(_ context.Context, path string) (io.ReadCloser, error) {
	fullPath, err := s.Resolve(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(fullPath)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NotFound("file", path).WithCause(err)
		}
		return nil, errors.IO("open file", err).WithDetail("path", fullPath)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, errors.IO("stat file", err).WithDetail("path", fullPath)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, errors.NotFound("file", path).WithDetail("path", fullPath)
	}
	return f, nil
}

// Exists reports whether a regular file exists at path.
func (s *Storage) Exists(_ context.Context, path string) (bool, error) {
	fullPath, err := s.Resolve(path)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(fullPath)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, errors.IO("stat file", err).WithDetail("path", fullPath)
	}
	return !info.IsDir(), nil
}

// compile-time check
var _ storage.Storage = (*Storage)(nil)
