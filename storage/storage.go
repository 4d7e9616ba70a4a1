// Package storage defines the object storage contract that file-backed
// results persist through. The local subpackage provides the filesystem
// implementation.
package storage

import (
	"context"
	"io"
)

// Storage defines the interface for object storage operations. Paths are
// relative to the backend's root.
type Storage interface {
	// Upload writes data from reader to the given path, creating any missing
	// parent directories. Readers never observe a partially written object.
	Upload(ctx context.Context, path string, reader io.Reader) error

	// Download returns a reader for the object at the given path.
	// The caller is responsible for closing the returned ReadCloser.
	// A missing object yields an errors.ErrCodeNotFound error.
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Exists checks whether an object exists at the given path.
	Exists(ctx context.Context, path string) (bool, error)
}
