package storage

import (
	"context"
	"io"
)

// BlobStore abstracts where uploaded files live. The only implementation
// today is the local filesystem; paths are always relative to the store root.
type BlobStore interface {
	// Put writes content under the given relative path, creating parent
	// directories as needed.
	Put(ctx context.Context, path string, content io.Reader) error

	// Open returns a reader for the file at the given relative path.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Remove deletes the file at the given relative path. Removing a
	// missing file is not an error.
	Remove(ctx context.Context, path string) error
}
