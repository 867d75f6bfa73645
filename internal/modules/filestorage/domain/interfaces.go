package domain

import (
	"context"
	"io"
)

// FileStorage defines the flat object store behind the upload gateway.
// Implemented by the local filesystem and by S3/MinIO.
type FileStorage interface {
	// Put writes r under name and returns the number of bytes stored.
	// It must not replace an existing object; ErrExists is returned instead.
	Put(ctx context.Context, name string, r io.Reader, contentType string) (int64, error)

	// Open returns a reader for name. ErrNotFound when name does not reference a stored file.
	Open(ctx context.Context, name string) (io.ReadCloser, *Object, error)

	// List returns the names of all stored files, sorted.
	List(ctx context.Context) ([]string, error)
}
