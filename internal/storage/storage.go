// Package storage holds library images (previews and gallery shots) in an
// S3-compatible object store. Handlers depend on the Store interface so tests
// can swap in the in-memory implementation.
package storage

import (
	"context"
	"io"
)

// Store is the image store used by the submission and admin handlers.
type Store interface {
	// Upload writes the object and returns its public URL.
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	// Remove deletes the object. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
	// List returns the keys stored under the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
	// URL returns the public URL for a stored key.
	URL(key string) string
}
