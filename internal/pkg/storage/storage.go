package storage

import (
	"context"
	"io"
)

// Storage defines the interface for file storage operations. Room photos are
// the only files the service stores; the interface stays generic so a hosted
// image backend can replace the local one without touching callers.
type Storage interface {
	// Save writes the content at the given relative path.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get returns a ReadCloser for the file at the given relative path.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the file at the given relative path.
	Delete(ctx context.Context, path string) error
}
