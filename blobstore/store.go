package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// ErrReadOnly is returned by stores that cannot be written to.
// It satisfies errors.Is(err, errors.ErrUnsupported).
var ErrReadOnly = fmt.Errorf("blobstore: store is read-only: %w", errors.ErrUnsupported)

// BlobStore is an abstraction for reading and writing immutable blobs.
type BlobStore interface {
	// Open opens a blob for sequential reading.
	Open(ctx context.Context, name string) (Blob, error)
	// Create creates a blob for streaming writes. The blob becomes visible
	// once Close returns without error.
	Create(ctx context.Context, name string) (WritableBlob, error)
	// Put writes a blob atomically, replacing any previous content.
	Put(ctx context.Context, name string, data []byte) error
	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
	// List returns the names of all blobs starting with prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only, sequential handle to a blob.
type Blob interface {
	io.Reader
	io.Closer
}

// WritableBlob is a blob being written.
type WritableBlob interface {
	io.Writer
	io.Closer
	Sync() error
}

// Aborter is implemented by writable blobs that can discard a pending write.
type Aborter interface {
	Abort() error
}

// Abort discards a pending write where the backend supports it and closes
// the blob otherwise.
func Abort(w WritableBlob) error {
	if a, ok := w.(Aborter); ok {
		return a.Abort()
	}
	return w.Close()
}

// ReadAll opens name and returns its full content.
func ReadAll(ctx context.Context, s BlobStore, name string) (_ []byte, retErr error) {
	b, err := s.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := b.Close(); err != nil && retErr == nil {
			retErr = err
		}
	}()
	return io.ReadAll(b)
}
