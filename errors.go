package datapack

import (
	"errors"
	"fmt"

	"github.com/hupe1980/datapack/blobstore"
	"github.com/hupe1980/datapack/chunk"
	"github.com/hupe1980/datapack/manifest"
	"github.com/hupe1980/datapack/sniff"
)

var (
	// ErrNotFound is returned when a dataset object does not exist. It ends
	// chunk sequences and is rarely surfaced to callers.
	ErrNotFound = blobstore.ErrNotFound

	// ErrUnsupportedOperation is returned for operations the content kind or
	// the store cannot support, such as lines of binary content or writes to
	// a remote location.
	ErrUnsupportedOperation = errors.ErrUnsupported

	// ErrMalformedManifest is returned when a manifest exists but cannot be
	// decoded or lacks required fields.
	ErrMalformedManifest = manifest.ErrMalformed

	// ErrAmbiguousContentType is returned when sniffing cannot decide between
	// text and binary and no content kind was given.
	ErrAmbiguousContentType = sniff.ErrAmbiguous

	// ErrInvalidMaxSize is returned for a non-positive chunk size.
	ErrInvalidMaxSize = chunk.ErrInvalidMaxSize

	// ErrInvalidBatchSize is returned when the batch size is less than one.
	ErrInvalidBatchSize = errors.New("batch size must be positive")

	// ErrPathInvalid is returned when an archive entry would be extracted
	// outside of the target directory.
	ErrPathInvalid = errors.New("invalid path")
)

// ChunkError records a failure on a specific chunk object.
type ChunkError = chunk.Error

// ManifestError indicates the manifest of a dataset could not be read or
// written.
//
// The original underlying error can be accessed via errors.Unwrap.
type ManifestError struct {
	Location string
	cause    error
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("manifest %s: %v", e.Location, e.cause)
}

func (e *ManifestError) Unwrap() error { return e.cause }
