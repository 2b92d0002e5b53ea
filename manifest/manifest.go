// Package manifest reads and writes the JSON sidecar that describes a
// chunked dataset:
//
//	{"description": "...", "count": 3, "type": "jsonl", "is_binary": false}
//
// The manifest is written after every chunk of a package and overwrites any
// previous manifest at the same location.
package manifest

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/datapack/blobstore"
	"github.com/hupe1980/datapack/codec"
	"github.com/hupe1980/datapack/model"
)

// ErrMalformed is returned when a manifest exists but cannot be used.
var ErrMalformed = errors.New("malformed manifest")

// Manifest describes a persisted package.
type Manifest struct {
	Description string `json:"description"`
	Count       int    `json:"count"`
	Type        string `json:"type"`
	IsBinary    bool   `json:"is_binary"`
}

// New creates a manifest for count chunks of the given kind and extension.
func New(description string, count int, ext string, kind model.ContentKind) *Manifest {
	return &Manifest{
		Description: description,
		Count:       count,
		Type:        ext,
		IsBinary:    kind.IsBinary(),
	}
}

// ContentKind returns the content kind recorded in the manifest.
func (m *Manifest) ContentKind() model.ContentKind {
	return model.KindOf(m.IsBinary)
}

// wire mirrors Manifest with pointers so missing fields can be told apart
// from zero values.
type wire struct {
	Description *string `json:"description"`
	Count       *int    `json:"count"`
	Type        *string `json:"type"`
	IsBinary    *bool   `json:"is_binary"`
}

// Decode parses and validates a manifest. count, type and is_binary are
// required; description defaults to empty.
func Decode(c codec.Codec, data []byte) (*Manifest, error) {
	if c == nil {
		c = codec.Default
	}
	var w wire
	if err := c.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var missing []string
	if w.Count == nil {
		missing = append(missing, "count")
	}
	if w.Type == nil {
		missing = append(missing, "type")
	}
	if w.IsBinary == nil {
		missing = append(missing, "is_binary")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing fields %v", ErrMalformed, missing)
	}
	if *w.Count < 0 {
		return nil, fmt.Errorf("%w: negative count %d", ErrMalformed, *w.Count)
	}

	m := &Manifest{
		Count:    *w.Count,
		Type:     *w.Type,
		IsBinary: *w.IsBinary,
	}
	if w.Description != nil {
		m.Description = *w.Description
	}
	return m, nil
}

// Encode serializes m.
func Encode(c codec.Codec, m *Manifest) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}
	return c.Marshal(m)
}

// Store loads and saves the manifest of one package.
type Store struct {
	blobs blobstore.BlobStore
	name  string
	codec codec.Codec
}

// NewStore creates a manifest store for the blob called name.
func NewStore(blobs blobstore.BlobStore, name string, c codec.Codec) *Store {
	if c == nil {
		c = codec.Default
	}
	return &Store{
		blobs: blobs,
		name:  name,
		codec: c,
	}
}

// Name returns the blob name of the manifest.
func (s *Store) Name() string { return s.name }

// Load reads the manifest. A missing manifest is reported with an error
// satisfying errors.Is(err, blobstore.ErrNotFound).
func (s *Store) Load(ctx context.Context) (*Manifest, error) {
	data, err := blobstore.ReadAll(ctx, s.blobs, s.name)
	if err != nil {
		return nil, err
	}
	return Decode(s.codec, data)
}

// Save overwrites the manifest.
func (s *Store) Save(ctx context.Context, m *Manifest) error {
	data, err := Encode(s.codec, m)
	if err != nil {
		return err
	}
	return s.blobs.Put(ctx, s.name, data)
}
