package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/hupe1980/datapack/internal/cache"
)

// DefaultMaxCachedBlobSize bounds the blobs a CachingStore keeps.
const DefaultMaxCachedBlobSize = 4 << 20

// CachingStore wraps a BlobStore and keeps fully-read blobs in a cache.
//
// Reads stream from the inner store; a blob is admitted only once it was read
// to EOF and does not exceed maxBlobSize, so large chunks are never buffered.
type CachingStore struct {
	inner       BlobStore
	cache       cache.BlobCache
	namespace   string
	maxBlobSize int64
}

// NewCachingStore creates a new CachingStore.
// namespace separates this store's entries in a shared cache.
// maxBlobSize defaults to DefaultMaxCachedBlobSize if <= 0.
func NewCachingStore(inner BlobStore, c cache.BlobCache, namespace string, maxBlobSize int64) *CachingStore {
	if maxBlobSize <= 0 {
		maxBlobSize = DefaultMaxCachedBlobSize
	}
	return &CachingStore{
		inner:       inner,
		cache:       c,
		namespace:   namespace,
		maxBlobSize: maxBlobSize,
	}
}

func (s *CachingStore) key(name string) cache.Key {
	return cache.Key{Namespace: s.namespace, Name: name}
}

func (s *CachingStore) invalidate(name string) {
	s.cache.Invalidate(func(k cache.Key) bool {
		return k.Namespace == s.namespace && k.Name == name
	})
}

// Open serves name from the cache or streams it from the inner store.
func (s *CachingStore) Open(ctx context.Context, name string) (Blob, error) {
	if data, ok := s.cache.Get(ctx, s.key(name)); ok {
		return io.NopCloser(bytes.NewReader(data)), nil
	}
	b, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return &cachingBlob{
		inner: b,
		store: s,
		ctx:   ctx,
		name:  name,
	}, nil
}

func (s *CachingStore) Create(ctx context.Context, name string) (WritableBlob, error) {
	s.invalidate(name)
	return s.inner.Create(ctx, name)
}

func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	s.invalidate(name)
	return s.inner.Put(ctx, name, data)
}

func (s *CachingStore) Delete(ctx context.Context, name string) error {
	s.invalidate(name)
	return s.inner.Delete(ctx, name)
}

func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// cachingBlob tees reads into a buffer until the blob outgrows maxBlobSize.
type cachingBlob struct {
	inner    Blob
	store    *CachingStore
	ctx      context.Context
	name     string
	buf      bytes.Buffer
	overflow bool
	eof      bool
}

func (b *cachingBlob) Read(p []byte) (int, error) {
	n, err := b.inner.Read(p)
	if n > 0 && !b.overflow {
		if int64(b.buf.Len()+n) > b.store.maxBlobSize {
			b.overflow = true
			b.buf = bytes.Buffer{}
		} else {
			b.buf.Write(p[:n])
		}
	}
	if errors.Is(err, io.EOF) {
		b.eof = true
	}
	return n, err
}

func (b *cachingBlob) Close() error {
	if b.eof && !b.overflow {
		b.store.cache.Set(b.ctx, b.store.key(b.name), b.buf.Bytes())
	}
	return b.inner.Close()
}
