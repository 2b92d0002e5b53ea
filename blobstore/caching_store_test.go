package blobstore

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/datapack/internal/cache"
)

type countingStore struct {
	BlobStore
	opens int
}

func (c *countingStore) Open(ctx context.Context, name string) (Blob, error) {
	c.opens++
	return c.BlobStore.Open(ctx, name)
}

func TestCachingStore_ServesFullyReadBlobs(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{BlobStore: NewMemoryStore()}
	require.NoError(t, inner.Put(ctx, "ds/0.txt", []byte("alpha\nbeta")))

	lru := cache.NewLRUCache(1 << 10)
	store := NewCachingStore(inner, lru, "mem", 0)

	for i := 0; i < 3; i++ {
		data, err := ReadAll(ctx, store, "ds/0.txt")
		require.NoError(t, err)
		assert.Equal(t, "alpha\nbeta", string(data))
	}
	assert.Equal(t, 1, inner.opens)

	hits, _ := lru.Stats()
	assert.Equal(t, int64(2), hits)
}

func TestCachingStore_PartialReadNotCached(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{BlobStore: NewMemoryStore()}
	require.NoError(t, inner.Put(ctx, "ds/0.txt", []byte("0123456789")))

	store := NewCachingStore(inner, cache.NewLRUCache(1<<10), "mem", 0)

	b, err := store.Open(ctx, "ds/0.txt")
	require.NoError(t, err)
	buf := make([]byte, 4)
	_, err = b.Read(buf)
	require.NoError(t, err)
	require.NoError(t, b.Close())

	_, err = ReadAll(ctx, store, "ds/0.txt")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.opens)
}

func TestCachingStore_OversizedBlobNotCached(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{BlobStore: NewMemoryStore()}
	big := strings.Repeat("x", 100)
	require.NoError(t, inner.Put(ctx, "big", []byte(big)))

	lru := cache.NewLRUCache(1 << 10)
	store := NewCachingStore(inner, lru, "mem", 10)

	data, err := ReadAll(ctx, store, "big")
	require.NoError(t, err)
	assert.Equal(t, big, string(data))
	assert.Equal(t, 0, lru.Len())
}

func TestCachingStore_WritesInvalidate(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	require.NoError(t, inner.Put(ctx, "ds/manifest.json", []byte("v1")))

	store := NewCachingStore(inner, cache.NewLRUCache(1<<10), "mem", 0)
	_, err := ReadAll(ctx, store, "ds/manifest.json")
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "ds/manifest.json", []byte("v2")))
	data, err := ReadAll(ctx, store, "ds/manifest.json")
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))

	w, err := store.Create(ctx, "ds/manifest.json")
	require.NoError(t, err)
	_, err = io.WriteString(w, "v3")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err = ReadAll(ctx, store, "ds/manifest.json")
	require.NoError(t, err)
	assert.Equal(t, "v3", string(data))

	require.NoError(t, store.Delete(ctx, "ds/manifest.json"))
	_, err = store.Open(ctx, "ds/manifest.json")
	assert.ErrorIs(t, err, ErrNotFound)
}
