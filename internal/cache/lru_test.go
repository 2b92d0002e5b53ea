package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLRU_Basic(t *testing.T) {
	c := NewLRUCache(10)
	ctx := context.Background()
	a := Key{Namespace: "s", Name: "ds/0.txt"}
	b := Key{Namespace: "s", Name: "ds/1.txt"}
	d := Key{Namespace: "s", Name: "ds/2.txt"}

	c.Set(ctx, a, []byte("aaaa"))
	c.Set(ctx, b, []byte("bbbb"))
	assert.Equal(t, int64(8), c.Size())

	// Touch a so b becomes the eviction candidate.
	v, ok := c.Get(ctx, a)
	assert.True(t, ok)
	assert.Equal(t, "aaaa", string(v))

	c.Set(ctx, d, []byte("dddd"))
	_, ok = c.Get(ctx, b)
	assert.False(t, ok)
	_, ok = c.Get(ctx, a)
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())

	hits, misses := c.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(1), misses)
}

func TestLRU_EdgeCases(t *testing.T) {
	c := NewLRUCache(50)
	ctx := context.Background()
	k := Key{Name: "manifest.json"}

	c.Set(ctx, k, make([]byte, 60))
	_, ok := c.Get(ctx, k)
	assert.False(t, ok, "item larger than capacity is not cached")

	c.Set(ctx, k, make([]byte, 10))
	assert.Equal(t, int64(10), c.Size())

	c.Set(ctx, k, make([]byte, 20))
	assert.Equal(t, int64(20), c.Size())

	c.Set(ctx, k, make([]byte, 5))
	assert.Equal(t, int64(5), c.Size())

	// An oversized update drops the stale entry.
	c.Set(ctx, k, make([]byte, 60))
	_, ok = c.Get(ctx, k)
	assert.False(t, ok)
	assert.Equal(t, int64(0), c.Size())
}

func TestLRU_Invalidate(t *testing.T) {
	c := NewLRUCache(100)
	ctx := context.Background()

	c.Set(ctx, Key{Namespace: "x", Name: "a"}, []byte("1"))
	c.Set(ctx, Key{Namespace: "x", Name: "b"}, []byte("2"))
	c.Set(ctx, Key{Namespace: "y", Name: "a"}, []byte("3"))

	c.Invalidate(func(k Key) bool { return k.Name == "a" })

	assert.Equal(t, 1, c.Len())
	_, ok := c.Get(ctx, Key{Namespace: "x", Name: "b"})
	assert.True(t, ok)
}
