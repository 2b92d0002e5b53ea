package cache

import "context"

// Key identifies a cached blob. Namespace separates stores that share one cache.
type Key struct {
	Namespace string
	Name      string
}

// BlobCache is a byte-oriented cache for immutable blob contents.
// Returned slices must be treated as read-only.
type BlobCache interface {
	// Get returns a cached blob. ok=false if missing.
	Get(ctx context.Context, key Key) (b []byte, ok bool)
	// Set caches a blob. The caller must treat b as immutable afterwards.
	Set(ctx context.Context, key Key, b []byte)
	// Invalidate removes entries matching the predicate.
	Invalidate(predicate func(key Key) bool)
	// Stats returns cache statistics.
	Stats() (hits, misses int64)
}
