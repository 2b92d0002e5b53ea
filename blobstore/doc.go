// Package blobstore provides the storage abstraction behind datapack's chunk
// reader and writer.
//
// A BlobStore resolves slash-separated names relative to a root and hands out
// streaming readers and writers. Every backend reports a missing blob with an
// error satisfying errors.Is(err, ErrNotFound), which is how the chunk reader
// detects the end of a package.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, writes staged and renamed into place
//   - HTTPStore: read-only streaming GETs with caller headers
//   - MemoryStore: in-memory, for tests and in-process datasets
//   - CachingStore: wraps any store and keeps small blobs in an LRU
//   - minio.Store and s3.Store: object storage backends (subpackages)
package blobstore
