// Package cache provides a byte-bounded LRU used to keep recently read blobs
// (manifests, small chunks) in memory between iterations of a dataset.
package cache
