// Package fs provides the filesystem seam used by the local blob store and by
// archive extraction.
//
//   - [FileSystem]: the operations datapack performs on a local tree
//   - [LocalFS]: production implementation backed by package os
//   - [FaultyFS]: test wrapper that injects open, write and close failures
//
// Tests swap in a FaultyFS to leave a package half-written and observe how a
// later load reacts:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule("/2.jsonl", fs.Fault{FailOnOpen: true})
package fs
