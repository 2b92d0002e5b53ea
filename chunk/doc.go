// Package chunk implements the chunk-level read and write paths of a dataset.
//
// Reading is pull-based. A Reader yields one open Resource per chunk object
// in index order (0, 1, 2, ...) and stops at the first missing index. If chunk
// 0 does not exist the single-file form is tried instead. Every Resource is
// closed by the Reader as soon as the consumer's loop body returns, including
// on break and on error:
//
//	r := chunk.NewReader(store, loc, func(o *chunk.ReaderOptions) { o.Extension = "jsonl" })
//	for line, err := range chunk.Lines(ctx, r) {
//	    if err != nil {
//	        return err
//	    }
//	    ...
//	}
//
// Writing packs text lines into chunks of at most MaxSize bytes without ever
// splitting a line, or cuts binary content into fixed windows, and stores
// chunk n under {name}/{n}.{ext}.
package chunk
