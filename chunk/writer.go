package chunk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/datapack/blobstore"
	"github.com/hupe1980/datapack/locator"
)

// pruneConcurrency bounds parallel deletes during Prune.
const pruneConcurrency = 8

// Writer stores chunk objects for one dataset.
type Writer struct {
	store blobstore.BlobStore
	loc   locator.Locator
	opts  WriterOptions
}

// NewWriter creates a Writer for the dataset at loc inside store.
func NewWriter(store blobstore.BlobStore, loc locator.Locator, optFns ...func(o *WriterOptions)) *Writer {
	opts := WriterOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	opts.Logger = defaultLogger(opts.Logger)
	opts.Recorder = defaultRecorder(opts.Recorder)
	return &Writer{store: store, loc: loc, opts: opts}
}

// WriteText packs the lines of src into chunks of at most maxSize bytes and
// writes them. It returns the number of chunks written.
func (w *Writer) WriteText(ctx context.Context, src io.Reader, maxSize int) (int, error) {
	return w.WriteChunks(ctx, func(yield func([]byte, error) bool) {
		for c, err := range SplitLines(ReadLines(src), maxSize) {
			if !yield([]byte(c), err) || err != nil {
				return
			}
		}
	})
}

// WriteBinary cuts src into windows of maxSize bytes and writes them. It
// returns the number of chunks written.
func (w *Writer) WriteBinary(ctx context.Context, src io.Reader, maxSize int) (int, error) {
	return w.WriteChunks(ctx, SplitBytes(src, maxSize))
}

// WriteChunks writes each element of chunks to the next chunk index,
// starting at 0. It stops at the first error.
func (w *Writer) WriteChunks(ctx context.Context, chunks iter.Seq2[[]byte, error]) (int, error) {
	n := 0
	for data, err := range chunks {
		if err != nil {
			return n, err
		}
		if err := ctx.Err(); err != nil {
			return n, err
		}

		name := w.loc.ChunkName(n, w.opts.Extension)
		if err := w.write(ctx, name, func(dst io.Writer) error {
			_, err := dst.Write(data)
			return err
		}); err != nil {
			return n, &Error{Op: "write", Index: n, Name: name, Err: err}
		}

		w.opts.Logger.DebugContext(ctx, "chunk written", "address", w.loc.ChunkAddress(n, w.opts.Extension), "bytes", len(data))
		n++
	}
	return n, nil
}

// WriteSingle writes the whole content produced by fill to the single-file
// object {name}.{ext}.
func (w *Writer) WriteSingle(ctx context.Context, fill func(dst io.Writer) error) error {
	name := w.loc.SingleName(w.opts.Extension)
	if err := w.write(ctx, name, fill); err != nil {
		return &Error{Op: "write", Index: -1, Name: name, Err: err}
	}
	return nil
}

func (w *Writer) write(ctx context.Context, name string, fill func(dst io.Writer) error) (err error) {
	start := time.Now()
	cw := &countingWriter{}
	defer func() {
		w.opts.Recorder.RecordChunkWrite(cw.n, time.Since(start), err)
	}()

	blob, err := w.store.Create(ctx, name)
	if err != nil {
		return err
	}
	cw.w = blob

	if err := fill(cw); err != nil {
		return errors.Join(err, blobstore.Abort(blob))
	}
	if err := blob.Sync(); err != nil {
		return errors.Join(err, blobstore.Abort(blob))
	}
	return blob.Close()
}

// Prune deletes chunk objects with an index >= count left over from an
// earlier, larger save. Stores that cannot list are skipped.
func (w *Writer) Prune(ctx context.Context, count int) (int, error) {
	names, err := w.store.List(ctx, w.loc.PackagePrefix())
	if err != nil {
		if errors.Is(err, errors.ErrUnsupported) {
			return 0, nil
		}
		return 0, fmt.Errorf("list %s: %w", w.loc.PackagePrefix(), err)
	}

	var stale []string
	for _, name := range names {
		if idx, ok := w.loc.ParseChunkIndex(name, w.opts.Extension); ok && idx >= count {
			stale = append(stale, name)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(pruneConcurrency)
	for _, name := range stale {
		g.Go(func() error {
			return w.store.Delete(gctx, name)
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	if len(stale) > 0 {
		w.opts.Logger.DebugContext(ctx, "pruned stale chunks", "location", w.loc.Location(), "count", len(stale))
	}
	return len(stale), nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
