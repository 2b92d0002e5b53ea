package chunk

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"iter"
	"time"

	"github.com/hupe1980/datapack/blobstore"
	"github.com/hupe1980/datapack/locator"
	"github.com/hupe1980/datapack/model"
	"github.com/hupe1980/datapack/sniff"
)

// Resource is one open chunk handed to the consumer of a Reader.
// It is only valid until the consumer's loop body returns.
type Resource struct {
	// Index is the chunk index, or -1 for the single-file and in-memory forms.
	Index int
	// Name is the root-relative object name; empty for in-memory data.
	Name string

	r *bufio.Reader
	n int64
}

func (res *Resource) Read(p []byte) (int, error) {
	n, err := res.r.Read(p)
	res.n += int64(n)
	if err != nil && !errors.Is(err, io.EOF) {
		err = &Error{Op: "read", Index: res.Index, Name: res.Name, Err: err}
	}
	return n, err
}

// BytesRead returns the number of bytes consumed so far.
func (res *Resource) BytesRead() int64 { return res.n }

// Reader produces the chunk resources of one dataset.
//
// A Reader resolves the content kind at most once; after the first resource
// has been sniffed every later sequence reuses the decision.
type Reader struct {
	store blobstore.BlobStore
	loc   locator.Locator
	opts  ReaderOptions
	kind  model.ContentKind
}

// NewReader creates a Reader for the dataset at loc inside store.
func NewReader(store blobstore.BlobStore, loc locator.Locator, optFns ...func(o *ReaderOptions)) *Reader {
	opts := ReaderOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	opts.Logger = defaultLogger(opts.Logger)
	opts.Recorder = defaultRecorder(opts.Recorder)
	return &Reader{
		store: store,
		loc:   loc,
		opts:  opts,
		kind:  opts.Kind,
	}
}

// ContentKind returns the resolved kind, Unknown until the first resource
// has been inspected.
func (r *Reader) ContentKind() model.ContentKind { return r.kind }

// Resources returns the ordered, lazily opened chunk resources.
//
// The sequence ends at the first missing chunk index. When chunk 0 is missing
// the single-file form {name}.{ext} is tried; if that is missing too the
// sequence is empty. Any other open failure is yielded as an error and ends
// the sequence.
func (r *Reader) Resources(ctx context.Context) iter.Seq2[*Resource, error] {
	return func(yield func(*Resource, error) bool) {
		if r.opts.InMemory {
			b := io.NopCloser(bytes.NewReader(r.opts.Data))
			r.emit(-1, "", b, yield)
			return
		}

		for n := 0; ; n++ {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}

			name := r.loc.ChunkName(n, r.opts.Extension)
			b, err := r.store.Open(ctx, name)
			if err != nil {
				if !errors.Is(err, blobstore.ErrNotFound) {
					yield(nil, &Error{Op: "open", Index: n, Name: name, Err: err})
					return
				}
				if n == 0 {
					r.single(ctx, yield)
				} else {
					r.opts.Logger.DebugContext(ctx, "end of package", "location", r.loc.Location(), "chunks", n)
				}
				return
			}

			r.opts.Logger.DebugContext(ctx, "reading chunk", "address", r.loc.ChunkAddress(n, r.opts.Extension))
			if !r.emit(n, name, b, yield) {
				return
			}
		}
	}
}

func (r *Reader) single(ctx context.Context, yield func(*Resource, error) bool) {
	name := r.loc.SingleName(r.opts.Extension)
	b, err := r.store.Open(ctx, name)
	if err != nil {
		if !errors.Is(err, blobstore.ErrNotFound) {
			yield(nil, &Error{Op: "open", Index: -1, Name: name, Err: err})
			return
		}
		r.opts.Logger.DebugContext(ctx, "no chunks and no single file", "location", r.loc.Location())
		return
	}
	r.opts.Logger.DebugContext(ctx, "reading single file", "address", r.loc.SingleAddress(r.opts.Extension))
	r.emit(-1, name, b, yield)
}

// emit hands one blob to the consumer and releases it afterwards. It reports
// whether the sequence should continue.
func (r *Reader) emit(index int, name string, b blobstore.Blob, yield func(*Resource, error) bool) bool {
	start := time.Now()
	res := &Resource{
		Index: index,
		Name:  name,
		r:     bufio.NewReaderSize(b, max(sniff.SampleSize, 64*1024)),
	}

	if !r.kind.Known() {
		kind, err := sniff.DetectReader(res.r)
		if err != nil {
			_ = b.Close()
			yield(nil, &Error{Op: "sniff", Index: index, Name: name, Err: err})
			return false
		}
		r.kind = kind
	}

	cont := yield(res, nil)
	closeErr := b.Close()
	r.opts.Recorder.RecordChunkRead(res.n, time.Since(start))

	if closeErr != nil && cont {
		yield(nil, &Error{Op: "close", Index: index, Name: name, Err: closeErr})
		return false
	}
	return cont
}
