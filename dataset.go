package datapack

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"time"

	"github.com/hupe1980/datapack/blobstore"
	"github.com/hupe1980/datapack/chunk"
	"github.com/hupe1980/datapack/internal/cache"
	"github.com/hupe1980/datapack/locator"
	"github.com/hupe1980/datapack/manifest"
	"github.com/hupe1980/datapack/model"
)

// Dataset is a handle to chunked content in a local directory, behind an
// HTTP endpoint, in a caller-supplied store or in memory.
//
// A Dataset is not safe for concurrent use. The content kind is resolved at
// most once, either from the manifest, from an explicit option or by
// sniffing the first chunk, and reused by every later iteration.
type Dataset struct {
	loc        locator.Locator
	sourceKind model.SourceKind
	ext        string
	desc       string
	manifest   *manifest.Manifest
	store      blobstore.BlobStore
	reader     *chunk.Reader
	opts       options
}

// Load opens the dataset at location.
//
// Unless WithContentKind is given, the manifest is read and is authoritative
// for the content kind, the extension and the description. A missing manifest
// is not an error: the content kind is then detected from the first chunk.
// A manifest that exists but cannot be decoded fails with
// ErrMalformedManifest.
func Load(ctx context.Context, location string, optFns ...Option) (_ *Dataset, err error) {
	start := time.Now()
	opts := applyOptions(optFns)

	d := &Dataset{ext: opts.ext, opts: opts}
	d.loc, d.store = resolveStore(location, opts)
	d.sourceKind = d.loc.Kind()

	defer func() {
		opts.metricsCollector.RecordLoad(time.Since(start), err)
		opts.logger.LogLoad(ctx, location, d.ContentKind().String(), d.sourceKind.String(), err)
	}()

	kind := opts.kind
	if !kind.Known() {
		m, err := manifest.NewStore(d.store, d.loc.ManifestName(), opts.codec).Load(ctx)
		switch {
		case err == nil:
			d.manifest = m
			d.ext = m.Type
			d.desc = m.Description
			kind = m.ContentKind()
		case errors.Is(err, ErrNotFound):
			opts.logger.LogFallback(ctx, location)
		default:
			return nil, &ManifestError{Location: d.loc.Location(), cause: err}
		}
	}

	d.reader = chunk.NewReader(d.store, d.loc, func(o *chunk.ReaderOptions) {
		o.Extension = d.ext
		o.Kind = kind
		o.Logger = opts.logger.Logger
		o.Recorder = opts.metricsCollector
	})
	return d, nil
}

// FromBytes creates a binary in-memory dataset.
func FromBytes(data []byte, ext string, optFns ...Option) *Dataset {
	return fromMemory(data, ext, model.Binary, optFns)
}

// FromString creates a text in-memory dataset.
func FromString(s string, ext string, optFns ...Option) *Dataset {
	return fromMemory([]byte(s), ext, model.Text, optFns)
}

func fromMemory(data []byte, ext string, kind model.ContentKind, optFns []Option) *Dataset {
	opts := applyOptions(optFns)
	d := &Dataset{
		loc:        locator.InStore(""),
		sourceKind: model.Local,
		ext:        ext,
		store:      opts.store,
		opts:       opts,
	}
	d.reader = chunk.NewReader(nil, d.loc, func(o *chunk.ReaderOptions) {
		o.Extension = ext
		o.Kind = kind
		o.Data = data
		o.InMemory = true
		o.Logger = opts.logger.Logger
		o.Recorder = opts.metricsCollector
	})
	return d
}

func resolveStore(location string, opts options) (locator.Locator, blobstore.BlobStore) {
	if opts.store != nil {
		return locator.InStore(location), withCache(opts.store, "", opts.cacheBytes)
	}

	loc := locator.Parse(location)
	var store blobstore.BlobStore
	if loc.Kind() == model.Remote {
		store = blobstore.NewHTTPStore(loc.Root(), func(o *blobstore.HTTPOptions) {
			o.Client = opts.client
			o.Header = opts.header
			o.Limiter = opts.limiter
			o.Bandwidth = opts.bandwidth
		})
	} else {
		store = blobstore.NewLocalStore(loc.Root())
	}
	return loc, withCache(store, loc.Root(), opts.cacheBytes)
}

func withCache(store blobstore.BlobStore, namespace string, capacity int64) blobstore.BlobStore {
	if capacity <= 0 {
		return store
	}
	maxBlob := min(capacity, blobstore.DefaultMaxCachedBlobSize)
	return blobstore.NewCachingStore(store, cache.NewLRUCache(capacity), namespace, maxBlob)
}

// Location returns the normalized location, empty for in-memory datasets.
func (d *Dataset) Location() string { return d.loc.Location() }

// SourceKind returns where the dataset is read from.
func (d *Dataset) SourceKind() model.SourceKind { return d.sourceKind }

// ContentKind returns the resolved content kind. It is Unknown until the
// first chunk has been read when neither a manifest nor an explicit kind was
// available.
func (d *Dataset) ContentKind() model.ContentKind {
	if d.reader == nil {
		return model.Unknown
	}
	return d.reader.ContentKind()
}

// Extension returns the chunk file suffix.
func (d *Dataset) Extension() string { return d.ext }

// Description returns the description from the manifest, if any.
func (d *Dataset) Description() string { return d.desc }

// Manifest returns the manifest read by Load, or nil.
func (d *Dataset) Manifest() *manifest.Manifest { return d.manifest }

// Lines returns the trimmed text lines across all chunks. For binary content
// the only element is an error satisfying errors.Is(err, ErrUnsupportedOperation).
func (d *Dataset) Lines(ctx context.Context) iter.Seq2[string, error] {
	return logged(ctx, d, chunk.Lines(ctx, d.reader))
}

// Chunks re-packs the content into chunks of at most maxSize bytes, the same
// way Save cuts a package.
func (d *Dataset) Chunks(ctx context.Context, maxSize int) iter.Seq2[[]byte, error] {
	return logged(ctx, d, chunk.Chunks(ctx, d.reader, maxSize))
}

// Content reads the whole dataset into memory. Text chunks are joined with a
// newline and binary chunks are concatenated.
func (d *Dataset) Content(ctx context.Context) ([]byte, error) {
	s := chunk.NewStream(ctx, d.reader)
	defer s.Close()

	data, err := io.ReadAll(s)
	if err != nil {
		d.opts.logger.LogChunk(ctx, d.Location(), err)
		return nil, err
	}
	return data, nil
}

// Text reads the whole text dataset into memory.
func (d *Dataset) Text(ctx context.Context) (string, error) {
	data, err := d.Content(ctx)
	if err != nil {
		return "", err
	}
	if d.ContentKind() == model.Binary {
		return "", fmt.Errorf("text of binary content: %w", ErrUnsupportedOperation)
	}
	return string(data), nil
}

// Batches groups lines into slices of size lines. preprocess, if not nil, is
// applied to each line first. The last batch may be shorter.
func (d *Dataset) Batches(ctx context.Context, size int, preprocess func(string) string) iter.Seq2[[]string, error] {
	return func(yield func([]string, error) bool) {
		if size < 1 {
			yield(nil, ErrInvalidBatchSize)
			return
		}

		batch := make([]string, 0, size)
		for line, err := range d.Lines(ctx) {
			if err != nil {
				yield(nil, err)
				return
			}
			if preprocess != nil {
				line = preprocess(line)
			}
			batch = append(batch, line)
			if len(batch) == size {
				if !yield(batch, nil) {
					return
				}
				batch = make([]string, 0, size)
			}
		}
		if len(batch) > 0 {
			yield(batch, nil)
		}
	}
}

// Save writes the dataset to location.
//
// With WithMaxSize the content is stored as a package {location}/{n}.{ext}
// followed by {location}/manifest.json, and the written manifest is returned.
// Chunks left over from an earlier, larger save are removed. Without
// WithMaxSize the content is written to the single file {location}.{ext}; no
// manifest is written and the returned manifest is nil.
//
// Save is not transactional. After a failure the target is in an
// indeterminate state and should be saved again. Saving onto the location
// the dataset is being read from is only safe with the same max size.
func (d *Dataset) Save(ctx context.Context, location string, optFns ...SaveOption) (_ *manifest.Manifest, err error) {
	start := time.Now()
	so := applySaveOptions(optFns)

	var chunks int
	defer func() {
		d.opts.metricsCollector.RecordSave(chunks, time.Since(start), err)
		d.opts.logger.LogSave(ctx, location, chunks, err)
	}()

	if so.chunked && so.maxSize <= 0 {
		return nil, ErrInvalidMaxSize
	}

	loc, store, err := d.target(location, so)
	if err != nil {
		return nil, err
	}

	w := chunk.NewWriter(store, loc, func(o *chunk.WriterOptions) {
		o.Extension = d.ext
		o.Logger = d.opts.logger.Logger
		o.Recorder = d.opts.metricsCollector
	})

	if !so.chunked {
		err := w.WriteSingle(ctx, func(dst io.Writer) error {
			s := chunk.NewStream(ctx, d.reader)
			defer s.Close()
			_, err := io.Copy(dst, s)
			return err
		})
		if err != nil {
			return nil, err
		}
		chunks = 1
		return nil, nil
	}

	chunks, err = w.WriteChunks(ctx, chunk.Chunks(ctx, d.reader, so.maxSize))
	if err != nil {
		return nil, err
	}

	kind := d.ContentKind()
	if !kind.Known() {
		return nil, fmt.Errorf("save %s: %w", location, ErrAmbiguousContentType)
	}

	pruned, err := w.Prune(ctx, chunks)
	d.opts.logger.LogPrune(ctx, location, pruned, err)
	if err != nil {
		return nil, err
	}

	desc := d.desc
	if so.description != nil {
		desc = *so.description
	}

	m := manifest.New(desc, chunks, d.ext, kind)
	if err := manifest.NewStore(store, loc.ManifestName(), d.opts.codec).Save(ctx, m); err != nil {
		return nil, &ManifestError{Location: loc.Location(), cause: err}
	}
	return m, nil
}

// target resolves the store a save writes to.
func (d *Dataset) target(location string, so saveOptions) (locator.Locator, blobstore.BlobStore, error) {
	switch {
	case so.store != nil:
		return locator.InStore(location), so.store, nil
	case d.opts.store != nil:
		return locator.InStore(location), d.store, nil
	}

	loc := locator.Parse(location)
	if loc.Kind() == model.Remote {
		return loc, nil, fmt.Errorf("save %s: %w", location, blobstore.ErrReadOnly)
	}
	if d.store != nil && d.sourceKind == model.Local && d.loc.Root() == loc.Root() {
		// Writes through the own store keep its cache coherent.
		return loc, d.store, nil
	}
	return loc, blobstore.NewLocalStore(loc.Root()), nil
}

// logged reports the error that ends seq, if any.
func logged[T any](ctx context.Context, d *Dataset, seq iter.Seq2[T, error]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for v, err := range seq {
			if err != nil {
				d.opts.logger.LogChunk(ctx, d.Location(), err)
			}
			if !yield(v, err) {
				return
			}
		}
	}
}
