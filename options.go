package datapack

import (
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/hupe1980/datapack/blobstore"
	"github.com/hupe1980/datapack/codec"
	"github.com/hupe1980/datapack/model"
)

type options struct {
	kind             model.ContentKind
	ext              string
	extSet           bool
	header           http.Header
	client           *http.Client
	limiter          *rate.Limiter
	bandwidth        *rate.Limiter
	store            blobstore.BlobStore
	cacheBytes       int64
	codec            codec.Codec
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures how a dataset is opened.
type Option func(*options)

// WithContentKind declares the content kind. The manifest is then not read
// and no sniffing takes place.
func WithContentKind(kind model.ContentKind) Option {
	return func(o *options) {
		o.kind = kind
	}
}

// WithExtension sets the chunk file suffix. A manifest, when read, takes
// precedence.
func WithExtension(ext string) Option {
	return func(o *options) {
		o.ext = ext
		o.extSet = true
	}
}

// WithHeaders attaches header to every remote request, e.g. for
// authorization. Ignored for local locations.
func WithHeaders(header http.Header) Option {
	return func(o *options) {
		o.header = header.Clone()
	}
}

// WithHTTPClient configures the client used for remote locations.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.client = client
	}
}

// WithRateLimiter throttles remote requests.
//
// Example:
//
//	ds, _ := datapack.Load(ctx, "https://example.com/corpus",
//	    datapack.WithRateLimiter(rate.NewLimiter(rate.Limit(10), 1)))
func WithRateLimiter(limiter *rate.Limiter) Option {
	return func(o *options) {
		o.limiter = limiter
	}
}

// WithBandwidthLimit caps remote downloads at bytesPerSec.
func WithBandwidthLimit(bytesPerSec int) Option {
	return func(o *options) {
		if bytesPerSec <= 0 {
			o.bandwidth = nil
			return
		}
		o.bandwidth = rate.NewLimiter(rate.Limit(bytesPerSec), bytesPerSec)
	}
}

// WithStore reads the dataset from store instead of the backend derived from
// the location. The location then names objects inside store.
//
// Example with MinIO:
//
//	store, _ := minio.NewStore(client, "bucket", "datasets/")
//	ds, _ := datapack.Load(ctx, "corpus", datapack.WithStore(store))
func WithStore(store blobstore.BlobStore) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithCache keeps up to capacity bytes of fetched chunks in memory so that
// repeated iterations do not hit the backend again. Mostly useful for remote
// datasets.
func WithCache(capacity int64) Option {
	return func(o *options) {
		o.cacheBytes = capacity
	}
}

// WithCodec configures the codec used for the manifest.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCodecName selects a built-in manifest codec by name ("json" or
// "go-json"). Unknown names keep codec.Default.
func WithCodecName(name string) Option {
	c, ok := codec.ByName(name)
	if !ok {
		c = codec.Default
	}
	return WithCodec(c)
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &datapack.BasicMetricsCollector{}
//	ds, _ := datapack.Load(ctx, "./corpus", datapack.WithMetricsCollector(metrics))
//	// ... use ds ...
//	stats := metrics.GetStats()
//	fmt.Printf("Chunks: %d, Bytes: %d\n", stats.ChunksRead, stats.BytesRead)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := datapack.NewJSONLogger(slog.LevelInfo)
//	ds, _ := datapack.Load(ctx, "./corpus", datapack.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:            codec.Default,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

type saveOptions struct {
	maxSize     int
	chunked     bool
	description *string
	store       blobstore.BlobStore
}

// SaveOption configures a single Save.
type SaveOption func(*saveOptions)

// WithMaxSize stores the dataset as a package of chunks of at most n bytes.
// Without it the content is written as one file.
func WithMaxSize(n int) SaveOption {
	return func(o *saveOptions) {
		o.maxSize = n
		o.chunked = true
	}
}

// WithDescription sets the manifest description, replacing the one inherited
// from the loaded manifest.
func WithDescription(description string) SaveOption {
	return func(o *saveOptions) {
		o.description = &description
	}
}

// WithSaveStore writes to store instead of the backend derived from the
// target location.
func WithSaveStore(store blobstore.BlobStore) SaveOption {
	return func(o *saveOptions) {
		o.store = store
	}
}

func applySaveOptions(optFns []SaveOption) saveOptions {
	o := saveOptions{}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
