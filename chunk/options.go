package chunk

import (
	"log/slog"
	"time"

	"github.com/hupe1980/datapack/model"
)

// Recorder receives per-chunk measurements.
type Recorder interface {
	RecordChunkRead(bytes int64, duration time.Duration)
	RecordChunkWrite(bytes int64, duration time.Duration, err error)
}

type noopRecorder struct{}

func (noopRecorder) RecordChunkRead(int64, time.Duration)         {}
func (noopRecorder) RecordChunkWrite(int64, time.Duration, error) {}

// ReaderOptions configures a Reader.
type ReaderOptions struct {
	// Extension is the chunk file suffix.
	Extension string
	// Kind is the content kind if already known. Unknown triggers sniffing
	// on the first resource.
	Kind model.ContentKind
	// Data, when InMemory is set, is served as the only resource.
	Data     []byte
	InMemory bool

	Logger   *slog.Logger
	Recorder Recorder
}

// WriterOptions configures a Writer.
type WriterOptions struct {
	// Extension is the chunk file suffix.
	Extension string

	Logger   *slog.Logger
	Recorder Recorder
}

func defaultLogger(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}

func defaultRecorder(r Recorder) Recorder {
	if r == nil {
		return noopRecorder{}
	}
	return r
}
