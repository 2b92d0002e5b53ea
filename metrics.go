package datapack

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    chunkBytes prometheus.Counter
//	}
//
//	func (p *PrometheusCollector) RecordChunkRead(bytes int64, d time.Duration) {
//	    p.chunkBytes.Add(float64(bytes))
//	}
type MetricsCollector interface {
	// RecordChunkRead is called after each chunk has been consumed.
	RecordChunkRead(bytes int64, duration time.Duration)

	// RecordChunkWrite is called after each chunk or single file write,
	// err is nil if successful.
	RecordChunkWrite(bytes int64, duration time.Duration, err error)

	// RecordLoad is called after each Load.
	RecordLoad(duration time.Duration, err error)

	// RecordSave is called after each Save with the number of chunks written.
	RecordSave(chunks int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordChunkRead(int64, time.Duration)         {}
func (NoopMetricsCollector) RecordChunkWrite(int64, time.Duration, error) {}
func (NoopMetricsCollector) RecordLoad(time.Duration, error)              {}
func (NoopMetricsCollector) RecordSave(int, time.Duration, error)         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ChunksRead      atomic.Int64
	BytesRead       atomic.Int64
	ChunksWritten   atomic.Int64
	BytesWritten    atomic.Int64
	WriteErrors     atomic.Int64
	LoadCount       atomic.Int64
	LoadErrors      atomic.Int64
	SaveCount       atomic.Int64
	SaveErrors      atomic.Int64
	SaveTotalNanos  atomic.Int64
	SaveTotalChunks atomic.Int64
	ReadTotalNanos  atomic.Int64
}

// RecordChunkRead implements MetricsCollector.
func (b *BasicMetricsCollector) RecordChunkRead(bytes int64, duration time.Duration) {
	b.ChunksRead.Add(1)
	b.BytesRead.Add(bytes)
	b.ReadTotalNanos.Add(duration.Nanoseconds())
}

// RecordChunkWrite implements MetricsCollector.
func (b *BasicMetricsCollector) RecordChunkWrite(bytes int64, _ time.Duration, err error) {
	if err != nil {
		b.WriteErrors.Add(1)
		return
	}
	b.ChunksWritten.Add(1)
	b.BytesWritten.Add(bytes)
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(_ time.Duration, err error) {
	b.LoadCount.Add(1)
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

// RecordSave implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSave(chunks int, duration time.Duration, err error) {
	b.SaveCount.Add(1)
	b.SaveTotalNanos.Add(duration.Nanoseconds())
	b.SaveTotalChunks.Add(int64(chunks))
	if err != nil {
		b.SaveErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ChunksRead:    b.ChunksRead.Load(),
		BytesRead:     b.BytesRead.Load(),
		ChunksWritten: b.ChunksWritten.Load(),
		BytesWritten:  b.BytesWritten.Load(),
		WriteErrors:   b.WriteErrors.Load(),
		LoadCount:     b.LoadCount.Load(),
		LoadErrors:    b.LoadErrors.Load(),
		SaveCount:     b.SaveCount.Load(),
		SaveErrors:    b.SaveErrors.Load(),
		SaveAvgNanos:  b.getAvgSaveNanos(),
	}
}

func (b *BasicMetricsCollector) getAvgSaveNanos() int64 {
	count := b.SaveCount.Load()
	if count == 0 {
		return 0
	}
	return b.SaveTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ChunksRead    int64
	BytesRead     int64
	ChunksWritten int64
	BytesWritten  int64
	WriteErrors   int64
	LoadCount     int64
	LoadErrors    int64
	SaveCount     int64
	SaveErrors    int64
	SaveAvgNanos  int64
}
