package blobstore

import (
	"context"
	"io"

	"golang.org/x/time/rate"
)

// throttledReader limits read throughput to the byte rate of a limiter.
type throttledReader struct {
	ctx context.Context
	r   io.Reader
	l   *rate.Limiter
}

func newThrottledReader(ctx context.Context, r io.Reader, l *rate.Limiter) io.Reader {
	if l == nil {
		return r
	}
	return &throttledReader{ctx: ctx, r: r, l: l}
}

func (t *throttledReader) Read(p []byte) (int, error) {
	// WaitN fails for n above the burst, so never ask for more.
	if b := t.l.Burst(); b > 0 && len(p) > b {
		p = p[:b]
	}
	if err := t.l.WaitN(t.ctx, len(p)); err != nil {
		return 0, err
	}
	return t.r.Read(p)
}
