package blobstore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"
)

// HTTPOptions configures an HTTPStore.
type HTTPOptions struct {
	// Client issues the requests. Defaults to http.DefaultClient.
	Client *http.Client
	// Header is attached to every request (e.g. Authorization).
	Header http.Header
	// Limiter throttles requests when set.
	Limiter *rate.Limiter
	// Bandwidth, when set, limits response bodies to its rate in bytes per
	// second.
	Bandwidth *rate.Limiter
}

// HTTPStore is a read-only BlobStore over plain HTTP GET.
//
// Only a 200 response counts as an existing blob; every other status is
// reported as ErrNotFound.
type HTTPStore struct {
	base string
	opts HTTPOptions
}

// NewHTTPStore creates a store resolving names against base.
func NewHTTPStore(base string, optFns ...func(o *HTTPOptions)) *HTTPStore {
	opts := HTTPOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Client == nil {
		opts.Client = http.DefaultClient
	}
	return &HTTPStore{
		base: strings.TrimRight(base, "/"),
		opts: opts,
	}
}

// URL returns the address a name resolves to.
func (s *HTTPStore) URL(name string) string {
	segments := strings.Split(name, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return s.base + "/" + strings.Join(segments, "/")
}

// Open issues a streaming GET for name.
func (s *HTTPStore) Open(ctx context.Context, name string) (Blob, error) {
	if s.opts.Limiter != nil {
		if err := s.opts.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	u := s.URL(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	for k, vs := range s.opts.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := s.opts.Client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_ = drainAndClose(resp.Body)
		return nil, fmt.Errorf("GET %s: %s: %w", u, resp.Status, ErrNotFound)
	}
	return &httpBlob{
		r:    newThrottledReader(ctx, resp.Body, s.opts.Bandwidth),
		body: resp.Body,
	}, nil
}

// Create is not supported.
func (s *HTTPStore) Create(context.Context, string) (WritableBlob, error) {
	return nil, ErrReadOnly
}

// Put is not supported.
func (s *HTTPStore) Put(context.Context, string, []byte) error {
	return ErrReadOnly
}

// Delete is not supported.
func (s *HTTPStore) Delete(context.Context, string) error {
	return ErrReadOnly
}

// List is not supported; plain HTTP has no listing.
func (s *HTTPStore) List(context.Context, string) ([]string, error) {
	return nil, ErrReadOnly
}

// httpBlob drains the response on Close so the connection can be reused.
type httpBlob struct {
	r    io.Reader
	body io.ReadCloser
}

func (b *httpBlob) Read(p []byte) (int, error) {
	return b.r.Read(p)
}

func (b *httpBlob) Close() error {
	return drainAndClose(b.body)
}

func drainAndClose(body io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, body)
	return body.Close()
}
