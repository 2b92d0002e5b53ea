package chunk

import (
	"bufio"
	"context"
	"errors"
	"io"
	"iter"
	"strings"

	"github.com/hupe1980/datapack/model"
)

// Lines returns the trimmed text lines of every chunk in order.
//
// Lines are read through a Stream, so chunk boundaries act as line breaks:
// an empty chunk or a chunk ending in a newline yields an empty line. The
// content kind is checked before any line is yielded; for binary content the
// sequence yields ErrBinaryLines and nothing else.
func Lines(ctx context.Context, r *Reader) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if r.ContentKind() == model.Binary {
			yield("", ErrBinaryLines)
			return
		}

		s := NewStream(ctx, r)
		defer s.Close()

		br := bufio.NewReader(s)
		if _, err := br.Peek(1); err != nil {
			if !errors.Is(err, io.EOF) {
				yield("", err)
			}
			return
		}
		if r.ContentKind() == model.Binary {
			yield("", ErrBinaryLines)
			return
		}

		for line, err := range ReadLines(br) {
			if err != nil {
				yield("", err)
				return
			}
			if !yield(strings.TrimSpace(line), nil) {
				return
			}
		}
	}
}

// Chunks re-packs the content of r into chunks of at most maxSize bytes:
// line-aware for text and fixed windows for binary.
func Chunks(ctx context.Context, r *Reader, maxSize int) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		if maxSize <= 0 {
			yield(nil, ErrInvalidMaxSize)
			return
		}

		s := NewStream(ctx, r)
		defer s.Close()

		// Pull the first byte so the kind is resolved before choosing a path.
		br := bufio.NewReader(s)
		if _, err := br.Peek(1); err != nil {
			if !errors.Is(err, io.EOF) {
				yield(nil, err)
			}
			return
		}

		if r.ContentKind() == model.Binary {
			for b, err := range SplitBytes(br, maxSize) {
				if !yield(b, err) || err != nil {
					return
				}
			}
			return
		}

		for c, err := range SplitLines(ReadLines(br), maxSize) {
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield([]byte(c), nil) {
				return
			}
		}
	}
}

// ReadLines splits src at newlines without trimming. A trailing newline does
// not produce an empty final line.
func ReadLines(src io.Reader) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		br, ok := src.(*bufio.Reader)
		if !ok {
			br = bufio.NewReader(src)
		}
		for {
			line, err := br.ReadString('\n')
			if len(line) > 0 {
				line = strings.TrimSuffix(line, "\n")
				if !yield(line, nil) {
					return
				}
			}
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield("", err)
				return
			}
		}
	}
}
