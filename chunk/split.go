package chunk

import (
	"errors"
	"io"
	"iter"
	"strings"
)

// SplitLines packs lines into newline-joined chunks.
//
// A line is appended to the current chunk unless that would push the chunk
// beyond maxSize bytes, in which case the chunk is emitted first. A line longer
// than maxSize on its own becomes a single oversized chunk. Lines are never
// split.
func SplitLines(lines iter.Seq2[string, error], maxSize int) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if maxSize <= 0 {
			yield("", ErrInvalidMaxSize)
			return
		}

		var (
			buf  []string
			size int
		)

		flush := func() bool {
			c := strings.Join(buf, "\n")
			buf = buf[:0]
			size = 0
			return yield(c, nil)
		}

		for line, err := range lines {
			if err != nil {
				yield("", err)
				return
			}

			n := len(line)
			if len(buf) > 0 {
				n++ // separator
			}
			if len(buf) > 0 && size+n > maxSize {
				if !flush() {
					return
				}
				n = len(line)
			}
			buf = append(buf, line)
			size += n
		}

		if len(buf) > 0 {
			flush()
		}
	}
}

// SplitBytes cuts src into windows of exactly maxSize bytes. Only the final
// window may be shorter. Empty input yields nothing.
func SplitBytes(src io.Reader, maxSize int) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		if maxSize <= 0 {
			yield(nil, ErrInvalidMaxSize)
			return
		}

		for {
			buf := make([]byte, maxSize)
			n, err := io.ReadFull(src, buf)
			if n > 0 {
				if !yield(buf[:n], nil) {
					return
				}
			}
			switch {
			case err == nil:
				continue
			case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
				return
			default:
				yield(nil, err)
				return
			}
		}
	}
}
