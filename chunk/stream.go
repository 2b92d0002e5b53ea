package chunk

import (
	"context"
	"errors"
	"io"
	"iter"

	"github.com/hupe1980/datapack/model"
)

// Stream reads the chunks of a Reader back to back as one byte stream.
//
// For text content a newline is inserted between chunks, undoing the split
// made by the writer. Close must be called to release the current chunk when
// the stream is abandoned before EOF.
type Stream struct {
	reader *Reader
	next   func() (*Resource, error, bool)
	stop   func()
	cur    *Resource
	count  int
	sep    []byte
	err    error
}

// NewStream creates a Stream over r.
func NewStream(ctx context.Context, r *Reader) *Stream {
	next, stop := iter.Pull2(r.Resources(ctx))
	return &Stream{reader: r, next: next, stop: stop}
}

func (s *Stream) Read(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	for {
		if len(s.sep) > 0 {
			n := copy(p, s.sep)
			s.sep = s.sep[n:]
			return n, nil
		}
		if s.cur == nil {
			res, err, ok := s.next()
			if !ok {
				s.err = io.EOF
				return 0, io.EOF
			}
			if err != nil {
				s.err = err
				return 0, err
			}
			if s.count > 0 && s.reader.ContentKind() == model.Text {
				s.sep = []byte{'\n'}
			}
			s.cur = res
			s.count++
			continue
		}

		n, err := s.cur.Read(p)
		if errors.Is(err, io.EOF) {
			s.cur = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

// Close releases the chunk currently being read.
func (s *Stream) Close() error {
	s.stop()
	if s.err == nil {
		s.err = io.ErrClosedPipe
	}
	return nil
}
