// Package sniff classifies raw bytes as text or binary.
package sniff

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/hupe1980/datapack/model"
)

// SampleSize is the number of leading bytes inspected.
const SampleSize = 1024

// ErrAmbiguous is returned when the sample cannot decide the content kind.
var ErrAmbiguous = errors.New("content type is ambiguous")

// Detect classifies sample as Text when its MIME type, or any ancestor of it,
// is a text/ type, and as Binary otherwise. Only the first SampleSize bytes
// are inspected. An empty sample yields ErrAmbiguous.
func Detect(sample []byte) (model.ContentKind, error) {
	if len(sample) == 0 {
		return model.Unknown, ErrAmbiguous
	}
	if len(sample) > SampleSize {
		sample = sample[:SampleSize]
	}

	for m := mimetype.Detect(sample); m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "text/") {
			return model.Text, nil
		}
	}
	return model.Binary, nil
}

// DetectReader classifies the next bytes of r without consuming them.
func DetectReader(r *bufio.Reader) (model.ContentKind, error) {
	sample, err := r.Peek(SampleSize)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return model.Unknown, err
	}
	return Detect(sample)
}
