package chunk

import (
	"errors"
	"fmt"
)

var (
	// ErrBinaryLines is returned when lines are requested from binary content.
	ErrBinaryLines = fmt.Errorf("chunk: cannot iterate lines of binary content: %w", errors.ErrUnsupported)

	// ErrInvalidMaxSize is returned for a non-positive chunk size budget.
	ErrInvalidMaxSize = errors.New("chunk: max size must be positive")
)

// Error records a failure on a specific chunk object.
//
// The original underlying error can be accessed via errors.Unwrap.
type Error struct {
	Op    string
	Index int
	Name  string
	Err   error
}

func (e *Error) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("chunk: %s %s: %v", e.Op, e.Name, e.Err)
	}
	return fmt.Sprintf("chunk %d: %s %s: %v", e.Index, e.Op, e.Name, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
