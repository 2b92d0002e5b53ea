package model

import "fmt"

// ContentKind classifies the bytes of a dataset.
//
// The zero value is Unknown: the kind has not been supplied, read from a
// manifest, or sniffed yet. Unknown is never persisted.
type ContentKind uint8

const (
	Unknown ContentKind = iota
	Text
	Binary
)

// String returns a human-readable name.
func (k ContentKind) String() string {
	switch k {
	case Text:
		return "text"
	case Binary:
		return "binary"
	default:
		return "unknown"
	}
}

// Known reports whether the kind has been resolved.
func (k ContentKind) Known() bool { return k == Text || k == Binary }

// IsBinary reports whether the kind is Binary.
func (k ContentKind) IsBinary() bool { return k == Binary }

// KindOf maps the manifest's is_binary flag to a ContentKind.
func KindOf(isBinary bool) ContentKind {
	if isBinary {
		return Binary
	}
	return Text
}

// SourceKind classifies where a dataset lives.
type SourceKind uint8

const (
	Local SourceKind = iota
	Remote
)

// String returns a human-readable name.
func (s SourceKind) String() string {
	switch s {
	case Local:
		return "local"
	case Remote:
		return "remote"
	default:
		return fmt.Sprintf("SourceKind(%d)", uint8(s))
	}
}
