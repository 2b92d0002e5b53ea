// Package codec centralizes the encoding of persisted metadata.
//
// The manifest sidecar is JSON on disk; the codec only decides which JSON
// implementation produces and parses those bytes, so switching codecs never
// changes the wire format.
package codec

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}
