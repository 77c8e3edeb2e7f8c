// Package codec centralizes encoding of persisted result documents.
//
// Codec selection is a breaking-change boundary: snapshots store the codec
// name in their header and are decoded with the codec of that name.
package codec

// Codec turns a snapshot document into bytes and back.
//
// Name is written into every snapshot header, so it must stay stable for as
// long as snapshots written with the codec are kept. Implementations must be
// safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Default is the codec used for new snapshots.
var Default Codec = GoJSON{}

// builtin lists the codecs a snapshot header may name, Default first.
var builtin = []Codec{GoJSON{}, JSON{}}

// ByName returns the built-in codec a snapshot header names.
func ByName(name string) (Codec, bool) {
	for _, c := range builtin {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// Names returns the names accepted by ByName, Default first.
func Names() []string {
	names := make([]string, len(builtin))
	for i, c := range builtin {
		names[i] = c.Name()
	}
	return names
}
