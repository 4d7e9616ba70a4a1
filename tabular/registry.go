package tabular

import (
	"io"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/kbukum/resultkit/util"
)

// Options tune a codec. The zero value selects each format's defaults.
type Options struct {
	// Delimiter overrides the field separator of delimited formats.
	Delimiter rune
	// Header controls whether delimited formats carry a header row
	// (default true).
	Header *bool
	// Indent sets the indentation width of text formats that support it.
	Indent int
}

func (o Options) header() bool { return o.Header == nil || *o.Header }

// ReadFunc decodes a Frame from r.
type ReadFunc func(r io.Reader, opts Options) (*Frame, error)

// WriteFunc encodes f to w.
type WriteFunc func(w io.Writer, f *Frame, opts Options) error

// Registry maps lowercase format names to codec pairs. It is read-only
// after construction and safe for concurrent use.
type Registry struct {
	readers map[string]ReadFunc
	writers map[string]WriteFunc
}

// BuildRegistry pairs readers with writers. A format is kept only when both
// tables provide it, so the readable and writable sets are always equal.
func BuildRegistry(readers map[string]ReadFunc, writers map[string]WriteFunc) *Registry {
	reg := &Registry{
		readers: make(map[string]ReadFunc),
		writers: make(map[string]WriteFunc),
	}
	lowered := make(map[string]WriteFunc, len(writers))
	for name, w := range writers {
		if w != nil {
			lowered[strings.ToLower(name)] = w
		}
	}
	for name, r := range readers {
		key := strings.ToLower(name)
		w, ok := lowered[key]
		if !ok || r == nil {
			continue
		}
		reg.readers[key] = r
		reg.writers[key] = w
	}
	return reg
}

// Reader returns the decoder registered for format.
func (r *Registry) Reader(format string) (ReadFunc, bool) {
	fn, ok := r.readers[strings.ToLower(format)]
	return fn, ok
}

// Writer returns the encoder registered for format.
func (r *Registry) Writer(format string) (WriteFunc, bool) {
	fn, ok := r.writers[strings.ToLower(format)]
	return fn, ok
}

// Supports reports whether format can be both read and written.
func (r *Registry) Supports(format string) bool {
	_, ok := r.readers[strings.ToLower(format)]
	return ok
}

// Formats returns the sorted list of supported formats.
func (r *Registry) Formats() []string { return sortedKeys(r.readers) }

// ReadFormats returns the sorted list of readable formats.
func (r *Registry) ReadFormats() []string { return sortedKeys(r.readers) }

// WriteFormats returns the sorted list of writable formats.
func (r *Registry) WriteFormats() []string { return sortedKeys(r.writers) }

func sortedKeys[V any](m map[string]V) []string {
	keys := util.Keys(m)
	sort.Strings(keys)
	return keys
}

// BuiltinReaders returns a fresh copy of the built-in decoder table.
func BuiltinReaders() map[string]ReadFunc {
	return map[string]ReadFunc{
		"csv":  readCSV,
		"tsv":  readTSV,
		"json": readJSON,
		"yaml": readYAML,
		"toml": readTOML,
		"cbor": readCBOR,
	}
}

// BuiltinWriters returns a fresh copy of the built-in encoder table.
func BuiltinWriters() map[string]WriteFunc {
	return map[string]WriteFunc{
		"csv":  writeCSV,
		"tsv":  writeTSV,
		"json": writeJSON,
		"yaml": writeYAML,
		"toml": writeTOML,
		"cbor": writeCBOR,
	}
}

var defaultRegistry atomic.Pointer[Registry]

// DefaultRegistry returns the registry of built-in formats. It is built on
// first use; concurrent first calls may build it more than once but all
// callers observe the same instance.
func DefaultRegistry() *Registry {
	if reg := defaultRegistry.Load(); reg != nil {
		return reg
	}
	defaultRegistry.CompareAndSwap(nil, BuildRegistry(BuiltinReaders(), BuiltinWriters()))
	return defaultRegistry.Load()
}
