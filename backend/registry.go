package backend

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/iqis/logthis/formatter"
	"github.com/iqis/logthis/sink"
)

var (
	// ErrUnknownKind is returned when no builder is registered for a kind
	ErrUnknownKind = errors.New("unknown backend kind")
	// ErrDuplicateKind is returned when a kind is registered twice
	ErrDuplicateKind = errors.New("backend kind already registered")
)

// Config describes a backend destination. Which parameters a kind
// requires is up to its builder; builders validate at construction
// time and never defer failures to dispatch.
type Config struct {
	// Kind selects the registered builder
	Kind string
	// Path is the destination file for file-oriented kinds
	Path string
	// Writer is the destination stream for writer-oriented kinds
	Writer io.Writer
	// FlushThreshold is the record count triggering a bulk write for
	// buffered kinds
	FlushThreshold int
	// MaxSize is the rotation threshold in bytes for the file kind
	MaxSize int64
	// MaxFiles is the rotated-file cap for the file kind
	MaxFiles int
}

// Builder constructs a sink from a formatter and a backend config
type Builder func(f formatter.Formatter, cfg Config) (sink.Sink, error)

// Registry maps backend kinds to builders. New kinds register without
// touching the composition logic that consumes them.
type Registry struct {
	mu       sync.RWMutex
	builders map[string]Builder
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]Builder)}
}

// Register adds a builder for a kind. Each kind registers exactly once.
func (r *Registry) Register(kind string, b Builder) error {
	if kind == "" {
		return fmt.Errorf("backend kind must not be empty")
	}
	if b == nil {
		return fmt.Errorf("backend kind %q: builder must not be nil", kind)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.builders[kind]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateKind, kind)
	}
	r.builders[kind] = b
	return nil
}

// Kinds returns the registered kinds, sorted.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.builders))
	for kind := range r.builders {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// New builds a sink for cfg.Kind. An unknown kind fails fast, listing
// the known kinds.
func (r *Registry) New(f formatter.Formatter, cfg Config) (sink.Sink, error) {
	r.mu.RLock()
	b, ok := r.builders[cfg.Kind]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (known kinds: %s)",
			ErrUnknownKind, cfg.Kind, strings.Join(r.Kinds(), ", "))
	}
	return b(f, cfg)
}

// defaultRegistry is the process-wide registry, pre-loaded with the
// built-in kinds.
var defaultRegistry = func() *Registry {
	r := NewRegistry()
	RegisterBuiltins(r)
	return r
}()

// Default returns the process-wide registry
func Default() *Registry { return defaultRegistry }

// Register adds a builder to the process-wide registry
func Register(kind string, b Builder) error {
	return defaultRegistry.Register(kind, b)
}

// New builds a sink via the process-wide registry
func New(f formatter.Formatter, cfg Config) (sink.Sink, error) {
	return defaultRegistry.New(f, cfg)
}
