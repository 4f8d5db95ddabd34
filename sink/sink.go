package sink

import (
	"io"

	"github.com/iqis/logthis/core"
)

// Sink is the uniform destination contract: it accepts exactly one
// event per call. Anything else a destination can do (flushing,
// buffer introspection, closing) is an optional capability.
type Sink interface {
	// Receive processes one log event
	Receive(evt core.Event) error
}

// SinkFunc adapts a plain function to the Sink interface
type SinkFunc func(core.Event) error

// Receive implements Sink
func (f SinkFunc) Receive(evt core.Event) error { return f(evt) }

// Flusher is an optional capability for sinks that hold unwritten
// records. Flush must be idempotent. force requests the write even
// for sinks that would otherwise defer it (e.g. an fsync).
type Flusher interface {
	Flush(force bool) error
}

// BufferSizer is an optional capability exposing the number of
// accumulated unwritten records.
type BufferSizer interface {
	BufferSize() int
}

// Flush flushes s if it exposes the capability; otherwise it is a no-op.
func Flush(s Sink, force bool) error {
	if f, ok := s.(Flusher); ok {
		return f.Flush(force)
	}
	return nil
}

// BufferSize returns the buffered record count of s, or ok=false when
// the sink is not buffered ("not applicable").
func BufferSize(s Sink) (int, bool) {
	if b, ok := s.(BufferSizer); ok {
		return b.BufferSize(), true
	}
	return 0, false
}

// Close closes s if it exposes io.Closer; otherwise it is a no-op.
func Close(s Sink) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
