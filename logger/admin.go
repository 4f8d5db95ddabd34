package logger

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/iqis/logthis/sink"
)

// ErrNoSuchSink is returned by selector lookups that match nothing
var ErrNoSuchSink = errors.New("no such sink")

// Sinks returns the display names of the registered sinks, in
// registration order: the label when set, sink-<index> otherwise.
func (l *Logger) Sinks() []string {
	names := make([]string, len(l.sinks))
	for i, b := range l.sinks {
		names[i] = displayLabel(b, i)
	}
	return names
}

// Sink returns the binding with the given label.
func (l *Logger) Sink(label string) (*sink.Bound, error) {
	for i, b := range l.sinks {
		if displayLabel(b, i) == label {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNoSuchSink, label)
}

// SinkAt returns the binding at the given registration index.
func (l *Logger) SinkAt(i int) (*sink.Bound, error) {
	if i < 0 || i >= len(l.sinks) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrNoSuchSink, i, len(l.sinks))
	}
	return l.sinks[i], nil
}

// Flush flushes the sink with the given label.
func (l *Logger) Flush(label string, force bool) error {
	b, err := l.Sink(label)
	if err != nil {
		return err
	}
	return b.Flush(force)
}

// FlushAll flushes every sink, in registration order, continuing past
// failures and returning them combined.
func (l *Logger) FlushAll(force bool) error {
	var errs error
	for i, b := range l.sinks {
		if err := b.Flush(force); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("sink %d (%s): %w", i, displayLabel(b, i), err))
		}
	}
	return errs
}

// BufferStatus reports the buffered record count per sink, keyed by
// display name. Sinks without buffer introspection report -1
// ("not applicable").
func (l *Logger) BufferStatus() map[string]int {
	status := make(map[string]int, len(l.sinks))
	for i, b := range l.sinks {
		n, ok := b.BufferSize()
		if !ok {
			n = -1
		}
		status[displayLabel(b, i)] = n
	}
	return status
}

// Close closes every sink once, in registration order, continuing past
// failures and returning them combined. Buffered and async sinks flush
// their remaining records as part of closing.
func (l *Logger) Close() error {
	var errs error
	for i, b := range l.sinks {
		if err := b.Close(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("sink %d (%s): %w", i, displayLabel(b, i), err))
		}
	}
	return errs
}
