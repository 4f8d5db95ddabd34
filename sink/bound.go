package sink

import (
	"fmt"

	"github.com/iqis/logthis/core"
)

// Bound pairs a sink with its dispatch-time configuration: a label for
// the administration surface, an optional level-range override, and a
// sink-local middleware chain. A Bound is immutable; the attach
// methods return copies.
type Bound struct {
	sink       Sink
	label      string
	hasLimits  bool
	lower      int
	upper      int
	middleware []core.Middleware
}

// BindOption configures a Bound at construction time
type BindOption func(*Bound)

// WithLabel names the sink for selector-based administration
func WithLabel(label string) BindOption {
	return func(b *Bound) { b.label = label }
}

// WithLimits overrides the logger's level range for this sink only.
// Both ends are inclusive.
func WithLimits(lower, upper int) BindOption {
	return func(b *Bound) {
		b.hasLimits = true
		b.lower = lower
		b.upper = upper
	}
}

// WithMiddleware appends to the sink-local middleware chain. A drop
// here affects only this sink.
func WithMiddleware(mws ...core.Middleware) BindOption {
	return func(b *Bound) { b.middleware = append(b.middleware, mws...) }
}

// Bind wraps a sink for registration with a logger. Invalid arguments
// fail here, at construction time, never at dispatch time.
func Bind(s Sink, opts ...BindOption) (*Bound, error) {
	if s == nil {
		return nil, &core.ConfigError{Param: "sink", Reason: "must not be nil"}
	}
	b := &Bound{sink: s}
	for _, opt := range opts {
		opt(b)
	}
	if b.hasLimits {
		if err := checkLimits(b.lower, b.upper); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func checkLimits(lower, upper int) error {
	if lower > upper {
		return &core.ConfigError{
			Param:  "level limits",
			Reason: fmt.Sprintf("lower bound %d exceeds upper bound %d", lower, upper),
		}
	}
	if lower < core.MinLevelNumber || upper > core.MaxLevelNumber {
		return &core.ConfigError{
			Param: "level limits",
			Reason: fmt.Sprintf("[%d,%d] is outside [%d,%d]",
				lower, upper, core.MinLevelNumber, core.MaxLevelNumber),
		}
	}
	return nil
}

// Label returns the sink's label; empty when unnamed.
func (b *Bound) Label() string { return b.label }

// Unwrap returns the wrapped sink.
func (b *Bound) Unwrap() Sink { return b.sink }

// WithLimits returns a copy of the binding with the level-range
// override replaced.
func (b *Bound) WithLimits(lower, upper int) (*Bound, error) {
	if err := checkLimits(lower, upper); err != nil {
		return nil, err
	}
	cp := *b
	cp.hasLimits = true
	cp.lower = lower
	cp.upper = upper
	return &cp, nil
}

// WithMiddleware returns a copy of the binding with middleware appended.
func (b *Bound) WithMiddleware(mws ...core.Middleware) *Bound {
	cp := *b
	merged := make([]core.Middleware, 0, len(b.middleware)+len(mws))
	merged = append(merged, b.middleware...)
	merged = append(merged, mws...)
	cp.middleware = merged
	return &cp
}

// InRange reports whether the level number passes this sink's override;
// without an override every level passes.
func (b *Bound) InRange(number int) bool {
	if !b.hasLimits {
		return true
	}
	return number >= b.lower && number <= b.upper
}

// Receive runs the sink-local pipeline: range override, middleware
// chain, then the wrapped sink. Out-of-range events and middleware
// drops are silent non-delivery, not errors.
func (b *Bound) Receive(evt core.Event) error {
	if !b.InRange(evt.LevelNumber) {
		return nil
	}
	evt, ok := core.ApplyMiddleware(evt, b.middleware)
	if !ok {
		return nil
	}
	return b.sink.Receive(evt)
}

// Flush forwards to the wrapped sink's flush capability, if any.
func (b *Bound) Flush(force bool) error { return Flush(b.sink, force) }

// BufferSize forwards the wrapped sink's buffer introspection;
// ok=false means not applicable.
func (b *Bound) BufferSize() (int, bool) { return BufferSize(b.sink) }

// Close closes the wrapped sink, if it supports closing.
func (b *Bound) Close() error { return Close(b.sink) }
