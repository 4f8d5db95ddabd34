package logger

import (
	"fmt"

	"github.com/iqis/logthis/core"
	"github.com/iqis/logthis/sink"
)

// Logger routes events through its middleware chain, level range, and
// tag stamping, then fans out to sinks in registration order. A Logger
// is immutable: every With* operation returns a new value, so sharing
// one across goroutines needs no locking.
type Logger struct {
	lower      int
	upper      int
	sinks      []*sink.Bound
	middleware []core.Middleware
	tags       []string
}

// New creates a logger with the full [0,120] range and no sinks.
// Events dispatched to it go nowhere until sinks are attached.
func New() *Logger {
	return &Logger{lower: core.MinLevelNumber, upper: core.MaxLevelNumber}
}

// WithSinks returns a new logger with bindings appended in order.
// Registration order determines both invocation order and diagnostic
// indexing, and is fixed afterwards.
func (l *Logger) WithSinks(bounds ...*sink.Bound) (*Logger, error) {
	for _, b := range bounds {
		if b == nil {
			return nil, &core.ConfigError{Param: "sink", Reason: "nil sink binding"}
		}
	}
	cp := *l
	cp.sinks = appendCopy(l.sinks, bounds)
	return &cp, nil
}

// ReplaceSinks returns a new logger whose sink list is exactly bounds.
func (l *Logger) ReplaceSinks(bounds ...*sink.Bound) (*Logger, error) {
	base := *l
	base.sinks = nil
	return base.WithSinks(bounds...)
}

// WithLimits returns a new logger with the inclusive level range
// replaced. Events outside [lower,upper] reach no sink.
func (l *Logger) WithLimits(lower, upper int) (*Logger, error) {
	if lower > upper {
		return nil, &core.ConfigError{
			Param:  "level limits",
			Reason: fmt.Sprintf("lower bound %d exceeds upper bound %d", lower, upper),
		}
	}
	if lower < core.MinLevelNumber || upper > core.MaxLevelNumber {
		return nil, &core.ConfigError{
			Param: "level limits",
			Reason: fmt.Sprintf("[%d,%d] is outside [%d,%d]",
				lower, upper, core.MinLevelNumber, core.MaxLevelNumber),
		}
	}
	cp := *l
	cp.lower = lower
	cp.upper = upper
	return &cp, nil
}

// WithTags returns a new logger with static tags appended. The logger
// stamps them onto every in-range event, after any tags the event
// already carries.
func (l *Logger) WithTags(tags ...string) *Logger {
	cp := *l
	cp.tags = appendCopy(l.tags, tags)
	return &cp
}

// ReplaceTags returns a new logger whose static tags are exactly tags.
func (l *Logger) ReplaceTags(tags ...string) *Logger {
	cp := *l
	cp.tags = appendCopy(nil, tags)
	return &cp
}

// WithMiddleware returns a new logger with middleware appended to the
// logger-level chain.
func (l *Logger) WithMiddleware(mws ...core.Middleware) *Logger {
	cp := *l
	cp.middleware = appendCopy(l.middleware, mws)
	return &cp
}

// ReplaceMiddleware returns a new logger whose middleware chain is
// exactly mws.
func (l *Logger) ReplaceMiddleware(mws ...core.Middleware) *Logger {
	cp := *l
	cp.middleware = appendCopy(nil, mws)
	return &cp
}

// Limits returns the logger's inclusive level range.
func (l *Logger) Limits() (lower, upper int) { return l.lower, l.upper }

// Log dispatches one event:
//
//  1. Logger middleware runs in order; a drop returns (zero, false)
//     and nothing else happens.
//  2. Events outside the level range reach no sink, but the
//     (middleware-transformed) event is still returned with ok=true.
//     Range filtering is invisible to the caller, so chained loggers
//     with wider ranges still see the event.
//  3. Static tags are appended after any existing tags.
//  4. Sinks run in registration order; each failure is isolated and
//     reported, never visible to later sinks or the caller.
//
// The returned event enables chaining: evt, ok := l1.Log(evt); l2.Log(evt).
func (l *Logger) Log(evt core.Event) (core.Event, bool) {
	evt, ok := core.ApplyMiddleware(evt, l.middleware)
	if !ok {
		return core.Event{}, false
	}
	if evt.LevelNumber < l.lower || evt.LevelNumber > l.upper {
		return evt, true
	}
	evt = evt.WithTags(l.tags...)
	for i, b := range l.sinks {
		l.dispatch(i, b, evt)
	}
	return evt, true
}

// dispatch invokes one sink, containing errors and panics so one
// sink's failure never blocks the rest of the fan-out.
func (l *Logger) dispatch(idx int, b *sink.Bound, evt core.Event) {
	defer func() {
		if r := recover(); r != nil {
			core.Diagf("sink %d (%s) panicked: %v", idx, displayLabel(b, idx), r)
		}
	}()
	if err := b.Receive(evt); err != nil {
		core.Diagf("sink %d (%s) failed: %v", idx, displayLabel(b, idx), err)
	}
}

// displayLabel names a sink for diagnostics and status maps: its label
// when set, otherwise a positional name.
func displayLabel(b *sink.Bound, idx int) string {
	if b.Label() != "" {
		return b.Label()
	}
	return fmt.Sprintf("sink-%d", idx)
}

// Convenience constructors-and-dispatchers for the built-in levels.

// Trace logs a message at the TRACE level
func (l *Logger) Trace(msg string, fields ...core.Field) {
	l.Log(core.Trace.Event(msg, fields...))
}

// Debug logs a message at the DEBUG level
func (l *Logger) Debug(msg string, fields ...core.Field) {
	l.Log(core.Debug.Event(msg, fields...))
}

// Info logs a message at the INFO level
func (l *Logger) Info(msg string, fields ...core.Field) {
	l.Log(core.Info.Event(msg, fields...))
}

// Success logs a message at the SUCCESS level
func (l *Logger) Success(msg string, fields ...core.Field) {
	l.Log(core.Success.Event(msg, fields...))
}

// Warning logs a message at the WARNING level
func (l *Logger) Warning(msg string, fields ...core.Field) {
	l.Log(core.Warning.Event(msg, fields...))
}

// Error logs a message at the ERROR level
func (l *Logger) Error(msg string, fields ...core.Field) {
	l.Log(core.Error.Event(msg, fields...))
}

// Critical logs a message at the CRITICAL level
func (l *Logger) Critical(msg string, fields ...core.Field) {
	l.Log(core.Critical.Event(msg, fields...))
}

// Fatal logs a message at the FATAL level. Unlike some frameworks it
// does not terminate the process; FATAL is only a severity here.
func (l *Logger) Fatal(msg string, fields ...core.Field) {
	l.Log(core.Fatal.Event(msg, fields...))
}

// Debugf logs a formatted message at the DEBUG level
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Log(core.Debug.Event(fmt.Sprintf(format, args...)))
}

// Infof logs a formatted message at the INFO level
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Log(core.Info.Event(fmt.Sprintf(format, args...)))
}

// Warningf logs a formatted message at the WARNING level
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Log(core.Warning.Event(fmt.Sprintf(format, args...)))
}

// Errorf logs a formatted message at the ERROR level
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Log(core.Error.Event(fmt.Sprintf(format, args...)))
}

// appendCopy joins two slices into a fresh backing array, so the
// result never aliases either input.
func appendCopy[T any](a, b []T) []T {
	if len(a)+len(b) == 0 {
		return nil
	}
	merged := make([]T, 0, len(a)+len(b))
	merged = append(merged, a...)
	merged = append(merged, b...)
	return merged
}
