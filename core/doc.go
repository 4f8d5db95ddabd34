// Package core defines the shared types used across the logthis framework.
//
// It provides the Level type for the [0,120] ordinal severity scale,
// the Event type that represents a single log record, and the Field
// type for structured key-value pairs.
//
// Levels come in two flavors: the built-in closed set (Trace through
// Fatal) and user-defined levels created with Define. Only user-defined
// levels accept default tags. Invoking a level produces an Event value;
// events are never mutated in place, every transform returns a new
// value so concurrent consumers never observe aliased changes.
//
// Field encodes values into fixed-size numeric fields (Int64, Float64)
// wherever possible. The permitted value union is scalars, strings,
// ordered lists, and nested ordered maps; function and handle values
// are rejected at construction.
//
// The package also owns the diagnostic surface: Diagf is the
// guaranteed-available warning channel used for rounding notices,
// isolated sink failures, and backpressure events, falling back to
// stderr if a configured writer is itself broken.
package core
