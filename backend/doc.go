// Package backend maps destination kinds to sink builders.
//
// A kind is a string ("file", "stream", "csv", ...) registered against
// a Builder that composes a formatter with destination parameters into
// a Sink. Composition logic never switches on kinds directly, so new
// destinations plug in by registering once at startup.
//
// Unknown kinds and invalid parameters fail at construction time, with
// the error listing the registered kinds. Nothing fails at dispatch time.
//
// The process-wide Default registry carries the built-in kinds,
// including the "zerolog" and "zap" adapter backends that hand events
// to those libraries' own pipelines.
package backend
