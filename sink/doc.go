// Package sink provides the Sink contract and its built-in
// implementations for delivering log events to destinations.
//
// A Sink accepts exactly one event per Receive call. Flushing and
// buffer introspection are optional capabilities (Flusher,
// BufferSizer) discovered via type assertion; the package-level Flush,
// BufferSize, and Close helpers degrade gracefully when a sink lacks
// them.
//
// Bind attaches dispatch-time configuration to a sink (a label, a
// level-range override, and a sink-local middleware chain), producing
// the Bound values a logger fans out to.
//
// Built-in sinks:
//
//   - Stream writes formatted lines to any io.Writer (default: stdout).
//   - File appends lines to a file with size-based rotation, keeping
//     rotated files as path.1 (newest) through path.N (oldest).
//   - Buffered and Rows batch formatted records and write them in bulk
//     once a flush threshold is reached. A failed bulk write retains
//     the batch; the next threshold crossing or an explicit Flush is
//     the retry.
//   - Async wraps any sink with a bounded queue and worker pool. A
//     full queue falls back to a synchronous flush on the caller's
//     path with a diagnostic warning instead of blocking.
//
// Buffer accumulators and async queues are each owned by exactly one
// sink instance and serialize mutation behind a mutex, so all built-in
// sinks are safe for concurrent callers.
package sink
