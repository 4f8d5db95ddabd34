// Package formatter defines how log events are serialized into records.
//
// It exposes two interfaces: Formatter, which returns one record as a
// []byte (line formatters include the trailing newline), and
// RowFormatter, which produces a row-like []string for columnar
// backends. Backends check for RowFormatter at construction time and
// fail fast when a row-oriented destination is paired with a formatter
// that cannot produce rows.
//
// The built-in formatters are TextFormatter and JSONFormatter for line
// output and CSVFormatter for rows. All of them use a pooled
// bytes.Buffer internally and rely on Go's Append-style functions
// (time.AppendFormat, strconv.AppendInt) to avoid per-call allocations.
//
// Buffers larger than 64 KiB are not returned to the pool to prevent
// a single large log line from permanently inflating memory usage.
package formatter
