package sink

import (
	"sync"

	"github.com/iqis/logthis/core"
	"github.com/iqis/logthis/formatter"
)

// Buffer accumulates formatted records and writes them in one bulk
// call once the flush threshold is reached. The accumulator never
// exceeds the threshold without the triggering append having flushed.
// All methods are safe for concurrent use; the accumulator has a
// single-writer discipline behind the mutex.
type Buffer[T any] struct {
	mu        sync.Mutex
	records   []T
	threshold int
	write     func(batch []T) error
}

// NewBuffer creates a buffer that hands batches to write. The
// threshold must be positive.
func NewBuffer[T any](threshold int, write func(batch []T) error) (*Buffer[T], error) {
	if threshold <= 0 {
		return nil, &core.ConfigError{Param: "flush threshold", Reason: "must be positive"}
	}
	if write == nil {
		return nil, &core.ConfigError{Param: "bulk writer", Reason: "must not be nil"}
	}
	return &Buffer[T]{threshold: threshold, write: write}, nil
}

// Append pushes one record. When the accumulator reaches the
// threshold, it is flushed synchronously before Append returns.
func (b *Buffer[T]) Append(rec T) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.records = append(b.records, rec)
	if len(b.records) >= b.threshold {
		return b.flushLocked()
	}
	return nil
}

// Flush performs one bulk write of the accumulated records; it is a
// no-op when the accumulator is empty. The force flag exists for
// contract uniformity with sinks that defer expensive writes; an
// explicit Flush here always writes.
func (b *Buffer[T]) Flush(force bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.flushLocked()
}

// flushLocked writes the batch. On failure the accumulator is kept so
// the next threshold crossing or explicit Flush acts as the retry;
// there is no automatic retry scheduler.
func (b *Buffer[T]) flushLocked() error {
	if len(b.records) == 0 {
		return nil
	}
	if err := b.write(b.records); err != nil {
		core.Diagf("bulk write failed, %d records retained: %v", len(b.records), err)
		return err
	}
	// A fresh slice, in case the writer kept a reference to the batch.
	b.records = nil
	return nil
}

// Len returns the number of accumulated unwritten records.
func (b *Buffer[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.records)
}

// Buffered composes a line formatter with a Buffer to form a batching
// sink: each event is formatted on Receive and written in bulk on
// threshold, manual flush, or close.
type Buffered struct {
	f   formatter.Formatter
	buf *Buffer[[]byte]
}

// NewBuffered creates a buffered sink handing [][]byte batches to write
func NewBuffered(f formatter.Formatter, threshold int, write func(batch [][]byte) error) (*Buffered, error) {
	if f == nil {
		return nil, &core.ConfigError{Param: "formatter", Reason: "must not be nil"}
	}
	buf, err := NewBuffer(threshold, write)
	if err != nil {
		return nil, err
	}
	return &Buffered{f: f, buf: buf}, nil
}

// Receive formats and buffers one event
func (s *Buffered) Receive(evt core.Event) error {
	data, err := s.f.Format(evt)
	if err != nil {
		return err
	}
	return s.buf.Append(data)
}

// Flush writes the accumulated batch
func (s *Buffered) Flush(force bool) error { return s.buf.Flush(force) }

// BufferSize returns the accumulated record count
func (s *Buffered) BufferSize() int { return s.buf.Len() }

// Close flushes whatever remains buffered
func (s *Buffered) Close() error { return s.buf.Flush(true) }

// Rows is the row-oriented counterpart of Buffered for columnar
// backends: events become []string rows via a RowFormatter and are
// written in bulk.
type Rows struct {
	f   formatter.RowFormatter
	buf *Buffer[[]string]
}

// NewRows creates a buffered row sink handing [][]string batches to write
func NewRows(f formatter.RowFormatter, threshold int, write func(batch [][]string) error) (*Rows, error) {
	if f == nil {
		return nil, &core.ConfigError{Param: "formatter", Reason: "must produce rows"}
	}
	buf, err := NewBuffer(threshold, write)
	if err != nil {
		return nil, err
	}
	return &Rows{f: f, buf: buf}, nil
}

// Receive formats and buffers one event
func (s *Rows) Receive(evt core.Event) error {
	row, err := s.f.FormatRow(evt)
	if err != nil {
		return err
	}
	return s.buf.Append(row)
}

// Flush writes the accumulated batch
func (s *Rows) Flush(force bool) error { return s.buf.Flush(force) }

// BufferSize returns the accumulated record count
func (s *Rows) BufferSize() int { return s.buf.Len() }

// Close flushes whatever remains buffered
func (s *Rows) Close() error { return s.buf.Flush(true) }
