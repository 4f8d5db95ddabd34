package sink

import (
	"sync"
	"sync/atomic"

	"github.com/iqis/logthis/core"
)

// AsyncConfig holds configuration for the async dispatch engine
type AsyncConfig struct {
	// MaxQueueSize bounds the local queue (default 1024). Reaching it
	// triggers the synchronous backpressure fallback.
	MaxQueueSize int
	// FlushThreshold is the queue length at which a batch is handed to
	// the worker pool (default 64)
	FlushThreshold int
	// Workers is the worker-pool size (default 1). A pool shared with
	// a slow wrapped sink can starve batches unless sized accordingly.
	Workers int
}

// Stats tracks async engine counters
type Stats struct {
	processed uint64
	batches   uint64
	fallbacks uint64
}

// StatsSnapshot is a point-in-time copy of the counters
type StatsSnapshot struct {
	// Processed counts events delivered to the wrapped sink
	Processed uint64
	// Batches counts batches handed to workers or delivered inline
	Batches uint64
	// Fallbacks counts synchronous deliveries on the caller's path
	Fallbacks uint64
}

// Async wraps a sink with a bounded queue and a worker pool. Events
// accumulate locally; once FlushThreshold is reached the batch is
// handed off and the queue cleared. When the queue is full the current
// contents are flushed synchronously on the caller's path instead of
// blocking, bounding memory at the cost of a latency spike.
type Async struct {
	cfg     AsyncConfig
	sink    Sink
	mu      sync.Mutex
	queue   []core.Event
	closed  bool
	batches chan []core.Event
	wg      sync.WaitGroup
	stats   Stats
}

// NewAsync wraps s with asynchronous dispatch
func NewAsync(s Sink, cfg AsyncConfig) (*Async, error) {
	if s == nil {
		return nil, &core.ConfigError{Param: "sink", Reason: "must not be nil"}
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 1024
	}
	if cfg.FlushThreshold <= 0 {
		cfg.FlushThreshold = 64
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	a := &Async{
		cfg:     cfg,
		sink:    s,
		batches: make(chan []core.Event, cfg.Workers),
	}
	for i := 0; i < cfg.Workers; i++ {
		a.wg.Add(1)
		go a.worker()
	}
	return a, nil
}

func (a *Async) worker() {
	defer a.wg.Done()
	for batch := range a.batches {
		a.deliver(batch)
	}
}

// deliver feeds a batch to the wrapped sink one event at a time.
// Per-event failures are reported and do not stop the batch.
func (a *Async) deliver(batch []core.Event) {
	for _, evt := range batch {
		if err := a.sink.Receive(evt); err != nil {
			core.Diagf("async delivery failed: %v", err)
			continue
		}
		atomic.AddUint64(&a.stats.processed, 1)
	}
	atomic.AddUint64(&a.stats.batches, 1)
}

// Receive enqueues one event. The caller never blocks indefinitely:
// a full queue and a saturated worker pool both degrade to an inline
// synchronous delivery with a diagnostic warning.
func (a *Async) Receive(evt core.Event) error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return a.sink.Receive(evt)
	}

	if len(a.queue) >= a.cfg.MaxQueueSize {
		batch := a.queue
		a.queue = nil
		a.mu.Unlock()
		atomic.AddUint64(&a.stats.fallbacks, 1)
		core.Diagf("async queue full (%d events): flushing on caller", len(batch))
		a.deliver(batch)
		a.mu.Lock()
		if a.closed {
			a.mu.Unlock()
			return a.sink.Receive(evt)
		}
	}

	a.queue = append(a.queue, evt)
	if len(a.queue) >= a.cfg.FlushThreshold {
		batch := a.queue
		a.queue = nil
		select {
		case a.batches <- batch:
			a.mu.Unlock()
		default:
			// Workers saturated; deliver inline rather than block.
			a.mu.Unlock()
			atomic.AddUint64(&a.stats.fallbacks, 1)
			core.Diagf("async workers saturated: delivering %d events on caller", len(batch))
			a.deliver(batch)
		}
		return nil
	}
	a.mu.Unlock()
	return nil
}

// BufferSize returns the current queue depth
func (a *Async) BufferSize() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.queue)
}

// Flush drains the current queue synchronously and forwards the flush
// to the wrapped sink.
func (a *Async) Flush(force bool) error {
	a.mu.Lock()
	batch := a.queue
	a.queue = nil
	a.mu.Unlock()
	if len(batch) > 0 {
		a.deliver(batch)
	}
	return Flush(a.sink, force)
}

// Close flushes the remaining queue at least once, stops the workers,
// and closes the wrapped sink. It is idempotent; events received
// afterwards are delivered synchronously.
func (a *Async) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	batch := a.queue
	a.queue = nil
	a.mu.Unlock()

	if len(batch) > 0 {
		a.deliver(batch)
	}
	close(a.batches)
	a.wg.Wait()

	if err := Flush(a.sink, true); err != nil {
		return err
	}
	return Close(a.sink)
}

// Stats returns a snapshot of the engine's counters
func (a *Async) Stats() StatsSnapshot {
	return StatsSnapshot{
		Processed: atomic.LoadUint64(&a.stats.processed),
		Batches:   atomic.LoadUint64(&a.stats.batches),
		Fallbacks: atomic.LoadUint64(&a.stats.fallbacks),
	}
}
