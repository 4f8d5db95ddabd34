package sink

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iqis/logthis/core"
)

// captureSink records every received event, safe for concurrent use.
type captureSink struct {
	mu     sync.Mutex
	events []core.Event
}

func (c *captureSink) Receive(evt core.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, evt)
	return nil
}

func (c *captureSink) messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	msgs := make([]string, len(c.events))
	for i, evt := range c.events {
		msgs[i] = evt.Message
	}
	return msgs
}

func (c *captureSink) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

func TestAsync_BelowThresholdNoDispatch(t *testing.T) {
	capture := &captureSink{}
	a, err := NewAsync(capture, AsyncConfig{MaxQueueSize: 100, FlushThreshold: 3})
	require.NoError(t, err)
	defer func() { _ = a.Close() }()

	require.NoError(t, a.Receive(core.Info.Event("one")))
	require.NoError(t, a.Receive(core.Info.Event("two")))

	// No handoff happened, so nothing can have been delivered.
	assert.Equal(t, 0, capture.count())
	assert.Equal(t, 2, a.BufferSize())
}

func TestAsync_ThresholdDispatchesOneBatch(t *testing.T) {
	capture := &captureSink{}
	a, err := NewAsync(capture, AsyncConfig{MaxQueueSize: 100, FlushThreshold: 3})
	require.NoError(t, err)
	defer func() { _ = a.Close() }()

	for _, msg := range []string{"one", "two", "three"} {
		require.NoError(t, a.Receive(core.Info.Event(msg)))
	}

	require.Eventually(t, func() bool { return a.Stats().Batches == 1 },
		time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"one", "two", "three"}, capture.messages())
	assert.Equal(t, 0, a.BufferSize(), "queue is cleared on handoff")
}

func TestAsync_QueueFullFallsBackSynchronously(t *testing.T) {
	var diag bytes.Buffer
	core.SetDiagnosticOutput(&diag)
	defer core.SetDiagnosticOutput(nil)

	capture := &captureSink{}
	// FlushThreshold above MaxQueueSize so the queue can actually fill.
	a, err := NewAsync(capture, AsyncConfig{MaxQueueSize: 2, FlushThreshold: 10})
	require.NoError(t, err)
	defer func() { _ = a.Close() }()

	require.NoError(t, a.Receive(core.Info.Event("one")))
	require.NoError(t, a.Receive(core.Info.Event("two")))
	assert.Equal(t, 0, capture.count())

	// Third event finds the queue full: the backlog is flushed on the
	// caller's path before it is enqueued.
	require.NoError(t, a.Receive(core.Info.Event("three")))
	assert.Equal(t, []string{"one", "two"}, capture.messages())
	assert.Equal(t, 1, a.BufferSize())
	assert.Equal(t, uint64(1), a.Stats().Fallbacks)
	assert.Contains(t, diag.String(), "queue full")
}

func TestAsync_CloseDrainsQueue(t *testing.T) {
	capture := &captureSink{}
	a, err := NewAsync(capture, AsyncConfig{MaxQueueSize: 100, FlushThreshold: 10})
	require.NoError(t, err)

	require.NoError(t, a.Receive(core.Info.Event("one")))
	require.NoError(t, a.Receive(core.Info.Event("two")))

	require.NoError(t, a.Close())
	assert.Equal(t, []string{"one", "two"}, capture.messages())

	// Idempotent; events received after close are delivered synchronously.
	require.NoError(t, a.Close())
	require.NoError(t, a.Receive(core.Info.Event("late")))
	assert.Equal(t, 3, capture.count())
}

func TestAsync_FlushDrainsQueue(t *testing.T) {
	capture := &captureSink{}
	a, err := NewAsync(capture, AsyncConfig{MaxQueueSize: 100, FlushThreshold: 10})
	require.NoError(t, err)
	defer func() { _ = a.Close() }()

	require.NoError(t, a.Receive(core.Info.Event("one")))
	require.NoError(t, a.Flush(false))
	assert.Equal(t, 1, capture.count())
	assert.Equal(t, 0, a.BufferSize())
}

func TestAsync_ConcurrentProducers(t *testing.T) {
	capture := &captureSink{}
	a, err := NewAsync(capture, AsyncConfig{MaxQueueSize: 64, FlushThreshold: 8, Workers: 4})
	require.NoError(t, err)

	const producers = 8
	const perProducer = 100

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				_ = a.Receive(core.Info.Event("m"))
			}
		}()
	}
	wg.Wait()
	require.NoError(t, a.Close())

	assert.Equal(t, producers*perProducer, capture.count(), "no event may be lost")
}

func TestAsync_NilSinkRejected(t *testing.T) {
	_, err := NewAsync(nil, AsyncConfig{})
	assert.Error(t, err)
}
