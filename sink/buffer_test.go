package sink

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iqis/logthis/core"
	"github.com/iqis/logthis/formatter"
)

func TestBuffer_ThresholdFlush(t *testing.T) {
	var flushes [][]string
	buf, err := NewBuffer(3, func(batch []string) error {
		cp := make([]string, len(batch))
		copy(cp, batch)
		flushes = append(flushes, cp)
		return nil
	})
	require.NoError(t, err)

	// threshold-1 appends: no flush yet
	require.NoError(t, buf.Append("a"))
	require.NoError(t, buf.Append("b"))
	assert.Empty(t, flushes)
	assert.Equal(t, 2, buf.Len())

	// The triggering append flushes synchronously and empties the buffer.
	require.NoError(t, buf.Append("c"))
	require.Len(t, flushes, 1)
	assert.Equal(t, []string{"a", "b", "c"}, flushes[0])
	assert.Equal(t, 0, buf.Len())
}

func TestBuffer_SevenAppendsThresholdThree(t *testing.T) {
	var flushed int
	buf, err := NewBuffer(3, func(batch []string) error {
		flushed++
		assert.Len(t, batch, 3)
		return nil
	})
	require.NoError(t, err)

	for _, rec := range []string{"1", "2", "3", "4", "5", "6", "7"} {
		require.NoError(t, buf.Append(rec))
	}
	// Exactly two automatic flushes (after record 3 and 6), one record left.
	assert.Equal(t, 2, flushed)
	assert.Equal(t, 1, buf.Len())

	require.NoError(t, buf.Flush(false))
	assert.Equal(t, 0, buf.Len())
}

func TestBuffer_FlushEmptyIsNoop(t *testing.T) {
	calls := 0
	buf, err := NewBuffer(3, func(batch []string) error {
		calls++
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, buf.Flush(false))
	require.NoError(t, buf.Flush(true))
	assert.Zero(t, calls)
}

func TestBuffer_FailedFlushPreservesRecords(t *testing.T) {
	var diag bytes.Buffer
	core.SetDiagnosticOutput(&diag)
	defer core.SetDiagnosticOutput(nil)

	fail := true
	var wrote []string
	buf, err := NewBuffer(2, func(batch []string) error {
		if fail {
			return errors.New("disk full")
		}
		wrote = append(wrote, batch...)
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, buf.Append("a"))
	err = buf.Append("b") // triggers the failing flush
	require.Error(t, err)
	assert.Equal(t, 2, buf.Len(), "failed flush must preserve the accumulator")
	assert.Contains(t, diag.String(), "retained")

	// No automatic retry; the explicit flush is the retry trigger.
	fail = false
	require.NoError(t, buf.Flush(false))
	assert.Equal(t, []string{"a", "b"}, wrote)
	assert.Equal(t, 0, buf.Len())
}

func TestBuffer_InvalidConstruction(t *testing.T) {
	_, err := NewBuffer[string](0, func([]string) error { return nil })
	assert.Error(t, err)
	_, err = NewBuffer[string](3, nil)
	assert.Error(t, err)
}

func TestBuffered_Sink(t *testing.T) {
	var batches [][][]byte
	s, err := NewBuffered(formatter.NewTextFormatter(formatter.Config{}), 2, func(batch [][]byte) error {
		batches = append(batches, batch)
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, s.Receive(core.Info.Event("one")))
	assert.Equal(t, 1, s.BufferSize())
	require.NoError(t, s.Receive(core.Info.Event("two")))
	require.Len(t, batches, 1)
	assert.Equal(t, 0, s.BufferSize())

	require.NoError(t, s.Receive(core.Info.Event("three")))
	require.NoError(t, s.Close())
	require.Len(t, batches, 2)
	assert.Contains(t, string(batches[1][0]), "three")
}

func TestRows_Sink(t *testing.T) {
	var rows [][]string
	s, err := NewRows(formatter.NewCSVFormatter(formatter.Config{}), 2, func(batch [][]string) error {
		rows = append(rows, batch...)
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, s.Receive(core.Info.Event("one")))
	require.NoError(t, s.Receive(core.Info.Event("two")))
	require.Len(t, rows, 2)
	assert.Equal(t, "one", rows[0][3])
	assert.Equal(t, "two", rows[1][3])
}
