package formatter

import (
	"bytes"
	"sync"

	"github.com/iqis/logthis/core"
)

// Formatter defines the interface for log formatters. Format returns
// one complete record; line-oriented formatters include the trailing
// newline.
type Formatter interface {
	// Format formats a log event into bytes
	Format(evt core.Event) ([]byte, error)
}

// RowFormatter is an optional interface for formatters that produce
// row-like records for columnar backends instead of byte lines.
type RowFormatter interface {
	// FormatRow formats a log event into one record row
	FormatRow(evt core.Event) ([]string, error)
}

// Config holds common formatter configuration
type Config struct {
	// TimestampFormat specifies the time format (empty for RFC3339)
	TimestampFormat string
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}
