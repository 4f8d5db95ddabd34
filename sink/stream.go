package sink

import (
	"io"
	"os"
	"sync"

	"github.com/iqis/logthis/core"
	"github.com/iqis/logthis/formatter"
)

// Stream writes one formatted record per event to an io.Writer.
// Formatting happens outside the lock; the lock is held only for the
// single Write call, so interleaved records from concurrent callers
// stay whole.
type Stream struct {
	mu sync.Mutex
	f  formatter.Formatter
	w  io.Writer
}

// NewStream creates a stream sink. A nil writer defaults to stdout.
func NewStream(f formatter.Formatter, w io.Writer) (*Stream, error) {
	if f == nil {
		return nil, &core.ConfigError{Param: "formatter", Reason: "must not be nil"}
	}
	if w == nil {
		w = os.Stdout
	}
	return &Stream{f: f, w: w}, nil
}

// Receive formats and writes one event
func (s *Stream) Receive(evt core.Event) error {
	data, err := s.f.Format(evt)
	if err != nil {
		return err
	}
	s.mu.Lock()
	_, err = s.w.Write(data)
	s.mu.Unlock()
	return err
}
