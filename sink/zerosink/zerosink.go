// Package zerosink forwards events into a zerolog.Logger, so a logthis
// pipeline can deliver to any destination zerolog already supports.
package zerosink

import (
	"github.com/rs/zerolog"

	"github.com/iqis/logthis/core"
	"github.com/iqis/logthis/sink"
)

// zeroSink is a thin wrapper around a zerolog logger which implements
// the sink.Sink interface.
type zeroSink struct {
	zl zerolog.Logger
}

// New wraps a zerolog logger as a sink. The event's own timestamp is
// carried in the "time" field; zerolog's timestamp hook, if enabled,
// reflects delivery time instead.
func New(zl zerolog.Logger) sink.Sink {
	return &zeroSink{zl: zl}
}

// Receive maps one event onto a zerolog event and sends it.
func (s *zeroSink) Receive(evt core.Event) error {
	ze := s.zl.WithLevel(mapLevel(evt.LevelNumber))
	ze = ze.Time("time", evt.Time)
	ze = ze.Str("level_name", evt.LevelName).Int("level_number", evt.LevelNumber)
	if len(evt.Tags) > 0 {
		ze = ze.Strs("tags", evt.Tags)
	}
	for _, f := range evt.Fields {
		ze = ze.Interface(f.Key, f.Value())
	}
	ze.Msg(evt.Message)
	return nil
}

// mapLevel projects the [0,120] ordinal scale onto zerolog's levels.
func mapLevel(number int) zerolog.Level {
	switch {
	case number >= core.Fatal.Number():
		return zerolog.FatalLevel
	case number >= core.Error.Number():
		return zerolog.ErrorLevel
	case number >= core.Warning.Number():
		return zerolog.WarnLevel
	case number >= core.Info.Number():
		return zerolog.InfoLevel
	case number >= core.Debug.Number():
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}
