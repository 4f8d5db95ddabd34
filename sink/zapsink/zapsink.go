// Package zapsink forwards events into a *zap.Logger, so a logthis
// pipeline can deliver through zap cores and encoders.
package zapsink

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/iqis/logthis/core"
	"github.com/iqis/logthis/sink"
)

type zapSink struct {
	zl *zap.Logger
}

// New wraps a zap logger as a sink
func New(zl *zap.Logger) (sink.Sink, error) {
	if zl == nil {
		return nil, &core.ConfigError{Param: "zap logger", Reason: "must not be nil"}
	}
	return &zapSink{zl: zl}, nil
}

// Receive maps one event onto a zap entry and writes it.
func (s *zapSink) Receive(evt core.Event) error {
	ce := s.zl.Check(mapLevel(evt.LevelNumber), evt.Message)
	if ce == nil {
		return nil
	}
	fields := make([]zap.Field, 0, len(evt.Fields)+3)
	fields = append(fields,
		zap.Time("time", evt.Time),
		zap.String("level_name", evt.LevelName),
		zap.Int("level_number", evt.LevelNumber),
	)
	if len(evt.Tags) > 0 {
		fields = append(fields, zap.Strings("tags", evt.Tags))
	}
	for _, f := range evt.Fields {
		fields = append(fields, zap.Any(f.Key, f.Value()))
	}
	ce.Write(fields...)
	return nil
}

// Flush syncs the underlying zap cores.
func (s *zapSink) Flush(force bool) error { return s.zl.Sync() }

// mapLevel projects the [0,120] ordinal scale onto zap's levels.
// zap's Fatal and Panic levels terminate the process, which a sink
// must never do, so everything at Error and above maps to ErrorLevel.
func mapLevel(number int) zapcore.Level {
	switch {
	case number >= core.Error.Number():
		return zapcore.ErrorLevel
	case number >= core.Warning.Number():
		return zapcore.WarnLevel
	case number >= core.Info.Number():
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
