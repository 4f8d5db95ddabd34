package backend

import (
	"encoding/csv"
	"os"

	"github.com/rs/zerolog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/iqis/logthis/core"
	"github.com/iqis/logthis/formatter"
	"github.com/iqis/logthis/sink"
	"github.com/iqis/logthis/sink/zapsink"
	"github.com/iqis/logthis/sink/zerosink"
)

const defaultFlushThreshold = 64

// RegisterBuiltins registers the built-in kinds on r: "stream",
// "file", "csv", "zerolog", and "zap". The default registry already
// carries them; call this for registries built from scratch.
func RegisterBuiltins(r *Registry) {
	// Registration of the fixed built-in set cannot collide.
	_ = r.Register("stream", buildStream)
	_ = r.Register("file", buildFile)
	_ = r.Register("csv", buildCSV)
	_ = r.Register("zerolog", buildZerolog)
	_ = r.Register("zap", buildZap)
}

// buildStream writes lines to cfg.Writer, defaulting to stdout.
func buildStream(f formatter.Formatter, cfg Config) (sink.Sink, error) {
	return sink.NewStream(f, cfg.Writer)
}

// buildFile writes lines to cfg.Path with size-based rotation.
func buildFile(f formatter.Formatter, cfg Config) (sink.Sink, error) {
	return sink.NewFile(f, sink.FileConfig{
		Path:     cfg.Path,
		MaxSize:  cfg.MaxSize,
		MaxFiles: cfg.MaxFiles,
	})
}

// buildCSV appends batched rows to cfg.Path, writing a header row when
// the file starts empty. The formatter must produce rows.
func buildCSV(f formatter.Formatter, cfg Config) (sink.Sink, error) {
	rf, ok := f.(formatter.RowFormatter)
	if !ok {
		return nil, &core.ConfigError{Param: "formatter", Reason: "csv backend requires a row formatter"}
	}
	if cfg.Path == "" {
		return nil, &core.ConfigError{Param: "file path", Reason: "must not be empty"}
	}
	threshold := cfg.FlushThreshold
	if threshold <= 0 {
		threshold = defaultFlushThreshold
	}

	file, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	w := csv.NewWriter(file)
	if info.Size() == 0 {
		if h, ok := rf.(interface{ Header() []string }); ok {
			if err := w.Write(h.Header()); err != nil {
				_ = file.Close()
				return nil, err
			}
			w.Flush()
		}
	}

	rows, err := sink.NewRows(rf, threshold, func(batch [][]string) error {
		if err := w.WriteAll(batch); err != nil {
			return err
		}
		return w.Error()
	})
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	return &csvSink{Rows: rows, file: file}, nil
}

// csvSink owns the destination file so Close releases it after the
// final flush.
type csvSink struct {
	*sink.Rows
	file *os.File
}

func (s *csvSink) Close() error {
	if err := s.Rows.Close(); err != nil {
		_ = s.file.Close()
		return err
	}
	return s.file.Close()
}

// buildZerolog forwards events into a zerolog logger writing to
// cfg.Writer, defaulting to stderr.
func buildZerolog(_ formatter.Formatter, cfg Config) (sink.Sink, error) {
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}
	return zerosink.New(zerolog.New(w)), nil
}

// buildZap forwards events through a JSON-encoded zap core writing to
// cfg.Writer, defaulting to stderr.
func buildZap(_ formatter.Formatter, cfg Config) (sink.Sink, error) {
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}
	zcore := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(w),
		zapcore.DebugLevel,
	)
	return zapsink.New(zap.New(zcore))
}
