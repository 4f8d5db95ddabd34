package formatter

import (
	"encoding/csv"
	"strconv"
	"strings"
	"time"

	"github.com/iqis/logthis/core"
)

// CSVFormatter formats log events as record rows for columnar
// backends. It implements both RowFormatter (the batched path) and
// Formatter (one CSV-encoded line per event).
type CSVFormatter struct {
	Config
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(cfg Config) *CSVFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339
	}
	return &CSVFormatter{Config: cfg}
}

// Header returns the column names, matching FormatRow's layout.
func (f *CSVFormatter) Header() []string {
	return []string{"time", "level", "level_number", "message", "tags", "fields"}
}

// FormatRow formats an event as one record row. Tags and fields are
// packed into single semicolon-separated columns, preserving order.
func (f *CSVFormatter) FormatRow(evt core.Event) ([]string, error) {
	fields := make([]string, len(evt.Fields))
	for i, field := range evt.Fields {
		fields[i] = field.Key + "=" + field.StringValue()
	}
	return []string{
		evt.Time.Format(f.TimestampFormat),
		evt.LevelName,
		strconv.Itoa(evt.LevelNumber),
		evt.Message,
		strings.Join(evt.Tags, ";"),
		strings.Join(fields, ";"),
	}, nil
}

// Format formats an event as one CSV-encoded line
func (f *CSVFormatter) Format(evt core.Event) ([]byte, error) {
	row, err := f.FormatRow(evt)
	if err != nil {
		return nil, err
	}

	buf := getBuffer()
	defer putBuffer(buf)

	w := csv.NewWriter(buf)
	if err := w.Write(row); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}
