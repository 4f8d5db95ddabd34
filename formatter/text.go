package formatter

import (
	"bytes"
	"strconv"
	"time"

	"github.com/iqis/logthis/core"
)

// TextFormatter formats log events as human-readable text
type TextFormatter struct {
	Config
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(cfg Config) *TextFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339
	}
	return &TextFormatter{Config: cfg}
}

// Format formats an event as one text line
func (f *TextFormatter) Format(evt core.Event) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.formatToBuffer(evt, buf)

	// Copy buffer content to return
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// formatToBuffer writes the formatted event into the given buffer
func (f *TextFormatter) formatToBuffer(evt core.Event, buf *bytes.Buffer) {
	// Timestamp - use AppendFormat to avoid string allocation
	buf.Write(evt.Time.AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))

	// Level name and number
	buf.WriteString(" [")
	buf.WriteString(evt.LevelName)
	buf.WriteByte(':')
	buf.WriteString(strconv.Itoa(evt.LevelNumber))
	buf.WriteString("] ")

	// Tags in order
	for _, tag := range evt.Tags {
		buf.WriteByte('#')
		buf.WriteString(tag)
		buf.WriteByte(' ')
	}

	// Message
	buf.WriteString(evt.Message)

	// Fields
	for _, field := range evt.Fields {
		buf.WriteByte(' ')
		buf.WriteString(field.Key)
		buf.WriteByte('=')
		buf.WriteString(field.StringValue())
	}

	buf.WriteByte('\n')
}
