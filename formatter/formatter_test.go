package formatter

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iqis/logthis/core"
)

func sampleEvent() core.Event {
	return core.Event{
		Message:     "request handled",
		Time:        time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
		LevelName:   "INFO",
		LevelNumber: 40,
		Tags:        []string{"api", "v2"},
		Fields: []core.Field{
			core.Int("status", 200),
			core.String("path", "/users"),
		},
	}
}

func TestTextFormatter(t *testing.T) {
	f := NewTextFormatter(Config{})

	out, err := f.Format(sampleEvent())
	require.NoError(t, err)
	line := string(out)

	assert.True(t, strings.HasSuffix(line, "\n"))
	assert.Contains(t, line, "[INFO:40]")
	assert.Contains(t, line, "#api #v2")
	assert.Contains(t, line, "request handled")
	assert.Contains(t, line, "status=200")
	assert.Contains(t, line, "path=/users")
}

func TestTextFormatter_CustomTimestamp(t *testing.T) {
	f := NewTextFormatter(Config{TimestampFormat: "2006-01-02"})

	out, err := f.Format(sampleEvent())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "2026-01-15 "))
}

func TestJSONFormatter(t *testing.T) {
	f := NewJSONFormatter(Config{})

	out, err := f.Format(sampleEvent())
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(out), "\n"))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "INFO", decoded["level"])
	assert.Equal(t, float64(40), decoded["level_number"])
	assert.Equal(t, "request handled", decoded["message"])
	assert.Equal(t, []interface{}{"api", "v2"}, decoded["tags"])
	assert.Equal(t, float64(200), decoded["status"])
	assert.Equal(t, "/users", decoded["path"])
}

func TestJSONFormatter_Escaping(t *testing.T) {
	f := NewJSONFormatter(Config{})
	evt := core.Event{
		Message:     "quote \" backslash \\ newline \n tab \t control \x01",
		Time:        time.Now(),
		LevelName:   "INFO",
		LevelNumber: 40,
	}

	out, err := f.Format(evt)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, evt.Message, decoded["message"])
}

func TestJSONFormatter_NestedFields(t *testing.T) {
	f := NewJSONFormatter(Config{})
	evt := core.Event{
		Message:     "nested",
		Time:        time.Now(),
		LevelName:   "INFO",
		LevelNumber: 40,
		Fields: []core.Field{
			core.List("ids", core.Int("", 1), core.Int("", 2)),
			core.Map("user", core.String("name", "ada"), core.Bool("admin", true)),
		},
	}

	out, err := f.Format(evt)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, []interface{}{float64(1), float64(2)}, decoded["ids"])
	assert.Equal(t, map[string]interface{}{"name": "ada", "admin": true}, decoded["user"])
}

func TestCSVFormatter(t *testing.T) {
	f := NewCSVFormatter(Config{})

	row, err := f.FormatRow(sampleEvent())
	require.NoError(t, err)
	require.Len(t, row, len(f.Header()))
	assert.Equal(t, "2026-01-15T12:00:00Z", row[0])
	assert.Equal(t, "INFO", row[1])
	assert.Equal(t, "40", row[2])
	assert.Equal(t, "request handled", row[3])
	assert.Equal(t, "api;v2", row[4])
	assert.Equal(t, "status=200;path=/users", row[5])
}

func TestCSVFormatter_LineEncoding(t *testing.T) {
	f := NewCSVFormatter(Config{})
	evt := sampleEvent().WithMessage(`contains "quotes", and commas`)

	out, err := f.Format(evt)
	require.NoError(t, err)
	line := string(out)
	assert.True(t, strings.HasSuffix(line, "\n"))
	assert.Contains(t, line, `"contains ""quotes"", and commas"`)
}
