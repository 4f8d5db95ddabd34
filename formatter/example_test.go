package formatter_test

import (
	"fmt"
	"strings"
	"time"

	"github.com/iqis/logthis/core"
	"github.com/iqis/logthis/formatter"
)

func ExampleNewTextFormatter() {
	f := formatter.NewTextFormatter(formatter.Config{})

	evt := core.Event{
		Time:        time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
		LevelName:   "INFO",
		LevelNumber: 40,
		Message:     "hello world",
	}

	out, _ := f.Format(evt)
	// Timestamp prefix followed by level and message.
	fmt.Println(strings.Contains(string(out), "[INFO:40]"))
	fmt.Println(strings.Contains(string(out), "hello world"))
	// Output:
	// true
	// true
}

func ExampleNewCSVFormatter() {
	f := formatter.NewCSVFormatter(formatter.Config{})

	evt := core.Event{
		Time:        time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
		LevelName:   "INFO",
		LevelNumber: 40,
		Message:     "hello world",
		Tags:        []string{"api"},
	}

	row, _ := f.FormatRow(evt)
	fmt.Println(row[1], row[2], row[3], row[4])
	// Output:
	// INFO 40 hello world api
}
