package logger_test

import (
	"fmt"
	"strings"

	"github.com/iqis/logthis/core"
	"github.com/iqis/logthis/logger"
	"github.com/iqis/logthis/sink"
)

func ExampleLogger_Log() {
	var seen []string
	capture, _ := sink.Bind(sink.SinkFunc(func(evt core.Event) error {
		seen = append(seen, fmt.Sprintf("%s %s %v", evt.LevelName, evt.Message, evt.Tags))
		return nil
	}))

	log, _ := logger.New().WithSinks(capture)
	log, _ = log.WithLimits(core.Info.Number(), core.Fatal.Number())
	log = log.WithTags("api")

	log.Debug("filtered out")
	log.Info("request handled")

	fmt.Println(seen[0])
	// Output:
	// INFO request handled [api]
}

func ExampleLogger_WithMiddleware() {
	var seen []string
	capture, _ := sink.Bind(sink.SinkFunc(func(evt core.Event) error {
		seen = append(seen, evt.Message)
		return nil
	}))

	redact := func(evt core.Event) (core.Event, bool) {
		return evt.WithMessage(strings.ReplaceAll(evt.Message, "hunter2", "[redacted]")), true
	}

	log, _ := logger.New().WithSinks(capture)
	log = log.WithMiddleware(redact)
	log.Info("password is hunter2")

	fmt.Println(seen[0])
	// Output:
	// password is [redacted]
}
