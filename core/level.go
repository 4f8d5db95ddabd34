package core

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Bounds of the ordinal severity scale.
const (
	MinLevelNumber = 0
	MaxLevelNumber = 120
)

// ErrBuiltinLevel is returned when tags are attached to a built-in level.
// Only user-defined levels accept default tags.
var ErrBuiltinLevel = errors.New("tags cannot be attached to a built-in level")

// ConfigError reports an invalid construction-time argument. It always
// surfaces immediately to the configuring caller, never at dispatch time.
type ConfigError struct {
	Param  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Reason)
}

// Level is a named ordinal severity on the [0,120] scale. Invoking a
// Level produces Event values; the Level itself is immutable.
type Level struct {
	name    string
	number  int
	builtin bool
	tags    []string
}

// builtin constructs a member of the protected built-in set.
func builtin(name string, number int) *Level {
	return &Level{name: name, number: number, builtin: true}
}

// The built-in levels. This set is closed: it cannot be extended and
// its members cannot carry default tags.
var (
	Trace    = builtin("TRACE", 10)
	Debug    = builtin("DEBUG", 20)
	Info     = builtin("INFO", 40)
	Success  = builtin("SUCCESS", 50)
	Warning  = builtin("WARNING", 60)
	Error    = builtin("ERROR", 80)
	Critical = builtin("CRITICAL", 90)
	Fatal    = builtin("FATAL", 100)
)

// Define creates a user-defined level. The name must be non-empty and
// the number must land in [0,120] after rounding to the nearest integer;
// a non-integral number is rounded with a diagnostic warning.
func Define(name string, number float64) (*Level, error) {
	if name == "" {
		return nil, &ConfigError{Param: "level name", Reason: "must not be empty"}
	}
	if math.IsNaN(number) || math.IsInf(number, 0) {
		return nil, &ConfigError{Param: "level number", Reason: fmt.Sprintf("%v is not a finite number", number)}
	}
	rounded := math.Round(number)
	if rounded != number {
		Diagf("level %q: non-integral number %v rounded to %d", name, number, int(rounded))
	}
	n := int(rounded)
	if n < MinLevelNumber || n > MaxLevelNumber {
		return nil, &ConfigError{
			Param:  "level number",
			Reason: fmt.Sprintf("%d is outside [%d,%d]", n, MinLevelNumber, MaxLevelNumber),
		}
	}
	return &Level{name: name, number: n}, nil
}

// Name returns the level's name.
func (l *Level) Name() string { return l.name }

// Number returns the level's severity number.
func (l *Level) Number() int { return l.number }

// Builtin reports whether the level belongs to the protected built-in set.
func (l *Level) Builtin() bool { return l.builtin }

// Tags returns a copy of the level's default tags.
func (l *Level) Tags() []string {
	if len(l.tags) == 0 {
		return nil
	}
	tags := make([]string, len(l.tags))
	copy(tags, l.tags)
	return tags
}

// WithTags returns a copy of the level with the given default tags
// appended. Every event the returned level produces starts with these
// tags. Built-in levels return ErrBuiltinLevel.
func (l *Level) WithTags(tags ...string) (*Level, error) {
	if l.builtin {
		return nil, fmt.Errorf("level %s: %w", l.name, ErrBuiltinLevel)
	}
	merged := make([]string, 0, len(l.tags)+len(tags))
	merged = append(merged, l.tags...)
	merged = append(merged, tags...)
	return &Level{name: l.name, number: l.number, tags: merged}, nil
}

// NewEvent constructs an event at this level. It fails with a
// ConfigError if any field carries a value outside the permitted type
// set (scalars, strings, lists, nested maps).
func (l *Level) NewEvent(msg string, fields ...Field) (Event, error) {
	for _, f := range fields {
		if err := f.Validate(); err != nil {
			return Event{}, &ConfigError{Param: "field " + f.Key, Reason: err.Error()}
		}
	}
	return l.newEvent(msg, fields), nil
}

// Event constructs an event at this level. Unlike NewEvent it never
// fails: an invalid field value is replaced by an error field and
// reported through the diagnostic surface, so dispatch paths built on
// this constructor cannot be interrupted by a bad value.
func (l *Level) Event(msg string, fields ...Field) Event {
	var clean []Field
	for i, f := range fields {
		err := f.Validate()
		if err == nil {
			continue
		}
		if clean == nil {
			clean = make([]Field, len(fields))
			copy(clean, fields)
		}
		Diagf("level %s: invalid value for field %q: %v", l.name, f.Key, err)
		clean[i] = Field{Key: f.Key, Type: ErrorType, Str: err.Error()}
	}
	if clean == nil {
		clean = fields
	}
	return l.newEvent(msg, clean)
}

func (l *Level) newEvent(msg string, fields []Field) Event {
	var tags []string
	if len(l.tags) > 0 {
		tags = make([]string, len(l.tags))
		copy(tags, l.tags)
	}
	return Event{
		Message:     msg,
		Time:        time.Now(),
		LevelName:   l.name,
		LevelNumber: l.number,
		Tags:        tags,
		Fields:      fields,
	}
}
