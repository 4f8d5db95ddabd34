package core

import "time"

// Event is one structured log record. Events are plain values:
// transforming one produces a new value and never mutates slices the
// original shares with concurrent consumers.
type Event struct {
	Message     string
	Time        time.Time
	LevelName   string
	LevelNumber int
	Tags        []string
	Fields      []Field
}

// WithMessage returns a copy of the event with the message replaced.
func (e Event) WithMessage(msg string) Event {
	e.Message = msg
	return e
}

// WithTags returns a copy of the event with tags appended after any
// existing tags, preserving order.
func (e Event) WithTags(tags ...string) Event {
	if len(tags) == 0 {
		return e
	}
	merged := make([]string, 0, len(e.Tags)+len(tags))
	merged = append(merged, e.Tags...)
	merged = append(merged, tags...)
	e.Tags = merged
	return e
}

// WithFields returns a copy of the event with fields appended.
func (e Event) WithFields(fields ...Field) Event {
	if len(fields) == 0 {
		return e
	}
	merged := make([]Field, 0, len(e.Fields)+len(fields))
	merged = append(merged, e.Fields...)
	merged = append(merged, fields...)
	e.Fields = merged
	return e
}

// HasTag reports whether the event carries the given tag.
func (e Event) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Field returns the first field with the given key.
func (e Event) Field(key string) (Field, bool) {
	for _, f := range e.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}
