package core

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// FieldType represents the type of a field value
type FieldType uint8

const (
	StringType FieldType = iota
	IntType
	Int64Type
	Float64Type
	BoolType
	TimeType
	DurationType
	ErrorType
	ListType
	MapType
	AnyType
)

// Field represents a key-value pair for structured logging. Values are
// restricted to scalars, strings, lists, and nested maps; function and
// handle values are rejected by Validate.
type Field struct {
	Key     string
	Type    FieldType
	Int64   int64
	Float64 float64
	Str     string
	Items   []Field
	Any     interface{}
}

// Field helper functions for convenience

// String creates a string field
func String(key, val string) Field {
	return Field{Key: key, Type: StringType, Str: val}
}

// Int creates an int field
func Int(key string, val int) Field {
	return Field{Key: key, Type: IntType, Int64: int64(val)}
}

// Int64 creates an int64 field
func Int64(key string, val int64) Field {
	return Field{Key: key, Type: Int64Type, Int64: val}
}

// Float64 creates a float64 field
func Float64(key string, val float64) Field {
	return Field{Key: key, Type: Float64Type, Float64: val}
}

// Bool creates a bool field
func Bool(key string, val bool) Field {
	int64Val := int64(0)
	if val {
		int64Val = 1
	}
	return Field{Key: key, Type: BoolType, Int64: int64Val}
}

// Time creates a time field
func Time(key string, val time.Time) Field {
	return Field{Key: key, Type: TimeType, Int64: val.UnixNano()}
}

// Duration creates a duration field
func Duration(key string, val time.Duration) Field {
	return Field{Key: key, Type: DurationType, Int64: int64(val)}
}

// Err creates an error field
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Type: ErrorType, Str: ""}
	}
	return Field{Key: "error", Type: ErrorType, Str: err.Error()}
}

// List creates an ordered list field. Elements are value-only fields;
// their keys are ignored.
func List(key string, elems ...Field) Field {
	return Field{Key: key, Type: ListType, Items: elems}
}

// Map creates a nested map field whose entries keep insertion order.
func Map(key string, fields ...Field) Field {
	return Field{Key: key, Type: MapType, Items: fields}
}

// Any creates a field with an arbitrary value. The value must satisfy
// the restricted type union; Validate reports violations.
func Any(key string, val interface{}) Field {
	return Field{Key: key, Type: AnyType, Any: val}
}

// Validate checks that the field's value lies within the permitted
// type set. Lists and maps are checked recursively.
func (f Field) Validate() error {
	switch f.Type {
	case ListType, MapType:
		for _, item := range f.Items {
			if err := item.Validate(); err != nil {
				return err
			}
		}
		return nil
	case AnyType:
		return validateValue(f.Any)
	default:
		return nil
	}
}

// validateValue rejects function and handle values, which cannot be
// formatted or safely shared across dispatch boundaries.
func validateValue(v interface{}) error {
	if v == nil {
		return nil
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Func:
		return fmt.Errorf("function values are not permitted")
	case reflect.Chan:
		return fmt.Errorf("channel values are not permitted")
	case reflect.UnsafePointer, reflect.Uintptr:
		return fmt.Errorf("pointer handle values are not permitted")
	case reflect.Ptr:
		rv := reflect.ValueOf(v)
		if rv.IsNil() {
			return nil
		}
		return validateValue(rv.Elem().Interface())
	}
	return nil
}

// StringValue returns the string representation of a field's value
func (f Field) StringValue() string {
	switch f.Type {
	case StringType:
		return f.Str
	case IntType, Int64Type:
		return strconv.FormatInt(f.Int64, 10)
	case Float64Type:
		return strconv.FormatFloat(f.Float64, 'f', -1, 64)
	case BoolType:
		return strconv.FormatBool(f.Int64 == 1)
	case TimeType:
		return time.Unix(0, f.Int64).Format(time.RFC3339)
	case DurationType:
		return time.Duration(f.Int64).String()
	case ErrorType:
		return f.Str
	case ListType:
		parts := make([]string, len(f.Items))
		for i, item := range f.Items {
			parts[i] = item.StringValue()
		}
		return "[" + strings.Join(parts, ",") + "]"
	case MapType:
		parts := make([]string, len(f.Items))
		for i, item := range f.Items {
			parts[i] = item.Key + ":" + item.StringValue()
		}
		return "{" + strings.Join(parts, ",") + "}"
	case AnyType:
		return fmt.Sprintf("%v", f.Any)
	default:
		return ""
	}
}

// Value returns the field's value as a plain Go value, for adapters
// that hand fields to another logging backend. Map entries lose their
// ordering here; the native formatters preserve it.
func (f Field) Value() interface{} {
	switch f.Type {
	case StringType:
		return f.Str
	case IntType, Int64Type:
		return f.Int64
	case Float64Type:
		return f.Float64
	case BoolType:
		return f.Int64 == 1
	case TimeType:
		return time.Unix(0, f.Int64)
	case DurationType:
		return time.Duration(f.Int64)
	case ErrorType:
		return f.Str
	case ListType:
		items := make([]interface{}, len(f.Items))
		for i, item := range f.Items {
			items[i] = item.Value()
		}
		return items
	case MapType:
		m := make(map[string]interface{}, len(f.Items))
		for _, item := range f.Items {
			m[item.Key] = item.Value()
		}
		return m
	case AnyType:
		return f.Any
	default:
		return nil
	}
}
