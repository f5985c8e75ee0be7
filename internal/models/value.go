package models

import (
	"encoding/json"
	"strconv"
	"time"
)

// Value is a nullable scalar read from a variant database column. The
// variant schemas disagree on column types (MySQL hands back []byte for
// text, tinyint for booleans, and so on), so every read goes through the
// coercions below instead of type-asserting driver output directly.
// A zero Value is NULL.
type Value struct {
	v any // int64, float64, string, bool, time.Time, or nil
}

func NullValue() Value            { return Value{} }
func IntValue(v int64) Value      { return Value{v: v} }
func FloatValue(v float64) Value  { return Value{v: v} }
func StringValue(v string) Value  { return Value{v: v} }
func BoolValue(v bool) Value      { return Value{v: v} }
func TimeValue(v time.Time) Value { return Value{v: v} }

// FromAny normalizes whatever a database/sql driver produced into one of
// the supported scalar kinds.
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return Value{}
	case int64:
		return Value{v: t}
	case int:
		return Value{v: int64(t)}
	case int32:
		return Value{v: int64(t)}
	case uint64:
		return Value{v: int64(t)}
	case float64:
		return Value{v: t}
	case float32:
		return Value{v: float64(t)}
	case bool:
		return Value{v: t}
	case string:
		return Value{v: t}
	case []byte:
		return Value{v: string(t)}
	case time.Time:
		return Value{v: t}
	default:
		return Value{v: nil}
	}
}

func (v Value) IsNull() bool { return v.v == nil }

// Int64 coerces to an integer. NULL and unparseable values count as 0 so
// sums over sparse columns never propagate nulls.
func (v Value) Int64() int64 {
	switch t := v.v.(type) {
	case int64:
		return t
	case float64:
		return int64(t)
	case bool:
		if t {
			return 1
		}
		return 0
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return int64(f)
		}
	}
	return 0
}

func (v Value) Float64() float64 {
	switch t := v.v.(type) {
	case float64:
		return t
	case int64:
		return float64(t)
	case string:
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return f
		}
	}
	return 0
}

func (v Value) String() string {
	switch t := v.v.(type) {
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	}
	return ""
}

// Bool follows the loose truthiness the old deployment had: NULL is false,
// numbers are true when nonzero (MySQL tinyint booleans).
func (v Value) Bool() bool {
	switch t := v.v.(type) {
	case bool:
		return t
	case int64:
		return t != 0
	case float64:
		return t != 0
	case string:
		b, _ := strconv.ParseBool(t)
		return b
	}
	return false
}

func (v Value) Time() time.Time {
	if t, ok := v.v.(time.Time); ok {
		return t
	}
	return time.Time{}
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.v == nil {
		return []byte("null"), nil
	}
	if t, ok := v.v.(time.Time); ok {
		return json.Marshal(t.UTC().Format(time.RFC3339))
	}
	return json.Marshal(v.v)
}
