// Package generate produces rows for a single table: value primitives,
// the fixed-corpus generators, the edge-case injector, and the repair loop
// that assembles them into accepted rows (spec.md §4.3-§4.7).
package generate

import (
	"fmt"
	"strconv"
	"time"
)

// Kind tags the variant held by a Value. Generated columns span integers,
// floats, strings, booleans and two flavors of time — modeling them as an
// untyped interface{} would let an exporter silently mis-render a value of
// the wrong case, so each case is named and every accessor is explicit
// about which ones it accepts (spec.md's design notes require a tagged
// variant over a generic box).
type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindBool
	KindString
	KindDate
	KindDateTime
)

// Value is a single generated cell. The zero Value is null.
type Value struct {
	kind Kind
	i    int64
	f    float64
	b    bool
	s    string
	t    time.Time
}

func Null() Value                  { return Value{kind: KindNull} }
func Int(v int64) Value            { return Value{kind: KindInt, i: v} }
func Float(v float64) Value        { return Value{kind: KindFloat, f: v} }
func Bool(v bool) Value            { return Value{kind: KindBool, b: v} }
func String(v string) Value        { return Value{kind: KindString, s: v} }
func Date(v time.Time) Value       { return Value{kind: KindDate, t: v} }
func DateTime(v time.Time) Value   { return Value{kind: KindDateTime, t: v} }

func (v Value) Kind() Kind    { return v.kind }
func (v Value) IsNull() bool  { return v.kind == KindNull }

// AsFloat widens int/float values for range and comparison checks; it
// returns false for every other kind.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	default:
		return 0, false
	}
}

func (v Value) AsString() (string, bool) {
	if v.kind == KindString {
		return v.s, true
	}
	return "", false
}

func (v Value) AsBool() (bool, bool) {
	if v.kind == KindBool {
		return v.b, true
	}
	return false, false
}

func (v Value) AsTime() (time.Time, bool) {
	if v.kind == KindDate || v.kind == KindDateTime {
		return v.t, true
	}
	return time.Time{}, false
}

// Raw unwraps the Value to the interface{} a map[string]any-based context
// (the safe-expression evaluator, the rules engine) can compare.
func (v Value) Raw() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	case KindString:
		return v.s
	case KindDate, KindDateTime:
		return v.t
	default:
		return nil
	}
}

// Equal compares two Values by kind and underlying payload, used by the
// row builder's foreign-key pool membership check.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindBool:
		return v.b == other.b
	case KindString:
		return v.s == other.s
	case KindDate, KindDateTime:
		return v.t.Equal(other.t)
	default:
		return false
	}
}

// HashKey renders a comparable string for use as a Go map key in unique
// sets and primary-key sets, where Value itself (holding a time.Time) cannot be
// used as a map key reliably across monotonic-reading differences.
func (v Value) HashKey() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindInt:
		return "i:" + strconv.FormatInt(v.i, 10)
	case KindFloat:
		return "f:" + strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return "b:" + strconv.FormatBool(v.b)
	case KindString:
		return "s:" + v.s
	case KindDate:
		return "d:" + v.t.Format("2006-01-02")
	case KindDateTime:
		return "dt:" + v.t.Format(time.RFC3339)
	default:
		return "?"
	}
}

// Serialize renders the value the way the CSV/JSONL/SQL exporters need: a
// string for text-family kinds, ISO-8601 for dates/times, and the native
// Go type for numerics and booleans, matching the original exporter's
// _serialize_value (None passthrough, isoformat() for datetimes, raw value
// otherwise).
func (v Value) Serialize() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindDate:
		return v.t.Format("2006-01-02")
	case KindDateTime:
		return v.t.Format("2006-01-02T15:04:05")
	default:
		return v.Raw()
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "<null>"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindString:
		return v.s
	case KindDate:
		return v.t.Format("2006-01-02")
	case KindDateTime:
		return v.t.Format("2006-01-02T15:04:05")
	default:
		return fmt.Sprintf("<kind %d>", v.kind)
	}
}
