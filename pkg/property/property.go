package property

import (
	"fmt"
	"strings"
	"time"
)

// Kind identifies the closed set of value shapes the rest of the system
// works with. Raw front-matter values are resolved into a Value once at the
// record boundary; nothing downstream touches raw YAML types again.
type Kind int

const (
	KindAbsent Kind = iota
	KindScalar
	KindDate
	KindList
	KindFileRef
)

// Value is a tagged variant over the shapes a front-matter property can take.
type Value struct {
	kind    Kind
	date    time.Time
	list    []Value
	fileRef string
	scalar  any
}

// Absent is the zero Value.
var Absent = Value{}

// dateLayouts are tried in order when interpreting a scalar as a date.
// Date-only forms come first since that is what the reschedule path writes.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Resolve converts a raw front-matter value into a Value. It never fails:
// anything unrecognized becomes a scalar.
func Resolve(raw any) Value {
	switch v := raw.(type) {
	case nil:
		return Absent
	case time.Time:
		return Value{kind: KindDate, date: v}
	case []any:
		list := make([]Value, 0, len(v))
		for _, item := range v {
			list = append(list, Resolve(item))
		}
		return Value{kind: KindList, list: list}
	case map[string]any:
		if path, ok := v["path"].(string); ok && path != "" {
			return Value{kind: KindFileRef, fileRef: path, scalar: v}
		}
		return Value{kind: KindScalar, scalar: v}
	default:
		return Value{kind: KindScalar, scalar: v}
	}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsAbsent() bool {
	return v.kind == KindAbsent
}

// AsDate returns the value as a calendar timestamp. Date-typed values return
// directly; scalar strings are parsed against the known date layouts. The
// timestamp keeps its time-of-day component; callers that need calendar-day
// semantics normalize it themselves.
func (v Value) AsDate() (time.Time, bool) {
	switch v.kind {
	case KindDate:
		return v.date, true
	case KindScalar:
		s, ok := v.scalar.(string)
		if !ok {
			return time.Time{}, false
		}
		s = strings.TrimSpace(s)
		for _, layout := range dateLayouts {
			if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// AsList returns the value's elements when it is a list.
func (v Value) AsList() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.list, true
}

// AsFileRef returns the wrapped file path when the value is a file reference.
func (v Value) AsFileRef() (string, bool) {
	if v.kind != KindFileRef {
		return "", false
	}
	return v.fileRef, true
}

// RefField returns the first non-empty reference-like field (path, link, url,
// src) when the scalar wraps a mapping, which is how some plugins store
// attachments.
func (v Value) RefField() (string, bool) {
	m, ok := v.scalar.(map[string]any)
	if !ok {
		return "", false
	}
	for _, key := range []string{"path", "link", "url", "src"} {
		if s, ok := m[key].(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

// String renders the value for display in a chip. Lists join their elements;
// absent values render empty.
func (v Value) String() string {
	switch v.kind {
	case KindAbsent:
		return ""
	case KindDate:
		if v.date.Hour() == 0 && v.date.Minute() == 0 && v.date.Second() == 0 {
			return v.date.Format("2006-01-02")
		}
		return v.date.Format("2006-01-02 15:04")
	case KindList:
		parts := make([]string, 0, len(v.list))
		for _, item := range v.list {
			parts = append(parts, item.String())
		}
		return strings.Join(parts, ", ")
	case KindFileRef:
		return v.fileRef
	default:
		return fmt.Sprintf("%v", v.scalar)
	}
}

// IsEmpty reports whether the value renders as an empty chip.
func (v Value) IsEmpty() bool {
	return strings.TrimSpace(v.String()) == ""
}
