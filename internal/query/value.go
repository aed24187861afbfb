// Package query implements the record query engine shared by every list in
// the dashboard: a field accessor, a predicate builder, a comparator builder
// and a pure executor that filters, stable-sorts and paginates a slice.
//
// The package has no storage, logging or transport dependencies. Callers
// describe each entity once with a Schema and reuse it for every request.
package query

import (
	"strconv"
	"strings"
	"time"
)

// Kind identifies the dynamic type held by a Value.
type Kind int

const (
	KindAbsent Kind = iota
	KindBool
	KindNumber
	KindString
	KindTime
)

// Value is a comparable primitive extracted from a record. The zero Value is
// Absent, the sentinel for fields that do not exist on a record.
type Value struct {
	kind Kind
	str  string
	num  float64
	tm   time.Time
	b    bool
}

// Absent is returned when a field cannot be resolved.
var Absent = Value{}

// String wraps s.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number wraps f.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Int wraps i as a Number.
func Int(i int) Value { return Number(float64(i)) }

// Time wraps t. The zero time is treated as Absent.
func Time(t time.Time) Value {
	if t.IsZero() {
		return Absent
	}
	return Value{kind: KindTime, tm: t}
}

// Bool wraps b.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Kind returns the kind of v.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether v is the Absent sentinel.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// Num returns the numeric payload (0 for other kinds).
func (v Value) Num() float64 { return v.num }

// TimeValue returns the time payload (zero for other kinds).
func (v Value) TimeValue() time.Time { return v.tm }

// Text renders v for searching and equality filters.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindTime:
		return v.tm.Format(time.RFC3339)
	case KindBool:
		return strconv.FormatBool(v.b)
	}
	return ""
}

// Compare orders a and b. Absent sorts before everything. Values of
// different kinds are ordered by kind so the ordering stays total.
func Compare(a, b Value) int {
	if a.kind != b.kind {
		if a.kind < b.kind {
			return -1
		}
		return 1
	}
	switch a.kind {
	case KindBool:
		switch {
		case a.b == b.b:
			return 0
		case !a.b:
			return -1
		}
		return 1
	case KindNumber:
		switch {
		case a.num < b.num:
			return -1
		case a.num > b.num:
			return 1
		}
		return 0
	case KindString:
		return strings.Compare(a.str, b.str)
	case KindTime:
		return a.tm.Compare(b.tm)
	}
	return 0
}
