package query

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// FilterSpec is the set of filters chosen for a list. Every inactive entry
// (empty search, "All" or empty equality value, non-positive window, toggle
// set to false) contributes no constraint.
type FilterSpec struct {
	// Search is matched as a case-insensitive substring against any of the
	// schema's searchable fields.
	Search string
	// Equals maps field names to the required value.
	Equals map[string]string
	// WithinDays keeps records whose date is no older than now minus N days.
	WithinDays int
	// Toggles switches on named boolean filters such as "unread".
	Toggles map[string]bool
}

// MaxWindowDays caps WithinDays. Any larger window already reaches back
// before every record the dashboard can hold.
const MaxWindowDays = 1_000_000

// Predicate reports whether a record passes a filter.
type Predicate[T any] func(T) bool

// IsAll reports whether v is an inactive equality selection.
func IsAll(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, "all")
}

// BuildPredicate composes f into a single predicate over T: the AND of every
// active sub-filter, with search ORed across the searchable fields.
//
// Equality filters compare case-insensitively so "pending" selects "Pending".
// Naming a field the schema cannot resolve, or an undeclared toggle, is an
// error rather than a filter that silently matches everything.
func BuildPredicate[T any](s *Schema[T], f FilterSpec, now time.Time) (Predicate[T], error) {
	var parts []Predicate[T]

	if q := strings.TrimSpace(f.Search); q != "" && len(s.searchable) > 0 {
		fold := cases.Fold()
		needle := fold.String(q)
		fields := s.searchable
		parts = append(parts, func(rec T) bool {
			for _, name := range fields {
				v := s.Value(rec, name)
				if v.IsAbsent() {
					continue
				}
				if strings.Contains(fold.String(v.Text()), needle) {
					return true
				}
			}
			return false
		})
	}

	for field, want := range f.Equals {
		if IsAll(want) {
			continue
		}
		if !s.Has(field) {
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownField, s.Entity, field)
		}
		field, want := field, strings.TrimSpace(want)
		parts = append(parts, func(rec T) bool {
			v := s.Value(rec, field)
			return !v.IsAbsent() && strings.EqualFold(v.Text(), want)
		})
	}

	if f.WithinDays > 0 {
		if s.dateField == "" {
			return nil, fmt.Errorf("%w: %s has no date field", ErrUnknownField, s.Entity)
		}
		bound := now.AddDate(0, 0, -min(f.WithinDays, MaxWindowDays))
		field := s.dateField
		parts = append(parts, func(rec T) bool {
			v := s.Value(rec, field)
			return v.Kind() == KindTime && !v.TimeValue().Before(bound)
		})
	}

	for name, on := range f.Toggles {
		if !on {
			continue
		}
		match, ok := s.toggles[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s toggle %q", ErrUnknownField, s.Entity, name)
		}
		parts = append(parts, match)
	}

	return func(rec T) bool {
		for _, p := range parts {
			if !p(rec) {
				return false
			}
		}
		return true
	}, nil
}
