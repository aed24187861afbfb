package query

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSort is returned when a sort key names neither a derived sort
// nor a resolvable field.
var ErrUnknownSort = errors.New("unknown sort key")

// SortSpec selects an ordering: a field with a direction, or the name of a
// derived sort declared on the schema. Derived sorts carry their own
// direction; Desc is ignored for them.
type SortSpec struct {
	Key  string
	Desc bool
}

// ParseSort reads "field", "-field", "field:desc" / "field:asc" or a
// derived sort name.
func ParseSort(raw string) SortSpec {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return SortSpec{}
	}
	if strings.HasPrefix(raw, "-") {
		return SortSpec{Key: strings.TrimPrefix(raw, "-"), Desc: true}
	}
	if key, dir, ok := strings.Cut(raw, ":"); ok {
		return SortSpec{Key: key, Desc: strings.EqualFold(dir, "desc")}
	}
	return SortSpec{Key: raw}
}

// Comparator orders records by a precomputed key.
type Comparator[T any] struct {
	Name string
	key  KeyFunc[T]
	desc bool
}

// BuildComparator resolves spec against s. An empty key falls back to the
// schema's default sort; a nil Comparator means "keep input order".
func BuildComparator[T any](s *Schema[T], spec SortSpec) (*Comparator[T], error) {
	if spec.Key == "" {
		spec = s.defaultKey
	}
	if spec.Key == "" {
		return nil, nil
	}
	if d, ok := s.derived[spec.Key]; ok {
		return &Comparator[T]{Name: spec.Key, key: d.key, desc: d.desc}, nil
	}
	if !s.Has(spec.Key) {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownSort, s.Entity, spec.Key)
	}
	field := spec.Key
	return &Comparator[T]{
		Name: field,
		key:  func(rec T) (Value, error) { return s.Value(rec, field), nil },
		desc: spec.Desc,
	}, nil
}

// Keys computes the sort key of every record once, failing on the first
// key error.
func (c *Comparator[T]) Keys(recs []T) ([]Value, error) {
	out := make([]Value, len(recs))
	for i, r := range recs {
		v, err := c.key(r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Less orders two keys honouring the direction. Absent keys stay last when
// descending and first when ascending.
func (c *Comparator[T]) Less(a, b Value) bool {
	if c.desc {
		return Compare(b, a) < 0
	}
	return Compare(a, b) < 0
}
