package query

import (
	"errors"
	"reflect"
	"strings"
	"time"
)

// ErrUnknownField is returned when a filter names a field the schema cannot resolve.
var ErrUnknownField = errors.New("unknown field")

// Getter extracts a field value from a record.
type Getter[T any] func(T) Value

// KeyFunc extracts a sort key from a record and may fail, e.g. when an
// ordinal lookup sees a value outside its table.
type KeyFunc[T any] func(T) (Value, error)

type derived[T any] struct {
	key  KeyFunc[T]
	desc bool
}

// Schema describes how the engine sees one entity type: its named fields,
// which of them are searched, which holds the record date, the named derived
// sorts and the boolean toggles.
//
// A Schema is built once at startup and is read-only afterwards, so it is
// safe to share between goroutines.
type Schema[T any] struct {
	Entity string

	fields     map[string]Getter[T]
	searchable []string
	dateField  string
	derived    map[string]derived[T]
	toggles    map[string]func(T) bool
	defaultKey SortSpec
}

// NewSchema starts an empty schema for entity.
func NewSchema[T any](entity string) *Schema[T] {
	return &Schema[T]{
		Entity:  entity,
		fields:  map[string]Getter[T]{},
		derived: map[string]derived[T]{},
		toggles: map[string]func(T) bool{},
	}
}

// Field declares a named field. Names may be dotted ("location.city").
func (s *Schema[T]) Field(name string, get Getter[T]) *Schema[T] {
	s.fields[name] = get
	return s
}

// Search sets the fields matched by free-text search.
func (s *Schema[T]) Search(names ...string) *Schema[T] {
	s.searchable = append([]string(nil), names...)
	return s
}

// Date sets the field used by the date-window filter.
func (s *Schema[T]) Date(name string) *Schema[T] {
	s.dateField = name
	return s
}

// Derive declares a named sort whose key is computed from the record.
func (s *Schema[T]) Derive(name string, desc bool, key KeyFunc[T]) *Schema[T] {
	s.derived[name] = derived[T]{key: key, desc: desc}
	return s
}

// Toggle declares a boolean filter that is applied only when switched on.
func (s *Schema[T]) Toggle(name string, match func(T) bool) *Schema[T] {
	s.toggles[name] = match
	return s
}

// DefaultSort is used when a request carries no sort key.
func (s *Schema[T]) DefaultSort(spec SortSpec) *Schema[T] {
	s.defaultKey = spec
	return s
}

// Value resolves key on rec. Declared fields win; otherwise the key is
// resolved by reflection as a dotted path. Unresolvable keys yield Absent.
func (s *Schema[T]) Value(rec T, key string) Value {
	if get, ok := s.fields[key]; ok {
		return get(rec)
	}
	return Lookup(rec, key)
}

// Has reports whether key names a declared field or a path that exists on T.
func (s *Schema[T]) Has(key string) bool {
	if _, ok := s.fields[key]; ok {
		return true
	}
	return typeHasPath(reflect.TypeOf((*T)(nil)).Elem(), key)
}

var timeType = reflect.TypeOf(time.Time{})

// Lookup resolves a dotted path such as "location.city" on a struct (by json
// tag, then by case-insensitive field name) or a map with string keys. Nil
// pointers, missing keys and unsupported leaf types yield Absent.
func Lookup(rec any, path string) Value {
	if path == "" {
		return Absent
	}
	v := reflect.ValueOf(rec)
	for _, seg := range strings.Split(path, ".") {
		v = deref(v)
		if !v.IsValid() {
			return Absent
		}
		switch v.Kind() {
		case reflect.Struct:
			idx, ok := fieldIndex(v.Type(), seg)
			if !ok {
				return Absent
			}
			v = v.Field(idx)
		case reflect.Map:
			if v.Type().Key().Kind() != reflect.String {
				return Absent
			}
			v = v.MapIndex(reflect.ValueOf(seg).Convert(v.Type().Key()))
		default:
			return Absent
		}
	}
	return fromReflect(deref(v))
}

func deref(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func fieldIndex(t reflect.Type, name string) (int, bool) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if tag := strings.Split(f.Tag.Get("json"), ",")[0]; tag != "" && tag != "-" && tag == name {
			return i, true
		}
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.IsExported() && strings.EqualFold(f.Name, name) {
			return i, true
		}
	}
	return 0, false
}

func typeHasPath(t reflect.Type, path string) bool {
	if path == "" {
		return false
	}
	for _, seg := range strings.Split(path, ".") {
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		switch t.Kind() {
		case reflect.Struct:
			idx, ok := fieldIndex(t, seg)
			if !ok {
				return false
			}
			t = t.Field(idx).Type
		case reflect.Map:
			// Map keys are dynamic; any key may exist on some record.
			return t.Key().Kind() == reflect.String
		default:
			return false
		}
	}
	return true
}

func fromReflect(v reflect.Value) Value {
	if !v.IsValid() {
		return Absent
	}
	if v.Type() == timeType {
		return Time(v.Interface().(time.Time))
	}
	switch v.Kind() {
	case reflect.String:
		return String(v.String())
	case reflect.Bool:
		return Bool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(float64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Number(float64(v.Uint()))
	case reflect.Float32, reflect.Float64:
		return Number(v.Float())
	case reflect.Slice, reflect.Array:
		// String lists (tags, materials) are searched as one space-joined text.
		if v.Type().Elem().Kind() != reflect.String {
			return Absent
		}
		parts := make([]string, v.Len())
		for i := range parts {
			parts[i] = v.Index(i).String()
		}
		return String(strings.Join(parts, " "))
	}
	return Absent
}
