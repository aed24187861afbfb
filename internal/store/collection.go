// Package store holds the in-memory record collections used when the service
// runs with STORE_DRIVER=memory, and the copy-on-write helpers that every
// mutation goes through.
//
// A Collection never edits a stored record in place. Patch copies the record,
// applies the change to the copy, and swaps a fresh backing slice in, so a
// snapshot returned by List earlier is never affected by later writes.
package store

import (
	"sync"

	"github.com/tbourn/go-marketplace-backend/internal/repo"
)

// ErrNotFound is returned when an id has no record. It is the same value the
// GORM repositories return so callers can check a single sentinel.
var ErrNotFound = repo.ErrNotFound

// Collection is an ordered, id-addressable list of records.
type Collection[T any] struct {
	mu    sync.RWMutex
	id    func(T) string
	items []T
}

// NewCollection returns a collection keyed by id, seeded with items in order.
func NewCollection[T any](id func(T) string, items ...T) *Collection[T] {
	return &Collection[T]{id: id, items: append([]T(nil), items...)}
}

// Append adds rec at the end.
func (c *Collection[T]) Append(rec T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := make([]T, len(c.items), len(c.items)+1)
	copy(next, c.items)
	c.items = append(next, rec)
}

// Prepend adds rec at the front. New support cases are shown first.
func (c *Collection[T]) Prepend(rec T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := make([]T, 0, len(c.items)+1)
	next = append(next, rec)
	c.items = append(next, c.items...)
}

// Get returns the record with the given id.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if c.id(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Find returns the first record matching fn.
func (c *Collection[T]) Find(fn func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if fn(it) {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Patch applies fn to a copy of the record with the given id and replaces
// the record with that copy. If fn returns an error nothing is stored.
func (c *Collection[T]) Patch(id string, fn func(*T) error) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	for i, it := range c.items {
		if c.id(it) != id {
			continue
		}
		cp := it
		if err := fn(&cp); err != nil {
			return zero, err
		}
		next := make([]T, len(c.items))
		copy(next, c.items)
		next[i] = cp
		c.items = next
		return cp, nil
	}
	return zero, ErrNotFound
}

// List returns a snapshot of all records in order.
func (c *Collection[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of records.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Buckets groups append-only child records by parent id, e.g. messages by
// conversation. A bucket is created on first append.
type Buckets[T any] struct {
	mu sync.RWMutex
	m  map[string][]T
}

// NewBuckets returns an empty bucket set.
func NewBuckets[T any]() *Buckets[T] {
	return &Buckets[T]{m: map[string][]T{}}
}

// Append adds rec to the parent's bucket.
func (b *Buckets[T]) Append(parent string, rec T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	cur := b.m[parent]
	next := make([]T, len(cur), len(cur)+1)
	copy(next, cur)
	b.m[parent] = append(next, rec)
}

// List returns a copy of the parent's bucket. A missing bucket yields an
// empty, non-nil slice.
func (b *Buckets[T]) List(parent string) []T {
	b.mu.RLock()
	defer b.mu.RUnlock()
	cur := b.m[parent]
	out := make([]T, len(cur))
	copy(out, cur)
	return out
}

// Len returns the size of the parent's bucket.
func (b *Buckets[T]) Len(parent string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.m[parent])
}
