package query

import (
	"sort"
	"time"
)

// Request bundles everything a list endpoint needs.
type Request struct {
	Filter   FilterSpec
	Sort     SortSpec
	Page     int
	PageSize int
}

// Execute filters then stable-sorts records. It never mutates records and
// recomputes everything on each call. Records with equal keys keep their
// input order.
func Execute[T any](records []T, s *Schema[T], f FilterSpec, spec SortSpec, now time.Time) ([]T, error) {
	pred, err := BuildPredicate(s, f, now)
	if err != nil {
		return nil, err
	}
	cmp, err := BuildComparator(s, spec)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(records))
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	if cmp == nil || len(out) < 2 {
		return out, nil
	}

	keys, err := cmp.Keys(out)
	if err != nil {
		return nil, err
	}
	idx := make([]int, len(out))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return cmp.Less(keys[idx[a]], keys[idx[b]]) })

	sorted := make([]T, len(out))
	for i, j := range idx {
		sorted[i] = out[j]
	}
	return sorted, nil
}

// Page is one window of a query result.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Paginate cuts items into the requested page. Out-of-range pages return an
// empty, non-nil Items slice.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize

	// Pages past the end are checked before multiplying so huge page
	// numbers cannot overflow start.
	start := total
	if page <= totalPages {
		start = (page - 1) * pageSize
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	window := make([]T, end-start)
	copy(window, items[start:end])

	return Page[T]{
		Items:      window,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}

// Run executes req against records and returns the requested page.
func Run[T any](records []T, s *Schema[T], req Request, now time.Time) (Page[T], error) {
	items, err := Execute(records, s, req.Filter, req.Sort, now)
	if err != nil {
		return Page[T]{}, err
	}
	return Paginate(items, req.Page, req.PageSize), nil
}
