package listview

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Predicate is one independent field filter. A nil Predicate means "filter
// not supplied" and always passes.
type Predicate[T any] func(T) bool

// TextSearch matches when the query is a case-insensitive substring of any
// of the element's searchable fields. An empty query returns nil.
func TextSearch[T any](query string, fields func(T) []string) Predicate[T] {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	return func(item T) bool {
		for _, field := range fields(item) {
			if strings.Contains(strings.ToLower(field), query) {
				return true
			}
		}
		return false
	}
}

// Equals matches on exact equality with want. A nil want returns nil.
func Equals[T any, V comparable](want *V, value func(T) V) Predicate[T] {
	if want == nil {
		return nil
	}
	return func(item T) bool {
		return value(item) == *want
	}
}

// AmountRange matches values within [min, max]; either bound may be absent.
func AmountRange[T any](min, max *decimal.Decimal, value func(T) decimal.Decimal) Predicate[T] {
	if min == nil && max == nil {
		return nil
	}
	return func(item T) bool {
		v := value(item)
		if min != nil && v.LessThan(*min) {
			return false
		}
		if max != nil && v.GreaterThan(*max) {
			return false
		}
		return true
	}
}

// IntRange is AmountRange for plain integers (stock quantities).
func IntRange[T any](min, max *int, value func(T) int) Predicate[T] {
	if min == nil && max == nil {
		return nil
	}
	return func(item T) bool {
		v := value(item)
		if min != nil && v < *min {
			return false
		}
		if max != nil && v > *max {
			return false
		}
		return true
	}
}

// Emptiness distinguishes the two empty-table messages: nothing to show at
// all versus filters that matched nothing.
type Emptiness int

const (
	NotEmpty Emptiness = iota
	NoData
	NoMatches
)

// View is a client-side list: the full collection fetched once, a filtered
// subset derived from a predicate conjunction, and a page window over the
// subset. Changing any filter recomputes the subset and resets to page 1.
type View[T any] struct {
	all      []T
	filtered []T
	page     int
	pageSize int
}

// New builds a view over the full collection, starting unfiltered on page 1.
func New[T any](items []T, pageSize int) *View[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	v := &View[T]{all: items, pageSize: pageSize}
	v.SetFilters()
	return v
}

// Reload replaces the backing collection (a re-fetch) and re-applies no
// filters.
func (v *View[T]) Reload(items []T) {
	v.all = items
	v.SetFilters()
}

// SetFilters installs the predicate conjunction, recomputes the filtered
// subset, and resets the page index. Nil predicates are skipped, so an
// all-nil call restores the full list.
func (v *View[T]) SetFilters(preds ...Predicate[T]) {
	v.filtered = v.filtered[:0]
	for _, item := range v.all {
		if matchesAll(item, preds) {
			v.filtered = append(v.filtered, item)
		}
	}
	v.page = 1
}

func matchesAll[T any](item T, preds []Predicate[T]) bool {
	for _, pred := range preds {
		if pred != nil && !pred(item) {
			return false
		}
	}
	return true
}

// Page returns the current window: filtered[(page-1)*size : page*size].
func (v *View[T]) Page() []T {
	start := (v.page - 1) * v.pageSize
	if start >= len(v.filtered) {
		return nil
	}
	end := start + v.pageSize
	if end > len(v.filtered) {
		end = len(v.filtered)
	}
	return v.filtered[start:end]
}

// PageIndex returns the 1-based current page.
func (v *View[T]) PageIndex() int {
	return v.page
}

// TotalPages returns ceil(len(filtered)/pageSize); an empty subset still has
// one (empty) page.
func (v *View[T]) TotalPages() int {
	if len(v.filtered) == 0 {
		return 1
	}
	return (len(v.filtered) + v.pageSize - 1) / v.pageSize
}

// FilteredLen reports the size of the filtered subset.
func (v *View[T]) FilteredLen() int {
	return len(v.filtered)
}

// TotalLen reports the size of the full collection.
func (v *View[T]) TotalLen() int {
	return len(v.all)
}

// Next advances one page, clamped to the last.
func (v *View[T]) Next() {
	if v.page < v.TotalPages() {
		v.page++
	}
}

// Prev steps back one page, clamped to the first.
func (v *View[T]) Prev() {
	if v.page > 1 {
		v.page--
	}
}

// GoTo jumps to a 1-based page, clamped to the valid range.
func (v *View[T]) GoTo(page int) {
	switch {
	case page < 1:
		v.page = 1
	case page > v.TotalPages():
		v.page = v.TotalPages()
	default:
		v.page = page
	}
}

// Verdict classifies an empty current page for user messaging.
func (v *View[T]) Verdict() Emptiness {
	switch {
	case len(v.all) == 0:
		return NoData
	case len(v.filtered) == 0:
		return NoMatches
	default:
		return NotEmpty
	}
}
