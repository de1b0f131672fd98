// Package listview is the filter, sort and paginate pipeline behind
// every entity list screen. Derivations are pure; each screen owns its
// view instance and no two screens share query state.
package listview

import (
	"sort"
	"strings"
)

// PageSize is fixed across all screens.
const PageSize = 10

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Fields declares the named textual fields of T the pipeline may
// filter and sort on. A sort key absent from the map compares all
// items as equal empty strings.
type Fields[T any] map[string]func(T) string

// Result is one pure recomputation of the pipeline.
type Result[T any] struct {
	FilteredItems []T
	PageCount     int
	PageItems     []T
}

// Compute runs filter then sort then paginate over items and returns
// the given page. Identical inputs yield identical outputs.
func Compute[T any](items []T, fields Fields[T], searchTerm, sortKey string, dir Direction, page int) Result[T] {
	filtered := filter(items, fields, searchTerm)
	if sortKey != "" {
		sortItems(filtered, fields[sortKey], dir)
	}

	pageCount := (len(filtered) + PageSize - 1) / PageSize
	page = ClampPage(page, pageCount)

	var pageItems []T
	if pageCount > 0 {
		start := (page - 1) * PageSize
		end := start + PageSize
		if end > len(filtered) {
			end = len(filtered)
		}
		pageItems = filtered[start:end]
	}
	return Result[T]{FilteredItems: filtered, PageCount: pageCount, PageItems: pageItems}
}

// ClampPage forces n into [1, pageCount], or 1 when pageCount is 0.
func ClampPage(n, pageCount int) int {
	if n < 1 || pageCount == 0 {
		return 1
	}
	if n > pageCount {
		return pageCount
	}
	return n
}

// filter keeps items where any declared field contains term,
// case-insensitively. An empty term matches everything.
func filter[T any](items []T, fields Fields[T], term string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	matched := make([]T, 0, len(items))
	if term == "" {
		return append(matched, items...)
	}
	for _, item := range items {
		for _, get := range fields {
			if strings.Contains(strings.ToLower(get(item)), term) {
				matched = append(matched, item)
				break
			}
		}
	}
	return matched
}

// sortItems sorts in place, stable, comparing values as
// case-insensitive strings. A nil getter leaves the original order.
func sortItems[T any](items []T, get func(T) string, dir Direction) {
	key := func(item T) string {
		if get == nil {
			return ""
		}
		return strings.ToLower(get(item))
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := key(items[i]), key(items[j])
		if dir == Desc {
			return a > b
		}
		return a < b
	})
}

// View is the stateful per-screen query: source items plus search,
// sort and page settings. Any upstream change resets the page to 1.
type View[T any] struct {
	fields Fields[T]

	items      []T
	searchTerm string
	sortKey    string
	dir        Direction
	page       int
}

func NewView[T any](fields Fields[T]) *View[T] {
	return &View[T]{fields: fields, dir: Asc, page: 1}
}

func (v *View[T]) SetItems(items []T) {
	v.items = items
	v.page = 1
}

func (v *View[T]) SetSearch(term string) {
	v.searchTerm = term
	v.page = 1
}

// SetSort toggles direction when key is already the sort key and
// resets to ascending on a new key.
func (v *View[T]) SetSort(key string) {
	if v.sortKey == key {
		if v.dir == Asc {
			v.dir = Desc
		} else {
			v.dir = Asc
		}
	} else {
		v.sortKey = key
		v.dir = Asc
	}
	v.page = 1
}

// SetPage clamps n into the current page range.
func (v *View[T]) SetPage(n int) {
	res := Compute(v.items, v.fields, v.searchTerm, v.sortKey, v.dir, 1)
	v.page = ClampPage(n, res.PageCount)
}

func (v *View[T]) Page() int                { return v.page }
func (v *View[T]) SortKey() string          { return v.sortKey }
func (v *View[T]) SortDirection() Direction { return v.dir }
func (v *View[T]) SearchTerm() string       { return v.searchTerm }

// Result recomputes the pipeline for the current settings.
func (v *View[T]) Result() Result[T] {
	return Compute(v.items, v.fields, v.searchTerm, v.sortKey, v.dir, v.page)
}
