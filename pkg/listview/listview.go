// Package listview derives display-ready views over in-memory collections:
// free-text filter, optional exact-date filter, single-column sort and
// fixed-size pagination, in that order.
package listview

import (
	"sort"
	"strings"
	"time"

	"github.com/kmaina/stockroom-api/pkg/pagination"
)

// DefaultPerPage is the page size used when a list request does not name one.
const DefaultPerPage = 5

// Params represents the query parameters of a list request
type Params struct {
	Search    string `form:"search" json:"search"`
	Date      string `form:"date" json:"date"` // exact-date filter, "2006-01-02"
	SortBy    string `form:"sort_by" json:"sort_by"`
	SortOrder string `form:"sort_order" json:"sort_order"` // "asc" (default) or "desc"
	Page      int    `form:"page" json:"page"`
	PerPage   int    `form:"per_page" json:"per_page"`
}

// Comparator is a three-way comparison over two items for one sort column.
type Comparator[T any] func(a, b T) int

// View describes how one entity type is searched, dated and sorted.
type View[T any] struct {
	// SearchFields returns the strings matched against the search term.
	SearchFields func(T) []string
	// DateOf returns the item's date and whether it has one; items without
	// a date never match a date filter.
	DateOf func(T) (time.Time, bool)
	// Sorters maps sort column names to comparators.
	Sorters map[string]Comparator[T]
	// Missing reports whether the item has no value for the column; such
	// items sort after everything else regardless of direction.
	Missing func(item T, column string) bool
	// DefaultSort is used when the requested column is unknown or empty.
	DefaultSort string
}

// Apply filters, sorts and paginates items. Filtering is a case-insensitive
// substring match over SearchFields. Sorting is stable: items comparing
// equal keep their relative order across repeated applications. Requesting
// a page past the end yields an empty page, never an error.
func (v *View[T]) Apply(items []T, p Params) *pagination.PaginatedResult[T] {
	filtered := v.filter(items, p)
	v.sort(filtered, p)

	perPage := p.PerPage
	if perPage == 0 {
		perPage = DefaultPerPage
	}
	params := &pagination.PaginationParams{Page: p.Page, PerPage: perPage}
	params.Validate()

	total := int64(len(filtered))
	start := params.Offset()
	end := start + params.PerPage
	var page []T
	switch {
	case start >= len(filtered):
		page = []T{}
	case end > len(filtered):
		page = filtered[start:]
	default:
		page = filtered[start:end]
	}

	return pagination.NewPaginatedResult(page, pagination.NewPagination(params.Page, params.PerPage, total))
}

func (v *View[T]) filter(items []T, p Params) []T {
	out := make([]T, 0, len(items))
	term := strings.ToLower(strings.TrimSpace(p.Search))

	var filterDate time.Time
	filterByDate := false
	if p.Date != "" {
		if d, err := time.Parse("2006-01-02", p.Date); err == nil {
			filterDate = d
			filterByDate = true
		}
	}

	for _, item := range items {
		if term != "" {
			if v.SearchFields == nil || !matches(v.SearchFields(item), term) {
				continue
			}
		}
		if filterByDate {
			d, ok := time.Time{}, false
			if v.DateOf != nil {
				d, ok = v.DateOf(item)
			}
			if !ok || !sameDay(d, filterDate) {
				continue
			}
		}
		out = append(out, item)
	}
	return out
}

func (v *View[T]) sort(items []T, p Params) {
	column := p.SortBy
	if _, ok := v.Sorters[column]; !ok {
		column = v.DefaultSort
	}
	cmp, ok := v.Sorters[column]
	if !ok {
		return
	}

	desc := strings.EqualFold(p.SortOrder, "desc")

	sort.SliceStable(items, func(i, j int) bool {
		if v.Missing != nil {
			mi, mj := v.Missing(items[i], column), v.Missing(items[j], column)
			if mi != mj {
				return mj // items without a value sort last either way
			}
			if mi {
				return false
			}
		}
		c := cmp(items[i], items[j])
		if desc {
			c = -c
		}
		return c < 0
	})
}

func matches(fields []string, term string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// CompareStrings is a case-insensitive string comparator.
func CompareStrings(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// CompareInt64 compares two int64 values.
func CompareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// CompareTimes compares two timestamps.
func CompareTimes(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}
