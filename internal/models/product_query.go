package models

import (
	"fmt"
	"strings"
)

// ProductSort selects the ordering of a product listing.
type ProductSort string

const (
	SortNameAsc  ProductSort = "name_asc"
	SortPriceAsc ProductSort = "price_asc"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 200
)

// ParseProductSort converts a query-string token into a ProductSort.
// An empty token yields the zero value, which Normalize resolves to SortNameAsc.
func ParseProductSort(s string) (ProductSort, error) {
	switch ProductSort(s) {
	case "":
		return "", nil
	case SortNameAsc, SortPriceAsc:
		return ProductSort(s), nil
	default:
		return "", fmt.Errorf("unknown sort %q", s)
	}
}

// ProductQuery is the request-scoped description of a product listing.
type ProductQuery struct {
	Term       *string
	CategoryID *string
	Sort       ProductSort
	Page       int
	PageSize   int
}

// Normalize returns a copy of q with defaults applied and bounds clamped.
// A blank search term is dropped.
func (q ProductQuery) Normalize() ProductQuery {
	n := q

	if n.Sort == "" {
		n.Sort = SortNameAsc
	}
	if n.Page <= 0 {
		n.Page = 1
	}
	switch {
	case n.PageSize <= 0:
		n.PageSize = DefaultPageSize
	case n.PageSize > MaxPageSize:
		n.PageSize = MaxPageSize
	}

	n.Term = nil
	if q.Term != nil {
		if t := strings.TrimSpace(*q.Term); t != "" {
			n.Term = &t
		}
	}

	if q.CategoryID != nil {
		id := *q.CategoryID
		n.CategoryID = &id
	}

	return n
}

// Offset is the number of rows skipped before the requested page.
func (q ProductQuery) Offset() int64 {
	return int64(q.Page-1) * int64(q.PageSize)
}
