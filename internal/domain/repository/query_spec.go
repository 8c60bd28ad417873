package repository

import (
	"fmt"
	"reflect"
	"sort"
	"time"
)

// QuerySpec describes a list query: free-text search, exact matches, a date
// window and ordering. Zero values mean "not set".
type QuerySpec struct {
	Search        string
	SearchColumns []string
	Equals        map[string]any
	DateColumn    string
	DateFrom      *time.Time
	DateTo        *time.Time
	SortBy        string
	SortOrder     string
}

// SortDirection normalizes SortOrder to ASC or DESC
func (q QuerySpec) SortDirection() string {
	if q.SortOrder == "asc" || q.SortOrder == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// MergeQuerySpecs combines specs. The result does not depend on argument
// order: date windows intersect, search columns and equality filters union,
// and two different values for the same scalar field are an error.
func MergeQuerySpecs(specs ...QuerySpec) (QuerySpec, error) {
	var out QuerySpec
	columns := map[string]bool{}

	pick := func(name string, dst *string, v string) error {
		if v == "" {
			return nil
		}
		if *dst != "" && *dst != v {
			return fmt.Errorf("conflicting %s: %q and %q", name, *dst, v)
		}
		*dst = v
		return nil
	}

	for _, s := range specs {
		if err := pick("search", &out.Search, s.Search); err != nil {
			return QuerySpec{}, err
		}
		if err := pick("date column", &out.DateColumn, s.DateColumn); err != nil {
			return QuerySpec{}, err
		}
		if err := pick("sort column", &out.SortBy, s.SortBy); err != nil {
			return QuerySpec{}, err
		}
		if err := pick("sort order", &out.SortOrder, s.SortOrder); err != nil {
			return QuerySpec{}, err
		}
		for _, c := range s.SearchColumns {
			columns[c] = true
		}
		for k, v := range s.Equals {
			if out.Equals == nil {
				out.Equals = map[string]any{}
			}
			if existing, ok := out.Equals[k]; ok && !reflect.DeepEqual(existing, v) {
				return QuerySpec{}, fmt.Errorf("conflicting values for %s", k)
			}
			out.Equals[k] = v
		}
		if s.DateFrom != nil && (out.DateFrom == nil || s.DateFrom.After(*out.DateFrom)) {
			from := *s.DateFrom
			out.DateFrom = &from
		}
		if s.DateTo != nil && (out.DateTo == nil || s.DateTo.Before(*out.DateTo)) {
			to := *s.DateTo
			out.DateTo = &to
		}
	}

	for c := range columns {
		out.SearchColumns = append(out.SearchColumns, c)
	}
	sort.Strings(out.SearchColumns)
	return out, nil
}
