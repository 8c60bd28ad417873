package repository

import (
	"reflect"
	"testing"
	"time"
)

func TestMergeQuerySpecsOrderIndependent(t *testing.T) {
	jan := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	a := QuerySpec{Search: "spa", SearchColumns: []string{"invoice_no"}, DateColumn: "invoice_date", DateFrom: &jan, DateTo: &mar}
	b := QuerySpec{SearchColumns: []string{"note", "invoice_no"}, Equals: map[string]any{"status": 0}, DateFrom: &feb}
	c := QuerySpec{Equals: map[string]any{"outlet_id": "x"}, SortBy: "invoice_date", SortOrder: "asc"}

	ab, err := MergeQuerySpecs(a, b, c)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	ba, err := MergeQuerySpecs(c, b, a)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if !reflect.DeepEqual(ab, ba) {
		t.Errorf("merge depends on order:\n%+v\n%+v", ab, ba)
	}

	if !ab.DateFrom.Equal(feb) || !ab.DateTo.Equal(mar) {
		t.Errorf("date window = %v..%v, want feb..mar", ab.DateFrom, ab.DateTo)
	}
	if want := []string{"invoice_no", "note"}; !reflect.DeepEqual(ab.SearchColumns, want) {
		t.Errorf("SearchColumns = %v, want %v", ab.SearchColumns, want)
	}
	if len(ab.Equals) != 2 {
		t.Errorf("Equals = %v, want two filters", ab.Equals)
	}
}

func TestMergeQuerySpecsConflict(t *testing.T) {
	if _, err := MergeQuerySpecs(QuerySpec{Search: "a"}, QuerySpec{Search: "b"}); err == nil {
		t.Errorf("expected conflict on search")
	}
	if _, err := MergeQuerySpecs(
		QuerySpec{Equals: map[string]any{"status": 0}},
		QuerySpec{Equals: map[string]any{"status": 1}},
	); err == nil {
		t.Errorf("expected conflict on equals")
	}
	if _, err := MergeQuerySpecs(QuerySpec{Search: "a"}, QuerySpec{Search: "a"}); err != nil {
		t.Errorf("identical values should merge, got %v", err)
	}
}

func TestSortDirection(t *testing.T) {
	if (QuerySpec{SortOrder: "asc"}).SortDirection() != "ASC" {
		t.Errorf("asc not recognised")
	}
	if (QuerySpec{}).SortDirection() != "DESC" {
		t.Errorf("default should be DESC")
	}
}
