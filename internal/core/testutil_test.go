package core

import (
	"strconv"
	"testing"
)

// numberedTable builds a two-column table whose row i is ["i", "vi"].
func numberedTable(t *testing.T, n int) *Table {
	t.Helper()

	records := make([][]string, n)
	for i := range records {
		records[i] = []string{strconv.Itoa(i), "v" + strconv.Itoa(i)}
	}
	tbl, err := New(2, records)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return tbl
}

// snapshot returns an independent copy of tbl for before/after comparisons.
func snapshot(t *testing.T, tbl *Table) *Table {
	t.Helper()

	cp, err := New(tbl.Columns(), tbl.Records())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if tbl.HasHeader() {
		if err := cp.SetHeader(tbl.Header()); err != nil {
			t.Fatalf("SetHeader() error = %v", err)
		}
	}
	cp.comma = tbl.comma
	return cp
}
