package core

// DefaultPageSize is used whenever a page size of zero or less is given.
const DefaultPageSize = 10

// Page is the half-open row range [Start, End) covered by one page.
type Page struct {
	Start int
	End   int
}

// Len returns the number of rows on the page.
func (p Page) Len() int { return p.End - p.Start }

// Page returns copies of rows [start, end). start == end yields an empty,
// non-nil slice. The table is never modified.
func (t *Table) Page(start, end int) ([]Row, error) {
	n := len(t.rows)
	switch {
	case start < 0 || start > n:
		return nil, &IndexError{Kind: "row", Index: start, Bound: n + 1}
	case end < start || end > n:
		return nil, &IndexError{Kind: "row", Index: end, Bound: n + 1}
	}

	out := make([]Row, 0, end-start)
	for _, r := range t.rows[start:end] {
		out = append(out, r.Clone())
	}
	return out, nil
}

// PageN returns page number (zero-based) of the given size, along with its
// bounds. The last page may be short. Page 0 of an empty table is empty;
// any other page starting at or past the end is out of range.
func (t *Table) PageN(size, number int) ([]Row, Page, error) {
	if size <= 0 {
		size = DefaultPageSize
	}

	bounds, err := t.pageBounds(size, number)
	if err != nil {
		return nil, Page{}, err
	}

	rows, err := t.Page(bounds.Start, bounds.End)
	if err != nil {
		return nil, Page{}, err
	}
	return rows, bounds, nil
}

// Pages lists the bounds of every page for the given size, in order.
// An empty table has no pages.
func (t *Table) Pages(size int) []Page {
	if size <= 0 {
		size = DefaultPageSize
	}

	pages := make([]Page, 0, t.PageCount(size))
	for start := 0; start < len(t.rows); start += size {
		pages = append(pages, Page{Start: start, End: min(start+size, len(t.rows))})
	}
	return pages
}

// PageCount returns how many pages of the given size the table spans.
func (t *Table) PageCount(size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	return (len(t.rows) + size - 1) / size
}

func (t *Table) pageBounds(size, number int) (Page, error) {
	count := t.PageCount(size)
	if number < 0 || (number >= count && !(number == 0 && count == 0)) {
		return Page{}, &IndexError{Kind: "page", Index: number, Bound: count}
	}

	start := number * size
	return Page{Start: start, End: min(start+size, len(t.rows))}, nil
}
