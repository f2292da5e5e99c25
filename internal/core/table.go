package core

import "slices"

// DefaultDelimiter is the field separator used when none is configured.
const DefaultDelimiter = ','

// Row is one record of a Table. Its length always equals the table's column count.
type Row []string

// Clone returns a copy of the row that shares no storage with r.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	return slices.Clone(r)
}

// Table is a fixed-width grid of string fields.
//
// A Table is only produced by Load, LoadWithOptions or New, all of which
// reject input that violates the shape. The Editor methods check their
// preconditions before touching any row, so every row has exactly
// Columns() fields at all times.
type Table struct {
	columns int
	header  Row
	rows    []Row
	comma   rune
}

// New builds a Table from in-memory records. Every record must have exactly
// columns fields. The records are copied.
func New(columns int, records [][]string) (*Table, error) {
	if columns <= 0 {
		return nil, &ShapeError{Dimension: "columns", Expected: 1, Actual: columns}
	}

	rows := make([]Row, 0, len(records))
	for i, rec := range records {
		if len(rec) != columns {
			return nil, &ShapeError{Line: i + 1, Dimension: "columns", Expected: columns, Actual: len(rec)}
		}
		rows = append(rows, Row(rec).Clone())
	}

	return &Table{columns: columns, rows: rows, comma: DefaultDelimiter}, nil
}

// Columns returns the declared column count.
func (t *Table) Columns() int { return t.columns }

// Len returns the current row count, excluding the header.
func (t *Table) Len() int { return len(t.rows) }

// Shape returns the table's current (columns, rows).
func (t *Table) Shape() Shape { return Shape{Columns: t.columns, Rows: len(t.rows)} }

// Delimiter returns the field separator the table was loaded with.
func (t *Table) Delimiter() rune { return t.comma }

// HasHeader reports whether the table carries a header record.
func (t *Table) HasHeader() bool { return t.header != nil }

// Header returns a copy of the header record, or nil if there is none.
func (t *Table) Header() Row { return t.header.Clone() }

// SetHeader attaches a header record. Passing nil removes it.
func (t *Table) SetHeader(header []string) error {
	if header == nil {
		t.header = nil
		return nil
	}
	if len(header) != t.columns {
		return &ShapeError{Dimension: "columns", Expected: t.columns, Actual: len(header)}
	}
	t.header = Row(header).Clone()
	return nil
}

// Row returns a copy of row i.
func (t *Table) Row(i int) (Row, error) {
	if err := t.checkRow(i); err != nil {
		return nil, err
	}
	return t.rows[i].Clone(), nil
}

// Rows returns copies of all rows in order.
func (t *Table) Rows() []Row {
	rows, _ := t.Page(0, len(t.rows))
	return rows
}

// Records returns all rows as plain string slices, header excluded.
func (t *Table) Records() [][]string {
	out := make([][]string, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.Clone()
	}
	return out
}

// Equal reports whether two tables hold the same header and rows.
func (t *Table) Equal(other *Table) bool {
	if other == nil {
		return false
	}
	if t.columns != other.columns || len(t.rows) != len(other.rows) {
		return false
	}
	if (t.header == nil) != (other.header == nil) || !slices.Equal(t.header, other.header) {
		return false
	}
	for i := range t.rows {
		if !slices.Equal(t.rows[i], other.rows[i]) {
			return false
		}
	}
	return true
}

func (t *Table) checkRow(i int) error {
	if i < 0 || i >= len(t.rows) {
		return &IndexError{Kind: "row", Index: i, Bound: len(t.rows)}
	}
	return nil
}

func (t *Table) checkColumn(j int) error {
	if j < 0 || j >= t.columns {
		return &IndexError{Kind: "column", Index: j, Bound: t.columns}
	}
	return nil
}
