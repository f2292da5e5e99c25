package core

// edit.go holds the mutating operations. Each one checks every precondition
// before it touches the table, so a failed call leaves the table unchanged.

// DeleteRow removes row i and shifts the following rows up by one.
// It returns the removed row.
func (t *Table) DeleteRow(i int) (Row, error) {
	if err := t.checkRow(i); err != nil {
		return nil, err
	}

	removed := t.rows[i]
	copy(t.rows[i:], t.rows[i+1:])
	t.rows[len(t.rows)-1] = nil
	t.rows = t.rows[:len(t.rows)-1]

	return removed, nil
}

// SetField replaces the field at (row, col) and returns the previous value.
func (t *Table) SetField(row, col int, value string) (string, error) {
	if err := t.checkRow(row); err != nil {
		return "", err
	}
	if err := t.checkColumn(col); err != nil {
		return "", err
	}

	old := t.rows[row][col]
	t.rows[row][col] = value
	return old, nil
}

// ReplaceRow substitutes a copy of fields for row i and returns the
// previous row. fields must have exactly Columns() entries.
func (t *Table) ReplaceRow(i int, fields []string) (Row, error) {
	if err := t.checkRow(i); err != nil {
		return nil, err
	}
	if len(fields) != t.columns {
		return nil, &ShapeError{Dimension: "columns", Expected: t.columns, Actual: len(fields)}
	}

	old := t.rows[i]
	t.rows[i] = Row(fields).Clone()
	return old, nil
}
