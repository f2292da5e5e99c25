package core

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

// Serialize renders the table as CSV text: the header first when present,
// then one newline-terminated record per row. Fields are quoted exactly
// where the Loader needs it to read them back unchanged.
func Serialize(t *Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write streams the CSV form of t to w.
func Write(w io.Writer, t *Table) error {
	records := make([]Row, 0, len(t.rows)+1)
	if t.header != nil {
		records = append(records, t.header)
	}
	records = append(records, t.rows...)

	return WriteRows(w, t.comma, records)
}

// WriteRows writes rows as CSV records using the given delimiter.
func WriteRows(w io.Writer, comma rune, rows []Row) error {
	if comma == 0 {
		comma = DefaultDelimiter
	}
	cw := csv.NewWriter(w)
	cw.Comma = comma

	for i, r := range rows {
		// A lone empty field would be written as a blank line, which the
		// reader skips. Quote it so the record survives a reload.
		if len(r) == 1 && r[0] == "" {
			cw.Flush()
			if err := cw.Error(); err != nil {
				return fmt.Errorf("write record %d: %w", i, err)
			}
			if _, err := io.WriteString(w, "\"\"\n"); err != nil {
				return fmt.Errorf("write record %d: %w", i, err)
			}
			continue
		}
		if err := cw.Write(r); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
