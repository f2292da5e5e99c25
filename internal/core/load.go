package core

// load.go parses CSV text into a Table while enforcing the declared shape.
//
// Parsing follows RFC 4180 via encoding/csv: quoted fields may contain the
// delimiter, doubled quotes and newlines. One limitation is inherited from
// the parser: a carriage return directly before a newline inside a quoted
// field is dropped, so "a\r\nb" reads back as "a\nb".

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadOptions controls how CSV text is turned into a Table.
type LoadOptions struct {
	// Shape is the declared size. Zero components are inferred: columns from
	// the first record, rows from the record count.
	Shape Shape

	// Header treats the first record as a header. It must have Shape.Columns
	// fields and is not counted toward Shape.Rows.
	Header bool

	// Sanitize replaces invalid UTF-8 with U+FFFD instead of failing.
	Sanitize bool

	// Comma is the field delimiter (default ',').
	Comma rune
}

// Load parses raw CSV text into a Table with the expected dimensions.
// An expectedRows of 0 accepts any row count; an expectedColumns of 0 takes
// the width of the first record.
func Load(raw string, expectedColumns, expectedRows int) (*Table, error) {
	return LoadWithOptions(strings.NewReader(raw), LoadOptions{
		Shape: Shape{Columns: expectedColumns, Rows: expectedRows},
	})
}

// LoadWithOptions reads all of r and parses it into a Table.
func LoadWithOptions(r io.Reader, opts LoadOptions) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &IOError{Op: "read", Err: err}
	}
	return parse(data, opts)
}

func parse(data []byte, opts LoadOptions) (*Table, error) {
	if opts.Shape.Columns < 0 || opts.Shape.Rows < 0 {
		return nil, fmt.Errorf("%w: invalid declared shape %s", ErrShapeMismatch, opts.Shape)
	}
	comma := opts.Comma
	if comma == 0 {
		comma = DefaultDelimiter
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	if len(data) == 0 {
		return nil, &ParseError{Err: errEmptyFile}
	}

	if !utf8.Valid(data) {
		if !opts.Sanitize {
			return nil, &ParseError{Line: invalidUTF8Line(data), Err: errInvalidUTF8}
		}
		data = bytes.ToValidUTF8(data, []byte(string(utf8.RuneError)))
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = comma
	cr.FieldsPerRecord = -1 // width is checked below so the error names the declared shape

	t := &Table{columns: opts.Shape.Columns, comma: comma}
	first := true

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrapCSVError(err)
		}
		line, _ := cr.FieldPos(0)

		if t.columns == 0 {
			t.columns = len(rec)
		}
		if len(rec) != t.columns {
			return nil, &ShapeError{Line: line, Dimension: "columns", Expected: t.columns, Actual: len(rec)}
		}

		if first && opts.Header {
			t.header = Row(rec)
			first = false
			continue
		}
		first = false
		t.rows = append(t.rows, Row(rec))
	}

	if first {
		return nil, &ParseError{Err: errEmptyFile}
	}
	if opts.Shape.Rows > 0 && len(t.rows) != opts.Shape.Rows {
		return nil, &ShapeError{Dimension: "rows", Expected: opts.Shape.Rows, Actual: len(t.rows)}
	}

	return t, nil
}

func wrapCSVError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Line: pe.StartLine, Err: pe.Err}
	}
	return &ParseError{Err: err}
}

// invalidUTF8Line returns the 1-based line holding the first invalid byte.
func invalidUTF8Line(data []byte) int {
	line := 1
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			return line
		}
		if r == '\n' {
			line++
		}
		data = data[size:]
	}
	return line
}

// ParseRecord parses s as a single CSV record, as typed on a command line.
// An empty s is one empty field.
func ParseRecord(s string, comma rune) (Row, error) {
	if comma == 0 {
		comma = DefaultDelimiter
	}
	if s == "" {
		return Row{""}, nil
	}

	cr := csv.NewReader(strings.NewReader(s))
	cr.Comma = comma
	cr.FieldsPerRecord = -1

	rec, err := cr.Read()
	if err == io.EOF {
		return Row{""}, nil
	}
	if err != nil {
		return nil, wrapCSVError(err)
	}
	if _, err := cr.Read(); err != io.EOF {
		return nil, &ParseError{Line: 1, Err: errors.New("expected a single record")}
	}
	return Row(rec), nil
}
