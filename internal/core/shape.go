package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Shape is the declared (columns, rows) size of a table. A zero component
// means the dimension is inferred from the data when loading.
type Shape struct {
	Columns int
	Rows    int
}

// ParseShape parses the command-line form "rows,cols".
func ParseShape(s string) (Shape, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Shape{}, fmt.Errorf("invalid dimension %q: expected rows,cols", s)
	}

	rows, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || rows < 0 {
		return Shape{}, fmt.Errorf("invalid dimension %q: rows must be a non-negative integer", s)
	}
	cols, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || cols < 0 {
		return Shape{}, fmt.Errorf("invalid dimension %q: columns must be a non-negative integer", s)
	}

	return Shape{Columns: cols, Rows: rows}, nil
}

// String returns the shape in "rows,cols" form.
func (s Shape) String() string {
	return strconv.Itoa(s.Rows) + "," + strconv.Itoa(s.Columns)
}

// IsZero reports whether both dimensions are left to inference.
func (s Shape) IsZero() bool {
	return s.Columns == 0 && s.Rows == 0
}
