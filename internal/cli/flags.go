package cli

import (
	"fmt"

	"github.com/JonMunkholm/csvedit/internal/core"
	"github.com/spf13/pflag"
)

// shapeValue is the --dimension flag, "rows,cols".
type shapeValue struct {
	shape core.Shape
}

var _ pflag.Value = (*shapeValue)(nil)

func (v *shapeValue) String() string {
	if v.shape.IsZero() {
		return ""
	}
	return v.shape.String()
}

func (v *shapeValue) Set(s string) error {
	shape, err := core.ParseShape(s)
	if err != nil {
		return err
	}
	v.shape = shape
	return nil
}

func (v *shapeValue) Type() string { return "rows,cols" }

// formatValue is the --format flag.
type formatValue string

const (
	formatTable formatValue = "table"
	formatCSV   formatValue = "csv"
)

var _ pflag.Value = (*formatValue)(nil)

func (v *formatValue) String() string { return string(*v) }

func (v *formatValue) Set(s string) error {
	switch formatValue(s) {
	case formatTable, formatCSV:
		*v = formatValue(s)
		return nil
	default:
		return fmt.Errorf("must be %q or %q", formatTable, formatCSV)
	}
}

func (v *formatValue) Type() string { return "table|csv" }

// usageError marks a bad invocation: unknown flags, missing arguments and
// the like. It maps to exit status 2.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}
