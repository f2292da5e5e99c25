package core

import (
	"errors"
	"fmt"
	"io/fs"
)

// Error kinds reported by the table operations. Callers match them with
// errors.Is; the concrete error types below carry the details.
var (
	ErrParse           = errors.New("parse error")
	ErrShapeMismatch   = errors.New("shape mismatch")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrIO              = errors.New("i/o error")
)

var (
	errEmptyFile   = errors.New("empty file")
	errInvalidUTF8 = errors.New("encoding error: invalid UTF-8")
)

// ParseError reports CSV text that could not be split into records.
type ParseError struct {
	Line int // 1-based line of the offending record, 0 if unknown
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error on line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("parse error: %v", e.Err)
}

func (e *ParseError) Unwrap() error        { return e.Err }
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// ShapeError reports a row or column count that differs from the declared shape.
type ShapeError struct {
	Line      int    // 1-based line of the offending record, 0 for whole-file counts
	Dimension string // "columns" or "rows"
	Expected  int
	Actual    int
}

func (e *ShapeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("shape mismatch: line %d has %d %s, expected %d",
			e.Line, e.Actual, e.Dimension, e.Expected)
	}
	return fmt.Sprintf("shape mismatch: got %d %s, expected %d", e.Actual, e.Dimension, e.Expected)
}

func (e *ShapeError) Is(target error) bool { return target == ErrShapeMismatch }

// IndexError reports a row or column index outside the table's current bounds.
type IndexError struct {
	Kind  string // "row", "column" or "page"
	Index int
	Bound int // exclusive upper bound at the time of the call
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index out of range: %s %d not in [0, %d)", e.Kind, e.Index, e.Bound)
}

func (e *IndexError) Is(target error) bool { return target == ErrIndexOutOfRange }

// IOError wraps a failure from the file layer. The OS error is kept intact
// so callers can still test for fs.ErrNotExist and friends.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	var pe *fs.PathError
	if errors.As(e.Err, &pe) {
		return fmt.Sprintf("i/o error: %v", e.Err)
	}
	if e.Path == "" {
		return fmt.Sprintf("i/o error: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("i/o error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error        { return e.Err }
func (e *IOError) Is(target error) bool { return target == ErrIO }
