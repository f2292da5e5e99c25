package core

import (
	"errors"
	"slices"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("copies records", func(t *testing.T) {
		records := [][]string{{"a", "b"}}
		tbl, err := New(2, records)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		records[0][0] = "changed"

		row, _ := tbl.Row(0)
		if row[0] != "a" {
			t.Errorf("table aliases input: got %q", row[0])
		}
	})

	t.Run("rejects ragged records", func(t *testing.T) {
		_, err := New(2, [][]string{{"a", "b"}, {"c"}})
		var se *ShapeError
		if !errors.As(err, &se) || se.Line != 2 {
			t.Errorf("New() error = %v, want ShapeError on line 2", err)
		}
	})

	t.Run("rejects zero columns", func(t *testing.T) {
		if _, err := New(0, nil); !errors.Is(err, ErrShapeMismatch) {
			t.Errorf("New() error = %v, want ErrShapeMismatch", err)
		}
	})

	t.Run("empty table", func(t *testing.T) {
		tbl, err := New(3, nil)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if tbl.Len() != 0 || tbl.Columns() != 3 {
			t.Errorf("shape = %v, want 0,3", tbl.Shape())
		}
	})
}

func TestTable_RowReturnsCopy(t *testing.T) {
	tbl := numberedTable(t, 3)

	row, err := tbl.Row(1)
	if err != nil {
		t.Fatalf("Row() error = %v", err)
	}
	row[0] = "mutated"

	again, _ := tbl.Row(1)
	if again[0] != "1" {
		t.Errorf("Row(1)[0] = %q after caller mutation, want %q", again[0], "1")
	}

	if _, err := tbl.Row(3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Row(3) error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestTable_SetHeader(t *testing.T) {
	tbl := numberedTable(t, 1)

	if err := tbl.SetHeader([]string{"only-one"}); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("SetHeader() error = %v, want ErrShapeMismatch", err)
	}
	if tbl.HasHeader() {
		t.Error("failed SetHeader attached a header")
	}

	if err := tbl.SetHeader([]string{"id", "value"}); err != nil {
		t.Fatalf("SetHeader() error = %v", err)
	}
	if !slices.Equal(tbl.Header(), Row{"id", "value"}) {
		t.Errorf("Header() = %q", tbl.Header())
	}

	if err := tbl.SetHeader(nil); err != nil || tbl.HasHeader() {
		t.Errorf("SetHeader(nil) did not remove header: err=%v", err)
	}
}

func TestTable_Equal(t *testing.T) {
	a := numberedTable(t, 3)
	b := numberedTable(t, 3)

	if !a.Equal(b) {
		t.Error("identical tables not equal")
	}
	if _, err := b.SetField(2, 1, "x"); err != nil {
		t.Fatal(err)
	}
	if a.Equal(b) {
		t.Error("tables with different fields reported equal")
	}
	if a.Equal(nil) {
		t.Error("table equal to nil")
	}

	c := numberedTable(t, 3)
	if err := c.SetHeader([]string{"h1", "h2"}); err != nil {
		t.Fatal(err)
	}
	if a.Equal(c) {
		t.Error("header difference ignored")
	}
}

func TestParseShape(t *testing.T) {
	tests := []struct {
		in      string
		want    Shape
		wantErr bool
	}{
		{"2,3", Shape{Columns: 3, Rows: 2}, false},
		{" 10 , 4 ", Shape{Columns: 4, Rows: 10}, false},
		{"0,0", Shape{}, false},
		{"3", Shape{}, true},
		{"a,b", Shape{}, true},
		{"-1,2", Shape{}, true},
		{"1,2,3", Shape{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseShape(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseShape(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseShape(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}

	if s := (Shape{Columns: 3, Rows: 2}).String(); s != "2,3" {
		t.Errorf("String() = %q, want %q", s, "2,3")
	}
}
