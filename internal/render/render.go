// Package render prints tables, session details and edit history for the
// terminal. It writes to any io.Writer and never reads input.
package render

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/JonMunkholm/csvedit/internal/core"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Options controls how a block of rows is drawn.
type Options struct {
	// Header labels the columns. When nil the columns are labelled with
	// their zero-based index.
	Header []string

	// Columns is the table width, used for index labels when Header is nil.
	Columns int

	// Start is the absolute index of the first row, shown in the "#" column.
	Start int

	// MaxCellWidth truncates wider cells; 0 disables truncation.
	MaxCellWidth int

	Color bool
}

// Table draws rows as an aligned grid with a leading row-number column.
func Table(w io.Writer, rows []core.Row, opts Options) error {
	p := painter(opts.Color)

	columns := opts.Columns
	if opts.Header != nil {
		columns = len(opts.Header)
	}

	header := make([]string, 0, columns+1)
	header = append(header, "#")
	for c := 0; c < columns; c++ {
		if opts.Header != nil {
			header = append(header, displayCell(opts.Header[c], opts.MaxCellWidth))
		} else {
			header = append(header, strconv.Itoa(c))
		}
	}

	table := tablewriter.NewTable(w,
		tablewriter.WithHeaderAutoFormat(tw.Off),
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
		tablewriter.WithTrimSpace(tw.Off),
	)
	table.Header(header)

	for i, r := range rows {
		line := make([]string, 0, len(r)+1)
		line = append(line, strconv.Itoa(opts.Start+i))
		for _, field := range r {
			line = append(line, displayCell(field, opts.MaxCellWidth))
		}
		if err := table.Append(line); err != nil {
			return fmt.Errorf("render row %d: %w", opts.Start+i, err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, p.dim("(no rows)"))
		return err
	}
	return nil
}

// Records writes rows as CSV, without a row-number column.
func Records(w io.Writer, comma rune, rows []core.Row) error {
	return core.WriteRows(w, comma, rows)
}

// Info prints the session summary.
func Info(w io.Writer, info core.Info, color bool) error {
	p := painter(color)

	header := "no"
	if info.HasHeader {
		header = "yes"
	}
	state := "saved"
	if info.Dirty {
		state = p.warn("unsaved changes")
	}

	lines := []struct{ label, value string }{
		{"File", info.Path},
		{"Size", strconv.FormatInt(info.Size, 10) + " bytes"},
		{"Modified", formatTime(info.ModTime)},
		{"Columns", strconv.Itoa(info.Shape.Columns)},
		{"Rows", strconv.Itoa(info.Shape.Rows)},
		{"Header", header},
		{"Delimiter", strconv.QuoteRune(info.Delimiter)},
		{"Pages", fmt.Sprintf("%d (page size %d)", info.Pages, info.PageSize)},
		{"Edits", strconv.Itoa(info.Edits)},
		{"State", state},
		{"Session", info.SessionID},
	}

	if _, err := fmt.Fprintln(w, p.title(info.Name)); err != nil {
		return err
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "  %s %s\n", p.label(fmt.Sprintf("%-10s", l.label+":")), l.value); err != nil {
			return err
		}
	}
	return nil
}

// Pages lists page bounds as "page N: rows S-E".
func Pages(w io.Writer, pages []core.Page, color bool) error {
	p := painter(color)

	if len(pages) == 0 {
		_, err := fmt.Fprintln(w, p.dim("(no pages)"))
		return err
	}
	for n, pg := range pages {
		count := fmt.Sprintf("(%d rows)", pg.Len())
		if pg.Len() == 1 {
			count = "(1 row)"
		}
		if _, err := fmt.Fprintf(w, "%s rows %d-%d %s\n", p.label(fmt.Sprintf("page %d:", n)), pg.Start, pg.End-1, p.dim(count)); err != nil {
			return err
		}
	}
	return nil
}

// Journal prints the session's edit history, oldest first.
func Journal(w io.Writer, entries []core.JournalEntry, color bool) error {
	p := painter(color)

	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, p.dim("(no edits)"))
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s %s %s\n",
			p.dim(fmt.Sprintf("%3d", e.Seq)),
			p.dim(e.At.Format("15:04:05")),
			e.Summary(),
		); err != nil {
			return err
		}
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.RFC3339)
}
