package core

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/JonMunkholm/csvedit/internal/export"
	"github.com/JonMunkholm/csvedit/internal/logging"
	"github.com/google/uuid"
)

// OpenOptions controls how a Session reads and writes its file.
type OpenOptions struct {
	Load        LoadOptions
	MaxFileSize int64 // 0 uses DefaultMaxFileSize
	Backup      bool  // keep path.bak when overwriting an existing file
	PageSize    int   // used for Info; 0 uses DefaultPageSize
}

// Session owns the single live Table of an invocation together with the
// file it came from. Commands receive the Session explicitly; nothing about
// the loaded file lives in package state.
type Session struct {
	id      string
	path    string
	file    FileInfo
	table   *Table
	opts    OpenOptions
	journal []JournalEntry
	dirty   bool
	now     func() time.Time
	logger  *slog.Logger
}

// Info describes the session's file and table.
type Info struct {
	SessionID string
	Path      string
	Name      string
	Size      int64
	ModTime   time.Time
	Shape     Shape
	HasHeader bool
	Delimiter rune
	PageSize  int
	Pages     int
	Edits     int
	Dirty     bool
}

// Open reads path and loads it into a new Session.
func Open(ctx context.Context, path string, opts OpenOptions) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("open cancelled: %w", err)
	}

	id := uuid.NewString()
	logger := logging.WithFields(ctx, "session_id", id, "file", path)

	data, info, err := ReadFile(path, opts.MaxFileSize)
	if err != nil {
		return nil, err
	}

	t, err := LoadWithOptions(bytes.NewReader(data), opts.Load)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	logger.Info("table loaded",
		"rows", t.Len(),
		"columns", t.Columns(),
		"header", t.HasHeader(),
		"bytes", info.Size,
	)

	return &Session{
		id:     id,
		path:   path,
		file:   info,
		table:  t,
		opts:   opts,
		now:    time.Now,
		logger: logger,
	}, nil
}

// NewSession wraps an already built table, for callers that do not start
// from a file on disk. path is the default save destination.
func NewSession(t *Table, path string, opts OpenOptions) *Session {
	id := uuid.NewString()
	return &Session{
		id:     id,
		path:   path,
		file:   FileInfo{Path: path, Name: filepath.Base(path)},
		table:  t,
		opts:   opts,
		now:    time.Now,
		logger: logging.WithFields(context.Background(), "session_id", id, "file", path),
	}
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Path returns the source path, the default save destination.
func (s *Session) Path() string { return s.path }

// Table returns the live table. Mutate it through the Session methods so
// edits are journaled.
func (s *Session) Table() *Table { return s.table }

// Dirty reports whether the table has unsaved edits relative to its source.
func (s *Session) Dirty() bool { return s.dirty }

// Journal returns a copy of the edit history.
func (s *Session) Journal() []JournalEntry {
	out := make([]JournalEntry, len(s.journal))
	copy(out, s.journal)
	return out
}

// Info returns a snapshot of the session state.
func (s *Session) Info() Info {
	size := s.opts.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	return Info{
		SessionID: s.id,
		Path:      s.path,
		Name:      s.file.Name,
		Size:      s.file.Size,
		ModTime:   s.file.ModTime,
		Shape:     s.table.Shape(),
		HasHeader: s.table.HasHeader(),
		Delimiter: s.table.Delimiter(),
		PageSize:  size,
		Pages:     s.table.PageCount(size),
		Edits:     s.editCount(),
		Dirty:     s.dirty,
	}
}

// DeleteRow removes row i from the table.
func (s *Session) DeleteRow(i int) error {
	removed, err := s.table.DeleteRow(i)
	if err != nil {
		return err
	}

	s.record(JournalEntry{Action: ActionRowDelete, Row: i, Column: -1, OldRow: removed})
	s.logger.Info("row deleted", "row", i, "rows", s.table.Len())
	return nil
}

// SetField replaces the field at (row, col).
func (s *Session) SetField(row, col int, value string) error {
	old, err := s.table.SetField(row, col, value)
	if err != nil {
		return err
	}

	s.warnCRLF(row, value)
	s.record(JournalEntry{Action: ActionCellEdit, Row: row, Column: col, OldValue: old, NewValue: value})
	s.logger.Info("field updated", "row", row, "column", col)
	s.logger.Debug("field values", "row", row, "column", col, "old", old, "new", value)
	return nil
}

// ReplaceRow substitutes fields for row i.
func (s *Session) ReplaceRow(i int, fields []string) error {
	old, err := s.table.ReplaceRow(i, fields)
	if err != nil {
		return err
	}

	s.warnCRLF(i, fields...)
	s.record(JournalEntry{Action: ActionRowReplace, Row: i, Column: -1, OldRow: old, NewRow: Row(fields).Clone()})
	s.logger.Info("row replaced", "row", i)
	return nil
}

// Save writes the table as CSV to dest, or to the source path when dest is
// empty. Saving to the source path clears the dirty flag.
func (s *Session) Save(ctx context.Context, dest string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("save cancelled: %w", err)
	}
	if dest == "" {
		dest = s.path
	}
	if dest == "" {
		return "", &IOError{Op: "save", Err: fmt.Errorf("no destination path")}
	}

	data, err := Serialize(s.table)
	if err != nil {
		return "", fmt.Errorf("serialize: %w", err)
	}
	if err := WriteFileAtomic(dest, data, s.opts.Backup); err != nil {
		return "", err
	}

	if samePath(dest, s.path) {
		s.dirty = false
		if info, err := Stat(dest); err == nil {
			s.file = info
		} else {
			s.logger.Warn("stat after save failed", "dest", dest, "error", err)
		}
	}
	s.record(JournalEntry{Action: ActionSave, Row: -1, Column: -1, NewValue: dest})
	s.logger.Info("table saved", "dest", dest, "bytes", len(data), "rows", s.table.Len())
	return dest, nil
}

// Export writes the table as an .xlsx workbook to dest.
func (s *Session) Export(ctx context.Context, dest, sheet string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("export cancelled: %w", err)
	}

	var header []string
	if s.table.HasHeader() {
		header = s.table.Header()
	}
	data, err := export.XLSX(sheet, header, s.table.Records())
	if err != nil {
		return err
	}
	if err := WriteFileAtomic(dest, data, false); err != nil {
		return err
	}

	s.logger.Info("table exported", "dest", dest, "sheet", sheet, "bytes", len(data))
	return nil
}

// warnCRLF logs fields holding "\r\n": the CSV reader turns it into "\n"
// when the saved file is loaded again.
func (s *Session) warnCRLF(row int, values ...string) {
	for col, v := range values {
		if strings.Contains(v, "\r\n") {
			s.logger.Warn("field contains CRLF; it will read back as LF after saving", "row", row, "value_index", col)
		}
	}
}

func (s *Session) record(e JournalEntry) {
	e.Seq = len(s.journal) + 1
	e.At = s.now()
	s.journal = append(s.journal, e)
	if e.Action != ActionSave {
		s.dirty = true
	}
}

func (s *Session) editCount() int {
	n := 0
	for _, e := range s.journal {
		if e.Action != ActionSave {
			n++
		}
	}
	return n
}

func samePath(a, b string) bool {
	if a == b {
		return true
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
