package core

import (
	"strconv"
	"time"
)

// EditAction identifies the kind of change recorded in the journal.
type EditAction string

const (
	ActionRowDelete  EditAction = "row_delete"
	ActionCellEdit   EditAction = "cell_edit"
	ActionRowReplace EditAction = "row_replace"
	ActionSave       EditAction = "save"
)

// JournalEntry records one change made during a session. It is a read-only
// history for display and logging; entries cannot be replayed backwards.
type JournalEntry struct {
	Seq      int
	Action   EditAction
	Row      int    // row index at the time of the edit, -1 for saves
	Column   int    // column index for cell edits, -1 otherwise
	OldValue string // previous field value for cell edits
	NewValue string // new field value for cell edits, destination for saves
	OldRow   Row    // removed or replaced row
	NewRow   Row    // replacement row
	At       time.Time
}

// Summary returns a one-line description of the entry.
func (e JournalEntry) Summary() string {
	switch e.Action {
	case ActionRowDelete:
		return "deleted row " + strconv.Itoa(e.Row)
	case ActionCellEdit:
		return "set (" + strconv.Itoa(e.Row) + "," + strconv.Itoa(e.Column) + ") " + strconv.Quote(e.OldValue) + " -> " + strconv.Quote(e.NewValue)
	case ActionRowReplace:
		return "replaced row " + strconv.Itoa(e.Row)
	case ActionSave:
		return "saved to " + e.NewValue
	default:
		return string(e.Action)
	}
}
