// Package core provides the table model and editing operations for csvedit.
//
// The package has no terminal or CLI dependencies; commands, the interactive
// shell and tests all drive it the same way.
//
// # Table
//
// A [Table] is a grid of string fields with a fixed column count. It is
// built only by [Load], [LoadWithOptions] or [New], which reject any record
// whose width differs from the declared shape:
//
//	t, err := core.Load("1,2,3\n4,5,6\n", 3, 2)
//
// Pagination ([Table.Page], [Table.PageN], [Table.Pages]) returns copies and
// never touches the table. Edits ([Table.DeleteRow], [Table.SetField],
// [Table.ReplaceRow]) validate before mutating, so a failed edit leaves the
// table exactly as it was.
//
// # Round trip
//
// [Serialize] writes CSV that [LoadWithOptions] reads back into an equal
// table, given the same delimiter and header setting.
//
// # Session
//
// A [Session] owns the one live table of an invocation, along with its
// source file, an edit journal and the save/export paths. Writes go through
// [WriteFileAtomic].
//
// # Error Handling
//
// Failures are reported as [ErrParse], [ErrShapeMismatch],
// [ErrIndexOutOfRange] or [ErrIO] (match with errors.Is). [MapError] turns
// any of them into a user message with a support code.
package core
