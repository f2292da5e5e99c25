// Package core provides the table model and editing operations.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support
// reference. The CLI prints the message and code; the technical error goes
// to the log.
//
// # CSV Errors (CSV001-CSV099)
//
//	CSV001 - Malformed CSV: The file could not be parsed as CSV
//	         Action: Check for unbalanced quotes near the reported line
//	         Patterns: "parse error"
//
//	CSV002 - Encoding error: The file is not valid UTF-8
//	         Action: Re-save the file as UTF-8 or pass --sanitize
//	         Patterns: "encoding error"
//
//	CSV003 - Empty file: The file contains no records
//	         Action: Choose a CSV file with at least one record
//	         Patterns: "empty file"
//
// # Shape Errors (SHP001-SHP099)
//
//	SHP001 - Shape mismatch: Row or column count differs from the declared dimension
//	         Action: Check --dimension, or omit it to infer the shape
//	         Patterns: "shape mismatch"
//
// # Index Errors (IDX001-IDX099)
//
//	IDX001 - Index out of range: Row, column or page index is outside the table
//	         Action: Use zero-based indexes below the counts shown by info
//	         Patterns: "index out of range"
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: File exceeds the configured size limit
//	          Action: Raise CSVEDIT_MAX_FILE_SIZE or split the file
//	          Patterns: "file too large"
//
//	FILE002 - File not found: The file does not exist
//	          Action: Check the path and try again
//	          Patterns: "no such file"
//
//	FILE003 - Permission denied: The file cannot be accessed
//	          Action: Check file permissions
//	          Patterns: "permission denied"
//
//	FILE004 - I/O error: Reading or writing the file failed
//	          Action: Check the disk and the destination directory
//	          Patterns: "i/o error"
//
// # Export Errors (XLS001-XLS099)
//
//	XLS001 - Export failed: The workbook could not be written
//	         Action: Check the sheet name and table size
//	         Patterns: "xlsx export"
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Re-run with -dd and check the log output
//
// # Pattern Matching
//
// Patterns are matched case-insensitively with strings.Contains and the
// first match wins, so specific patterns come before general ones. A parse
// error caused by bad encoding carries both "encoding error" and
// "parse error"; CSV002 is listed first for that reason.
package core

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// =========================================================================
	// CSV content (CSV001-CSV003), specific before general
	// =========================================================================
	{
		pattern: "encoding error",
		msg: UserMessage{
			Message: "The file is not valid UTF-8",
			Action:  "Re-save the file as UTF-8 or pass --sanitize",
			Code:    "CSV002",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The file contains no records",
			Action:  "Choose a CSV file with at least one record",
			Code:    "CSV003",
		},
	},
	{
		pattern: "parse error",
		msg: UserMessage{
			Message: "The file could not be parsed as CSV",
			Action:  "Check for unbalanced quotes near the reported line",
			Code:    "CSV001",
		},
	},

	// =========================================================================
	// Table shape and indexes
	// =========================================================================
	{
		pattern: "shape mismatch",
		msg: UserMessage{
			Message: "Row or column count differs from the declared dimension",
			Action:  "Check --dimension, or omit it to infer the shape",
			Code:    "SHP001",
		},
	},
	{
		pattern: "index out of range",
		msg: UserMessage{
			Message: "Row, column or page index is outside the table",
			Action:  "Use zero-based indexes below the counts shown by info",
			Code:    "IDX001",
		},
	},

	// =========================================================================
	// File layer (FILE001-FILE004)
	// =========================================================================
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the configured size limit",
			Action:  "Raise CSVEDIT_MAX_FILE_SIZE or split the file",
			Code:    "FILE001",
		},
	},
	{
		pattern: "no such file",
		msg: UserMessage{
			Message: "The file does not exist",
			Action:  "Check the path and try again",
			Code:    "FILE002",
		},
	},
	{
		pattern: "permission denied",
		msg: UserMessage{
			Message: "The file cannot be accessed",
			Action:  "Check file permissions",
			Code:    "FILE003",
		},
	},
	{
		pattern: "xlsx export",
		msg: UserMessage{
			Message: "The workbook could not be written",
			Action:  "Check the sheet name and table size",
			Code:    "XLS001",
		},
	},
	{
		pattern: "i/o error",
		msg: UserMessage{
			Message: "Reading or writing the file failed",
			Action:  "Check the disk and the destination directory",
			Code:    "FILE004",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Re-run with -dd and check the log output",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It returns the first matching pattern, or the ERR000 fallback.
//
// Example:
//
//	_, err := core.Load("1,2\n3\n", 2, 0)
//	msg := core.MapError(err)
//	// msg.Code == "SHP001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern rather than the
// ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-facing message.
// Error() returns the user message; Unwrap() exposes the technical error.
type UserError struct {
	Technical error
	User      UserMessage
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
