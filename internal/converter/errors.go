package converter

import (
	"errors"
	"fmt"

	"github.com/ginjaninja78/csv-wizard/internal/types"
)

// =============================================================================
// ERROR TAXONOMY
// =============================================================================
//
// Row-level problems (ErrMalformedRow, ErrIndexLookup) are recovered locally:
// the row is skipped, reported and processing continues.
//
// File-level problems (ErrMissingColumn, ErrEmptyFile, I/O errors) abort the
// current file before anything is written back, so the file is left as it was.

var (
	// ErrMalformedRow is reported for a row with fewer cells than the branch needs.
	ErrMalformedRow = errors.New("malformed row")

	// ErrIndexLookup is reported when a resolved column is missing from a row.
	ErrIndexLookup = errors.New("column index lookup failed")

	// ErrMissingColumn aborts a file whose header lacks a required column.
	ErrMissingColumn = errors.New("missing required column")

	// ErrEmptyFile aborts a file that has no header row at all.
	ErrEmptyFile = errors.New("file is empty")
)

// RowError describes a single skipped row.
type RowError struct {
	// Line is the 1-based record number in the source file. The header is line 1.
	Line int

	// Row is the skipped row exactly as it was read.
	Row types.Row

	// Err is ErrMalformedRow or ErrIndexLookup, possibly wrapped with detail.
	Err error
}

// Error implements the error interface.
func (e *RowError) Error() string {
	return fmt.Sprintf("row %d %q: %v", e.Line, []string(e.Row), e.Err)
}

// Unwrap returns the underlying cause.
func (e *RowError) Unwrap() error {
	return e.Err
}

// ColumnError reports a required column that the header does not contain.
type ColumnError struct {
	Column string
	Header types.Row
}

// Error implements the error interface.
func (e *ColumnError) Error() string {
	return fmt.Sprintf("%v: %q not found in header %q", ErrMissingColumn, e.Column, []string(e.Header))
}

// Is lets errors.Is match ColumnError against ErrMissingColumn.
func (e *ColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}
