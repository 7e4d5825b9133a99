package configgen

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a supported spreadsheet.
var ErrInvalidFormat = errors.New("invalid spreadsheet format")

// ErrSheetNotFound indicates a requested sheet is absent from the source.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrMissingField indicates a row without a category or name.
var ErrMissingField = errors.New("empty cell")

// ArgumentError reports missing or malformed command-line arguments.
type ArgumentError struct {
	Msg string
}

func (e *ArgumentError) Error() string {
	return e.Msg
}

// SourceAccessError reports an input that cannot be read as a parameter workbook.
type SourceAccessError struct {
	Path string
	Err  error
}

func (e *SourceAccessError) Error() string {
	return fmt.Sprintf("cannot read %s: %v", e.Path, e.Err)
}

func (e *SourceAccessError) Unwrap() error {
	return e.Err
}

// ParseError reports a cell whose content cannot be coerced by its unit rule.
type ParseError struct {
	Sheet  string
	Row    int    // 1-based spreadsheet row
	Column string // column title
	Value  string
	Unit   string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("sheet %q row %d column %q: cannot convert %q (unit %q): %v",
		e.Sheet, e.Row, e.Column, e.Value, e.Unit, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError.
func NewParseError(sheet string, row int, column, value, unit string, err error) *ParseError {
	return &ParseError{
		Sheet:  sheet,
		Row:    row,
		Column: column,
		Value:  value,
		Unit:   unit,
		Err:    err,
	}
}

// SinkWriteError reports an export destination that could not be written.
type SinkWriteError struct {
	Path string
	Err  error
}

func (e *SinkWriteError) Error() string {
	return fmt.Sprintf("cannot write %s: %v", e.Path, e.Err)
}

func (e *SinkWriteError) Unwrap() error {
	return e.Err
}
