// Package datafile provides error types and recovery modes for data-file reading.
package datafile

import (
	"errors"
	"fmt"
)

// BadLineMode specifies how ParseReaderWithOptions handles lines that cannot be decoded.
// The streaming readers always return such errors to the caller.
type BadLineMode int

const (
	// BadLineModeError returns an error on malformed lines (default).
	BadLineModeError BadLineMode = iota
	// BadLineModeWarn reports a warning but continues reading.
	BadLineModeWarn
	// BadLineModeSkip silently skips malformed lines.
	BadLineModeSkip
)

// String returns the string representation of BadLineMode.
func (m BadLineMode) String() string {
	switch m {
	case BadLineModeError:
		return "error"
	case BadLineModeWarn:
		return "warn"
	case BadLineModeSkip:
		return "skip"
	default:
		return fmt.Sprintf("BadLineMode(%d)", m)
	}
}

// WarningHandler is a callback function for reporting warnings.
type WarningHandler func(line int, message string)

// Common errors
var (
	// ErrInvalidUTF8 indicates that a line is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid UTF-8 in record")

	// ErrFieldCount indicates a row has a different width than the first row.
	ErrFieldCount = errors.New("wrong number of fields")

	// ErrRecordTooLarge indicates a line exceeded MaxRecordSize.
	ErrRecordTooLarge = errors.New("record exceeds maximum size")
)

// ReadError reports a failure of the underlying source.
type ReadError struct {
	// Line is the line being read when the source failed (1-indexed).
	Line int
	// Err is the underlying error.
	Err error
}

// Error returns a formatted error message with position information.
func (e *ReadError) Error() string {
	return fmt.Sprintf("read error on line %d: %v", e.Line, e.Err)
}

// Unwrap returns the underlying error.
func (e *ReadError) Unwrap() error {
	return e.Err
}

// DecodeError reports a line that is not valid UTF-8.
// The offending bytes are not retained.
type DecodeError struct {
	// Line is the line that failed to decode (1-indexed).
	Line int
}

// Error returns a formatted error message with position information.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error on line %d: %v", e.Line, ErrInvalidUTF8)
}

// Unwrap returns ErrInvalidUTF8.
func (e *DecodeError) Unwrap() error {
	return ErrInvalidUTF8
}

// ParseError reports a field that the caller's ParseFunc rejected.
type ParseError struct {
	// Line is the line holding the field (1-indexed).
	Line int
	// Field is the position of the field within its line (1-indexed).
	Field int
	// Value is the field text passed to the ParseFunc.
	Value string
	// Err is the error returned by the ParseFunc.
	Err error
}

// Error returns a formatted error message with position information.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error on line %d, field %d (%q): %v", e.Line, e.Field, e.Value, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// SizeError reports a row whose width differs from the first row of a table.
type SizeError struct {
	// Row is the position of the offending row (1-indexed). Row-1 rows were read successfully.
	Row int
	// Want is the width of the first row.
	Want int
	// Got is the width of the offending row.
	Got int
}

// Error returns a formatted error message.
func (e *SizeError) Error() string {
	return fmt.Sprintf("row %d: %v (got %d, expected %d)", e.Row, ErrFieldCount, e.Got, e.Want)
}

// Unwrap returns ErrFieldCount.
func (e *SizeError) Unwrap() error {
	return ErrFieldCount
}
