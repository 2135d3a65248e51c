// Package datafile provides configurable options for reading and writing data files.
package datafile

import "unicode/utf8"

// Default sizes.
const (
	// DefaultBufferSize is the size of the bufio.Reader wrapped around plain io.Readers.
	DefaultBufferSize = 4096
	// SniffSampleSize is the number of bytes SniffDelimiter inspects.
	SniffSampleSize = 4096
)

// ReaderOptions configures record reading.
type ReaderOptions struct {
	// RecordDelimiter ends a record. Default: '\n'
	RecordDelimiter byte

	// FieldDelimiter separates fields within a record. Default: ','
	// Whitespace delimiters collapse: runs of them never produce empty fields.
	FieldDelimiter byte

	// MaxRecordSize is the maximum allowed size of a single line in bytes,
	// not counting the record delimiter. 0 means no limit.
	MaxRecordSize int

	// BufferSize is the size of the read buffer used when the source is not
	// already buffered. 0 means DefaultBufferSize.
	BufferSize int

	// Metrics, if set, receives per-record counters.
	Metrics *Metrics

	// OnBadLine specifies how ParseReaderWithOptions handles undecodable lines.
	// Default: BadLineModeError
	OnBadLine BadLineMode

	// WarningCallback is invoked for warnings when OnBadLine is BadLineModeWarn.
	// If nil, warnings are silently ignored.
	WarningCallback WarningHandler
}

// DefaultReaderOptions returns the default reader configuration.
func DefaultReaderOptions() ReaderOptions {
	return ReaderOptions{
		RecordDelimiter: '\n',
		FieldDelimiter:  ',',
		MaxRecordSize:   0,
		BufferSize:      DefaultBufferSize,
		OnBadLine:       BadLineModeError,
	}
}

// WriterOptions configures rendering.
type WriterOptions struct {
	// FieldDelimiter separates fields. Default: ','
	FieldDelimiter byte

	// FieldSeparator, if not empty, is written between fields instead of
	// FieldDelimiter alone, e.g. ", " for padded output.
	FieldSeparator string

	// UseCRLF controls whether to use \r\n (true) or \n (false) as the line terminator.
	// Default: false (use \n)
	UseCRLF bool
}

// DefaultWriterOptions returns the default writer configuration.
func DefaultWriterOptions() WriterOptions {
	return WriterOptions{
		FieldDelimiter: ',',
		UseCRLF:        false,
	}
}

// validDelim reports whether b can separate fields.
func validDelim(b byte) bool {
	return b != 0 && b != '\n' && b < utf8.RuneSelf
}

// Validate checks if the options are valid.
// Returns an *OptionsError describing the first invalid option.
func (o ReaderOptions) Validate() error {
	if o.RecordDelimiter == 0 {
		return &OptionsError{Field: "RecordDelimiter", Message: "must not be zero"}
	}
	if !validDelim(o.FieldDelimiter) {
		return &OptionsError{Field: "FieldDelimiter", Message: "invalid delimiter"}
	}
	if o.FieldDelimiter == o.RecordDelimiter {
		return &OptionsError{Field: "FieldDelimiter", Message: "same as record delimiter"}
	}
	if o.MaxRecordSize < 0 {
		return &OptionsError{Field: "MaxRecordSize", Message: "must not be negative"}
	}
	if o.BufferSize < 0 {
		return &OptionsError{Field: "BufferSize", Message: "must not be negative"}
	}
	return nil
}

// Validate checks if the writer options are valid.
func (o WriterOptions) Validate() error {
	if o.FieldSeparator == "" && !validDelim(o.FieldDelimiter) {
		return &OptionsError{Field: "FieldDelimiter", Message: "invalid delimiter"}
	}
	return nil
}

// separator returns the text written between two fields.
func (o WriterOptions) separator() string {
	if o.FieldSeparator != "" {
		return o.FieldSeparator
	}
	return string(o.FieldDelimiter)
}

// lineEnding returns the text written after each row.
func (o WriterOptions) lineEnding() string {
	if o.UseCRLF {
		return "\r\n"
	}
	return "\n"
}

// OptionsError represents an invalid option configuration.
type OptionsError struct {
	Field   string
	Message string
}

func (e *OptionsError) Error() string {
	return "datafile: invalid " + e.Field + ": " + e.Message
}
