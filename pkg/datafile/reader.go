package datafile

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"unicode/utf8"
	"unsafe"

	"code.hybscloud.com/iox"

	"github.com/shapestone/shape-datafile/internal/tokenizer"
)

// maxRetainedBuffer caps the line buffer kept between reads. A longer line
// is still read in full, but its buffer is released afterwards.
const maxRetainedBuffer = 64 * 1024

// Source is a byte source that can read through the next occurrence of a
// delimiter. *bufio.Reader satisfies it.
//
// ReadSlice returns the bytes up to and including delim. It may return
// bufio.ErrBufferFull with a partial line, which the reader accumulates, and
// io.EOF with the final unterminated line (possibly empty).
type Source interface {
	ReadSlice(delim byte) (line []byte, err error)
}

// RecordReader reads classified records one line at a time, with one record
// of lookahead.
//
// A RecordReader is not safe for concurrent use.
//
// Example:
//
//	rr := datafile.NewRecordReader(file).SetFieldDelimiter(' ')
//	for {
//	    rec, err := rr.Next()
//	    if err != nil {
//	        return err
//	    }
//	    switch rec := rec.(type) {
//	    case datafile.Fields:
//	        fmt.Println(len(rec), "fields")
//	    case datafile.Comment, datafile.Blank:
//	    case datafile.EndOfInput:
//	        return nil
//	    }
//	}
type RecordReader struct {
	src           Source
	recordDelim   byte
	fieldDelim    byte
	maxRecordSize int
	metrics       *Metrics

	// buf holds the line being read. It is reset after every record.
	buf []byte

	// Single-slot lookahead. peekErr is set when filling the slot failed.
	hasPeek    bool
	peeked     Record
	peekErr    error
	peekLine   int
	peekOffset int64

	err   error // sticky source failure
	atEOF bool

	line       int   // lines read from the source
	offset     int64 // bytes read from the source
	lastLine   int   // line of the last consumed record
	lastOffset int64 // offset just past the last consumed record
}

// NewRecordReader creates a RecordReader with the default options:
// records end at '\n' and fields are separated by ','.
// If r is not already a Source it is wrapped in a bufio.Reader.
//
// r must not be nil: NewRecordReader panics if it is. Use
// NewRecordReaderWithOptions to get an error instead.
func NewRecordReader(r io.Reader) *RecordReader {
	if r == nil {
		panic("datafile: reader source cannot be nil")
	}
	return newRecordReader(r, DefaultReaderOptions())
}

// NewRecordReaderWithOptions creates a RecordReader with custom options.
// Returns an *OptionsError if the options are invalid or r is nil.
//
// Example:
//
//	opts := datafile.DefaultReaderOptions()
//	opts.FieldDelimiter = '\t'
//	opts.MaxRecordSize = 1 << 20
//	rr, err := datafile.NewRecordReaderWithOptions(file, opts)
func NewRecordReaderWithOptions(r io.Reader, opts ReaderOptions) (*RecordReader, error) {
	if r == nil {
		return nil, &OptionsError{Field: "Reader", Message: "must not be nil"}
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return newRecordReader(r, opts), nil
}

func newRecordReader(r io.Reader, opts ReaderOptions) *RecordReader {
	src, ok := r.(Source)
	if !ok {
		size := opts.BufferSize
		if size <= 0 {
			size = DefaultBufferSize
		}
		src = bufio.NewReaderSize(r, size)
	}

	return &RecordReader{
		src:           src,
		recordDelim:   opts.RecordDelimiter,
		fieldDelim:    opts.FieldDelimiter,
		maxRecordSize: opts.MaxRecordSize,
		metrics:       opts.Metrics,
	}
}

// SetFieldDelimiter changes the delimiter used to split records read from now on.
// A record already held by Peek keeps the fields it was split into.
//
// delim must be an ASCII byte other than NUL, '\n' and the record delimiter,
// the same bytes ReaderOptions.Validate accepts. Any other byte could cut a
// multi-byte character in two, so it is ignored and the current delimiter is
// kept; check FieldDelimiter when the value comes from user input.
// Returns the RecordReader for method chaining.
func (r *RecordReader) SetFieldDelimiter(delim byte) *RecordReader {
	if validDelim(delim) && delim != r.recordDelim {
		r.fieldDelim = delim
	}
	return r
}

// FieldDelimiter returns the current field delimiter.
func (r *RecordReader) FieldDelimiter() byte {
	return r.fieldDelim
}

// RecordDelimiter returns the record delimiter.
func (r *RecordReader) RecordDelimiter() byte {
	return r.recordDelim
}

// Line returns the line number of the most recently consumed record (1-indexed).
// It is 0 before the first record is consumed. Peek does not change it.
func (r *RecordReader) Line() int {
	return r.lastLine
}

// InputOffset returns the input byte offset just past the most recently consumed record.
func (r *RecordReader) InputOffset() int64 {
	return r.lastOffset
}

// Peek returns the next record without consuming it.
//
// Repeated calls return the same record, or the same error, until Next is
// called; the source is read at most once. Would-block errors from
// non-blocking sources are not held: the next call resumes the partial line.
func (r *RecordReader) Peek() (Record, error) {
	if !r.hasPeek {
		rec, err := r.read()
		if err != nil && iox.IsWouldBlock(err) {
			return nil, err
		}
		r.hasPeek = true
		r.peeked, r.peekErr = rec, err
		r.peekLine, r.peekOffset = r.line, r.offset
	}
	return r.peeked, r.peekErr
}

// Next returns the next record and consumes it.
//
// At the end of the source Next returns EndOfInput with a nil error, and keeps
// doing so on later calls. A *DecodeError consumes the offending line, so the
// following call continues with the next line. A *ReadError is sticky: once
// the source has failed, every call returns the same error.
func (r *RecordReader) Next() (Record, error) {
	var (
		rec Record
		err error
	)
	if r.hasPeek {
		rec, err = r.peeked, r.peekErr
		r.lastLine, r.lastOffset = r.peekLine, r.peekOffset
		r.hasPeek = false
		r.peeked, r.peekErr = nil, nil
	} else {
		rec, err = r.read()
		if err != nil && iox.IsWouldBlock(err) {
			return nil, err
		}
		r.lastLine, r.lastOffset = r.line, r.offset
	}

	if err == nil {
		r.metrics.observeRecord(rec)
	}
	return rec, err
}

// read pulls one line from the source and classifies it.
func (r *RecordReader) read() (Record, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.atEOF {
		return EndOfInput{}, nil
	}

	for {
		chunk, err := r.src.ReadSlice(r.recordDelim)
		r.buf = append(r.buf, chunk...)
		r.offset += int64(len(chunk))
		r.metrics.observeRead(len(chunk))

		size := len(r.buf)
		if err == nil {
			size-- // record delimiter
		}
		if r.maxRecordSize > 0 && size > r.maxRecordSize {
			return nil, r.fail(ErrRecordTooLarge, "too_large")
		}
		if err == nil || err == io.EOF {
			break
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if iox.IsWouldBlock(err) {
			// Keep the partial line; the caller retries once the source is ready.
			return nil, err
		}
		return nil, r.fail(err, "io")
	}

	if len(r.buf) == 0 {
		r.atEOF = true
		return EndOfInput{}, nil
	}

	r.line++
	defer r.resetBuffer()

	if !utf8.Valid(r.buf) {
		r.metrics.observeError("decode")
		return nil, &DecodeError{Line: r.line}
	}

	if r.buf[0] == CommentChar {
		return Comment(string(r.buf)), nil
	}

	text := r.buf
	if text[len(text)-1] == r.recordDelim {
		text = text[:len(text)-1]
	}
	if len(text) == 0 {
		return Blank{}, nil
	}

	// Fields are split from a view of the buffer and cloned before the
	// buffer is reused.
	line := unsafe.String(unsafe.SliceData(text), len(text))
	var fields Fields
	for field := range tokenizer.EnumFields(r.fieldDelim, line).All() {
		fields = append(fields, strings.Clone(field))
	}
	if len(fields) == 0 {
		return Blank{}, nil
	}
	return fields, nil
}

// fail records a terminal source failure and discards the partial line.
func (r *RecordReader) fail(err error, kind string) error {
	r.resetBuffer()
	r.err = &ReadError{Line: r.line + 1, Err: err}
	r.metrics.observeError(kind)
	return r.err
}

func (r *RecordReader) resetBuffer() {
	if cap(r.buf) > maxRetainedBuffer {
		r.buf = nil
		return
	}
	r.buf = r.buf[:0]
}
