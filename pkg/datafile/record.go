package datafile

import "fmt"

// RecordKind identifies which variant a Record is.
type RecordKind int

const (
	// KindEndOfInput marks the end of the source.
	KindEndOfInput RecordKind = iota
	// KindFields is a line split into fields.
	KindFields
	// KindComment is a line starting with '#'.
	KindComment
	// KindBlank is a line with no fields.
	KindBlank
)

// String returns the string representation of RecordKind.
func (k RecordKind) String() string {
	switch k {
	case KindEndOfInput:
		return "eof"
	case KindFields:
		return "fields"
	case KindComment:
		return "comment"
	case KindBlank:
		return "blank"
	default:
		return fmt.Sprintf("RecordKind(%d)", k)
	}
}

// Record is one classified line of input. It is always exactly one of
// Fields, Comment, Blank or EndOfInput; consumers switch on the concrete type:
//
//	switch rec := rec.(type) {
//	case datafile.Fields:
//	    // rec is []string
//	case datafile.Comment:
//	case datafile.Blank:
//	case datafile.EndOfInput:
//	}
type Record interface {
	Kind() RecordKind
	record()
}

// Fields is a non-comment, non-blank line split into trimmed fields.
// The strings are owned by the record and stay valid after further reads.
type Fields []string

// Comment is a line whose first byte is CommentChar. It holds the raw line,
// untrimmed and including the record delimiter if one was read.
type Comment string

// Blank is a line that yields no fields, such as an empty or whitespace-only line.
type Blank struct{}

// EndOfInput is returned once the source is exhausted, and on every later read.
type EndOfInput struct{}

// CommentChar starts a comment line when it is the first byte of the line.
const CommentChar = '#'

func (Fields) Kind() RecordKind     { return KindFields }
func (Comment) Kind() RecordKind    { return KindComment }
func (Blank) Kind() RecordKind      { return KindBlank }
func (EndOfInput) Kind() RecordKind { return KindEndOfInput }

func (Fields) record()     {}
func (Comment) record()    {}
func (Blank) record()      {}
func (EndOfInput) record() {}
