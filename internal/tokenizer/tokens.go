// Package tokenizer splits data-file lines into fields.
//
// Two layers live here. NextField and EnumFields are the zero-copy field
// splitter used by the record reader: pure string slicing, no I/O. The Lexer
// is a Shape tokenizer that emits delimiter-level tokens for a whole sample
// and is used for dialect detection.
package tokenizer

// Token type constants emitted by the Lexer.
const (
	// Structural tokens
	TokenDelim   = "Delim"   // field delimiter; a run of a whitespace delimiter is one token
	TokenNewline = "Newline" // \n (record terminator)

	// Content token
	TokenText = "Text" // any run of bytes that is neither delimiter nor newline
)
