package tokenizer

import (
	"strings"

	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// Options configures the lexer behavior.
type Options struct {
	// Delim is the field delimiter. Default: ','
	Delim byte
}

// NewLexerWithOptions creates a lexer for the configured delimiter.
// Matchers are tried in order:
// 1. Newline
// 2. Delimiter (whitespace delimiters match a whole run)
// 3. Text (everything else)
func NewLexerWithOptions(opts Options) tokenizer.Tokenizer {
	return tokenizer.NewTokenizerWithoutWhitespace(
		tokenizer.StringMatcherFunc(TokenNewline, "\n"),
		DelimMatcher(opts.Delim),
		TextMatcher(opts.Delim),
	)
}

// NewLexerWithStream creates a lexer reading from a pre-configured stream.
func NewLexerWithStream(stream tokenizer.Stream, opts Options) tokenizer.Tokenizer {
	tok := NewLexerWithOptions(opts)
	tok.InitializeFromStream(stream)
	return tok
}

// DelimMatcher matches one delimiter, or a run of it when the delimiter is
// whitespace. Runs of whitespace never separate empty fields in EnumFields,
// so the lexer reports them as a single separator as well.
func DelimMatcher(delim byte) tokenizer.Matcher {
	collapse := isSpace(delim)
	return func(stream tokenizer.Stream) *tokenizer.Token {
		if byteStream, ok := stream.(tokenizer.ByteStream); ok {
			startPos := byteStream.BytePosition()
			for {
				b, ok := byteStream.PeekByte()
				if !ok || b != delim {
					break
				}
				byteStream.NextByte()
				if !collapse {
					break
				}
			}
			if byteStream.BytePosition() == startPos {
				return nil
			}
			return tokenizer.NewToken(TokenDelim, []rune(string(byteStream.SliceFrom(startPos))))
		}

		var value []rune
		for {
			r, ok := stream.PeekChar()
			if !ok || r != rune(delim) {
				break
			}
			stream.NextChar()
			value = append(value, r)
			if !collapse {
				break
			}
		}
		if len(value) == 0 {
			return nil
		}
		return tokenizer.NewToken(TokenDelim, value)
	}
}

// TextMatcher matches runs of bytes that are neither delim nor a newline.
func TextMatcher(delim byte) tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		if byteStream, ok := stream.(tokenizer.ByteStream); ok {
			startPos := byteStream.BytePosition()
			for {
				b, ok := byteStream.PeekByte()
				if !ok || b == delim || b == '\n' {
					break
				}
				byteStream.NextByte()
			}
			if byteStream.BytePosition() == startPos {
				return nil
			}
			return tokenizer.NewToken(TokenText, []rune(string(byteStream.SliceFrom(startPos))))
		}

		var value []rune
		for {
			r, ok := stream.PeekChar()
			if !ok || r == rune(delim) || r == '\n' {
				break
			}
			stream.NextChar()
			value = append(value, r)
		}
		if len(value) == 0 {
			return nil
		}
		return tokenizer.NewToken(TokenText, value)
	}
}

// CountDelims reports how many field separators each line of sample
// contains for delim, in line order. The whole sample is lexed by one lexer;
// lines are counted as given, so callers trim them first.
func CountDelims(delim byte, sample string) []int {
	if sample == "" {
		return nil
	}
	lex := NewLexerWithStream(tokenizer.NewStream(sample), Options{Delim: delim})

	counts := []int{0}
	for {
		token, ok := lex.NextToken()
		if !ok {
			break
		}
		switch token.Kind() {
		case TokenDelim:
			counts[len(counts)-1]++
		case TokenNewline:
			counts = append(counts, 0)
		}
	}
	if strings.HasSuffix(sample, "\n") {
		counts = counts[:len(counts)-1]
	}
	return counts
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\v', '\f', '\r':
		return true
	}
	return false
}
