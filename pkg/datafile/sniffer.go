package datafile

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/shapestone/shape-datafile/internal/tokenizer"
)

// sniffCandidates are the delimiters DetectDelimiter chooses from, in order
// of preference when scores tie.
var sniffCandidates = []byte{',', '\t', ';', '|', ' '}

// Sniffer detects the field delimiter of a data file from a sample.
type Sniffer struct {
	sample    string
	delimiter byte
	analyzed  bool
}

// NewSniffer creates a new Sniffer with a sample of the data.
// For best results, provide at least 2-3 data lines.
func NewSniffer(sample string) *Sniffer {
	return &Sniffer{sample: sample}
}

// DetectDelimiter returns the detected field delimiter.
// Delimiters checked: comma, tab, semicolon, pipe, space. Comment and blank
// lines are ignored. Returns ',' when no candidate separates any fields.
func (s *Sniffer) DetectDelimiter() byte {
	if !s.analyzed {
		s.delimiter = s.detectDelimiter()
		s.analyzed = true
	}
	return s.delimiter
}

// detectDelimiter performs the actual delimiter detection.
func (s *Sniffer) detectDelimiter() byte {
	var lines []string
	for _, line := range strings.Split(s.sample, "\n") {
		if line == "" || line[0] == CommentChar {
			continue
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return ','
	}
	data := strings.Join(lines, "\n")

	best := byte(',')
	bestScore := 0
	for _, delim := range sniffCandidates {
		counts := tokenizer.CountDelims(delim, data)
		first := counts[0]
		if first == 0 {
			continue
		}

		// Score based on consistency across lines
		score := first * 10
		for _, n := range counts[1:] {
			if n != first {
				score = first
				break
			}
		}

		if score > bestScore {
			best = delim
			bestScore = score
		}
	}
	return best
}

// SniffDelimiter detects the delimiter from the start of br without consuming
// any input, so br can be handed to NewRecordReader afterwards.
//
// Example:
//
//	br := bufio.NewReader(file)
//	delim, err := datafile.SniffDelimiter(br)
//	if err != nil {
//	    return err
//	}
//	rr := datafile.NewRecordReader(br).SetFieldDelimiter(delim)
func SniffDelimiter(br *bufio.Reader) (byte, error) {
	sample, err := br.Peek(SniffSampleSize)
	if err != nil && err != io.EOF && !errors.Is(err, bufio.ErrBufferFull) {
		return 0, err
	}

	// Drop a trailing partial line unless it is all we have.
	text := string(sample)
	if len(sample) == SniffSampleSize {
		if i := strings.LastIndexByte(text, '\n'); i > 0 {
			text = text[:i]
		}
	}
	return NewSniffer(text).DetectDelimiter(), nil
}
