package tokenizer

import (
	"iter"
	"strings"
)

// NextField finds the next field separated by delim in the given record.
//
// It returns two slices of record: the trimmed field before the first delim
// and the untrimmed remainder after it. If delim does not occur, the whole
// trimmed record is returned with an empty remainder.
//
// Example:
//
//	field, rest := NextField(',', "10, 20, 30")
//	// field == "10", rest == " 20, 30"
func NextField(delim byte, record string) (field, rest string) {
	record = strings.TrimSpace(record)
	if pos := strings.IndexByte(record, delim); pos >= 0 {
		return strings.TrimSpace(record[:pos]), record[pos+1:]
	}
	return record, ""
}

// FieldIter walks the fields of one record without copying.
// Fields are substrings of the record it was created from.
type FieldIter struct {
	delim  byte
	record string
}

// EnumFields creates an iterator over the fields of record separated by delim.
//
// A record made of whitespace only yields no fields at all. A leading or
// trailing delimiter yields an empty field for that position:
//
//	EnumFields(',', " \n")  // no fields
//	EnumFields(',', ",\n")  // one field: ""
//	EnumFields(' ', "10 20  30   40 ")  // "10", "20", "30", "40"
func EnumFields(delim byte, record string) *FieldIter {
	return &FieldIter{
		delim:  delim,
		record: strings.TrimSpace(record),
	}
}

// Next returns the next field and true, or "" and false once the record is exhausted.
func (it *FieldIter) Next() (string, bool) {
	if len(it.record) == 0 {
		return "", false
	}
	field, rest := NextField(it.delim, it.record)
	it.record = rest
	return field, true
}

// All returns the remaining fields as a sequence for range-over-func loops.
// The sequence shares the iterator's position and cannot be restarted.
func (it *FieldIter) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			field, ok := it.Next()
			if !ok || !yield(field) {
				return
			}
		}
	}
}
