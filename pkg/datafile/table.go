package datafile

import (
	"io"
	"strings"
)

// RowReader produces parsed rows one at a time and returns io.EOF when exhausted.
// *TableReader and *BlockReader implement it.
type RowReader[T any] interface {
	NextRow() ([]T, error)
}

// TableReader converts each field record of a RecordReader into a row,
// skipping blank and comment lines.
type TableReader[T any] struct {
	rr    *RecordReader
	parse ParseFunc[T]
}

// NewTableReader creates a TableReader that converts every field with parse.
func NewTableReader[T any](rr *RecordReader, parse ParseFunc[T]) *TableReader[T] {
	return &TableReader[T]{
		rr:    rr,
		parse: parse,
	}
}

// NextRow returns the next row, or io.EOF at the end of input.
func (t *TableReader[T]) NextRow() ([]T, error) {
	return nextRow(t.rr, t.parse)
}

// Table is a fully read, rectangular collection of rows: every row has the
// width of the first one. A Table is never modified after ReadTable returns it.
type Table[T any] struct {
	rows  [][]T
	width int
}

// ReadTable drains rows and checks that every row has the width of the first.
//
// A row of a different width fails the whole read with a *SizeError, whose
// Row field tells how far the read got; no table is returned in that case.
// Zero rows is a valid, empty table.
//
// Example:
//
//	rr := datafile.NewRecordReader(file)
//	table, err := datafile.ReadTable(datafile.NewTableReader(rr, datafile.ParseFloat))
//	if errors.Is(err, datafile.ErrFieldCount) {
//	    // ragged input
//	}
func ReadTable[T any](rows RowReader[T]) (*Table[T], error) {
	t := &Table[T]{}
	for {
		row, err := rows.NextRow()
		if err == io.EOF {
			return t, nil
		}
		if err != nil {
			return nil, err
		}

		if len(t.rows) == 0 {
			t.width = len(row)
		} else if len(row) != t.width {
			return nil, &SizeError{Row: len(t.rows) + 1, Want: t.width, Got: len(row)}
		}
		t.rows = append(t.rows, row)
	}
}

// ReadTableFrom reads a whole table from r with the given options.
func ReadTableFrom[T any](r io.Reader, parse ParseFunc[T], opts ReaderOptions) (*Table[T], error) {
	rr, err := NewRecordReaderWithOptions(r, opts)
	if err != nil {
		return nil, err
	}
	return ReadTable[T](NewTableReader(rr, parse))
}

// Len returns the number of rows.
func (t *Table[T]) Len() int {
	return len(t.rows)
}

// Width returns the number of fields in every row, or 0 for an empty table.
func (t *Table[T]) Width() int {
	return t.width
}

// Row returns the row at index i.
// Returns false if i is out of range.
func (t *Table[T]) Row(i int) ([]T, bool) {
	if i < 0 || i >= len(t.rows) {
		return nil, false
	}
	return t.rows[i], true
}

// Rows returns all rows. The outer slice is a copy; the rows themselves are shared.
func (t *Table[T]) Rows() [][]T {
	rows := make([][]T, len(t.rows))
	copy(rows, t.rows)
	return rows
}

// Column returns the values of column j from every row.
// Returns false if j is out of range.
func (t *Table[T]) Column(j int) ([]T, bool) {
	if j < 0 || j >= t.width {
		return nil, false
	}
	col := make([]T, len(t.rows))
	for i, row := range t.rows {
		col[i] = row[j]
	}
	return col, true
}

// Format renders the table as delimited text, one row per line.
func (t *Table[T]) Format(opts WriterOptions) string {
	var sb strings.Builder
	for _, row := range t.rows {
		writeRow(&sb, opts.separator(), row)
		sb.WriteString(opts.lineEnding())
	}
	return sb.String()
}
