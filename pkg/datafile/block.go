package datafile

import (
	"io"

	"code.hybscloud.com/iox"
)

// BlockReader groups consecutive field records into blocks of typed rows.
//
// A block is a maximal run of Fields and Comment records ended by a Blank
// record or the end of input. Comments inside a block are skipped. The record
// that ends a block is left unconsumed; call ConsumeBlanks to move past the
// separator lines before reading the next block.
//
// Rows within a block may differ in width. Use ReadTable for width checking.
type BlockReader[T any] struct {
	rr    *RecordReader
	parse ParseFunc[T]

	// pending holds rows of a block interrupted by a would-block error.
	pending [][]T
}

// NewBlockReader creates a BlockReader that converts every field with parse.
//
// Example:
//
//	br := datafile.NewBlockReader(datafile.NewRecordReader(file), datafile.ParseInt)
//	for {
//	    block, err := br.NextBlock()
//	    if err != nil {
//	        return err
//	    }
//	    if block == nil {
//	        break
//	    }
//	    // use block
//	    if _, err := br.ConsumeBlanks(); err != nil {
//	        return err
//	    }
//	}
func NewBlockReader[T any](rr *RecordReader, parse ParseFunc[T]) *BlockReader[T] {
	return &BlockReader[T]{
		rr:    rr,
		parse: parse,
	}
}

// RecordReader returns the underlying record reader.
func (b *BlockReader[T]) RecordReader() *RecordReader {
	return b.rr
}

// NextBlock reads the next block.
//
// It returns nil with a nil error when the next record is a Blank or the end
// of input and no rows were read; at the end of input this repeats on every
// call. If a field fails to convert, the whole block is discarded and a
// *ParseError is returned.
func (b *BlockReader[T]) NextBlock() ([][]T, error) {
	block := b.pending
	b.pending = nil

	for {
		rec, err := b.peek()
		if err != nil {
			if iox.IsWouldBlock(err) {
				b.pending = block
			}
			return nil, err
		}

		switch rec := rec.(type) {
		case EndOfInput, Blank:
			return block, nil
		case Comment:
			b.rr.Next()
		case Fields:
			b.rr.Next()
			row, err := parseRow(b.parse, rec, b.rr.Line())
			if err != nil {
				return nil, err
			}
			block = append(block, row)
		}
	}
}

// ConsumeBlanks consumes Blank and Comment records up to the next Fields
// record or the end of input, and returns how many lines it consumed.
func (b *BlockReader[T]) ConsumeBlanks() (int, error) {
	count := 0
	for {
		rec, err := b.peek()
		if err != nil {
			return count, err
		}

		switch rec.(type) {
		case Blank, Comment:
			b.rr.Next()
			count++
		default:
			return count, nil
		}
	}
}

// NextRow returns the next row regardless of block boundaries, skipping Blank
// and Comment records. It returns io.EOF at the end of input.
// NextRow lets a BlockReader feed ReadTable.
func (b *BlockReader[T]) NextRow() ([]T, error) {
	if len(b.pending) > 0 {
		row := b.pending[0]
		b.pending = b.pending[1:]
		return row, nil
	}
	return nextRow(b.rr, b.parse)
}

// peek looks at the next record. A failed read is consumed so that the same
// error is reported once; sticky source errors keep being returned by the
// record reader itself.
func (b *BlockReader[T]) peek() (Record, error) {
	rec, err := b.rr.Peek()
	if err != nil && !iox.IsWouldBlock(err) {
		b.rr.Next()
	}
	return rec, err
}

// nextRow reads the next Fields record from rr and converts it.
func nextRow[T any](rr *RecordReader, parse ParseFunc[T]) ([]T, error) {
	for {
		rec, err := rr.Next()
		if err != nil {
			return nil, err
		}

		switch rec := rec.(type) {
		case Fields:
			return parseRow(parse, rec, rr.Line())
		case Comment, Blank:
			continue
		case EndOfInput:
			return nil, io.EOF
		}
	}
}

// parseRow converts every field of a record, stopping at the first failure.
func parseRow[T any](parse ParseFunc[T], fields Fields, line int) ([]T, error) {
	row := make([]T, len(fields))
	for i, field := range fields {
		v, err := parse(field)
		if err != nil {
			return nil, &ParseError{Line: line, Field: i + 1, Value: field, Err: err}
		}
		row[i] = v
	}
	return row, nil
}
