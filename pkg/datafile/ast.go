package datafile

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shapestone/shape-core/pkg/ast"
)

// Parse parses a data file held in memory into an AST.
// See ParseReader for the shape of the result.
func Parse(input string) (ast.SchemaNode, error) {
	return ParseReader(strings.NewReader(input))
}

// ParseReader reads a whole data file into an AST.
//
// Returns an *ast.ArrayDataNode representing the document:
//   - The document is an array of blocks
//   - Each block is an *ast.ArrayDataNode of rows
//   - Each row is an *ast.ArrayDataNode of *ast.LiteralNode string fields
//
// Blocks are separated by one or more blank lines; comment lines are dropped.
// Row nodes carry the byte offset and line where the row starts.
//
// Example:
//
//	node, err := datafile.ParseReader(strings.NewReader("1,2\n3,4\n\n5,6\n"))
//	blocks := node.(*ast.ArrayDataNode).Elements()
//	// len(blocks) == 2
func ParseReader(reader io.Reader) (ast.SchemaNode, error) {
	return ParseReaderWithOptions(reader, DefaultReaderOptions())
}

// ParseReaderWithOptions reads a whole data file into an AST with custom options.
//
// Lines that are not valid UTF-8 are handled according to opts.OnBadLine;
// every other error stops the parse.
//
// Example:
//
//	opts := datafile.DefaultReaderOptions()
//	opts.FieldDelimiter = ' '
//	opts.OnBadLine = datafile.BadLineModeSkip
//	node, err := datafile.ParseReaderWithOptions(file, opts)
func ParseReaderWithOptions(reader io.Reader, opts ReaderOptions) (ast.SchemaNode, error) {
	rr, err := NewRecordReaderWithOptions(reader, opts)
	if err != nil {
		return nil, err
	}

	blocks := make([]ast.SchemaNode, 0, 4)
	var (
		rows     []ast.SchemaNode
		blockPos ast.Position
	)
	flush := func() {
		if len(rows) > 0 {
			blocks = append(blocks, ast.NewArrayDataNode(rows, blockPos))
			rows = nil
		}
	}

	for {
		start := rr.InputOffset()
		rec, err := rr.Next()
		if err != nil {
			if err := handleBadLine(err, opts); err != nil {
				return nil, err
			}
			continue
		}

		switch rec := rec.(type) {
		case Fields:
			pos := ast.NewPosition(int(start), rr.Line(), 1)
			fields := make([]ast.SchemaNode, len(rec))
			for i, field := range rec {
				fields[i] = ast.NewLiteralNode(field, pos)
			}
			if len(rows) == 0 {
				blockPos = pos
			}
			rows = append(rows, ast.NewArrayDataNode(fields, pos))
		case Blank:
			flush()
		case Comment:
		case EndOfInput:
			flush()
			return ast.NewArrayDataNode(blocks, ast.ZeroPosition()), nil
		}
	}
}

// handleBadLine handles a read error based on the OnBadLine mode.
// Returns nil if parsing should continue, or the error if it should stop.
func handleBadLine(err error, opts ReaderOptions) error {
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		return err
	}

	switch opts.OnBadLine {
	case BadLineModeSkip:
		return nil
	case BadLineModeWarn:
		if opts.WarningCallback != nil {
			opts.WarningCallback(decodeErr.Line, err.Error())
		}
		return nil
	default:
		return err
	}
}

// ToAST converts the table to an AST: an *ast.ArrayDataNode of rows, each an
// *ast.ArrayDataNode of *ast.LiteralNode holding the typed values.
func (t *Table[T]) ToAST() *ast.ArrayDataNode {
	rows := make([]ast.SchemaNode, len(t.rows))
	for i, row := range t.rows {
		fields := make([]ast.SchemaNode, len(row))
		for j, v := range row {
			fields[j] = ast.NewLiteralNode(v, ast.ZeroPosition())
		}
		rows[i] = ast.NewArrayDataNode(fields, ast.ZeroPosition())
	}
	return ast.NewArrayDataNode(rows, ast.ZeroPosition())
}

// RowsFromAST flattens an AST produced by ParseReader or Table.ToAST into rows of strings.
// Block boundaries are dropped. Non-string literal values are formatted with %v.
func RowsFromAST(node ast.SchemaNode) ([][]string, error) {
	arrayNode, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return nil, fmt.Errorf("expected *ast.ArrayDataNode, got %T", node)
	}

	var rows [][]string
	if err := collectRows(arrayNode, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// collectRows appends node to rows if it is a row, or recurses into it if it
// holds rows or blocks.
func collectRows(node *ast.ArrayDataNode, rows *[][]string) error {
	elements := node.Elements()
	if len(elements) == 0 {
		return nil
	}

	switch elements[0].(type) {
	case *ast.LiteralNode:
		fields := make([]string, 0, len(elements))
		for _, elem := range elements {
			literalNode, ok := elem.(*ast.LiteralNode)
			if !ok {
				return fmt.Errorf("expected field to be *ast.LiteralNode, got %T", elem)
			}
			fields = append(fields, literalString(literalNode))
		}
		*rows = append(*rows, fields)
		return nil

	case *ast.ArrayDataNode:
		for _, elem := range elements {
			child, ok := elem.(*ast.ArrayDataNode)
			if !ok {
				return fmt.Errorf("expected *ast.ArrayDataNode, got %T", elem)
			}
			if err := collectRows(child, rows); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("unexpected element type in array: %T", elements[0])
	}
}

// literalString returns the text of a literal field.
func literalString(node *ast.LiteralNode) string {
	switch v := node.Value().(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
