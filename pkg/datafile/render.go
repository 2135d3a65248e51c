// Package datafile provides AST rendering to delimited text.
package datafile

import (
	"bytes"
	"fmt"

	"github.com/shapestone/shape-core/pkg/ast"
)

// Render converts an AST node to delimited text with the default writer options.
//
// The node may be a document from ParseReader (blocks of rows), a table from
// Table.ToAST (rows), or a single row. Each row ends with a line terminator and
// blocks are separated by one blank line, so rendering a parsed document and
// reading it back yields the same blocks. Comments are not preserved.
//
// Fields are written as is; this format has no quoting, so a field that
// contains the delimiter will not read back as one field.
//
// Example:
//
//	node, _ := datafile.ParseReader(strings.NewReader("1, 2\n3, 4\n\n\n5, 6\n"))
//	out, _ := datafile.Render(node)
//	// out: "1,2\n3,4\n\n5,6\n"
func Render(node ast.SchemaNode) ([]byte, error) {
	return RenderWithOptions(node, DefaultWriterOptions())
}

// RenderWithOptions converts an AST node to delimited text with custom options.
//
// Example:
//
//	opts := datafile.DefaultWriterOptions()
//	opts.FieldSeparator = "\t"
//	opts.UseCRLF = true
//	out, err := datafile.RenderWithOptions(node, opts)
func RenderWithOptions(node ast.SchemaNode, opts WriterOptions) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if node == nil {
		return []byte{}, nil
	}

	var buf bytes.Buffer
	if err := renderNode(node, &buf, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderNode recursively renders an AST node to the buffer.
func renderNode(node ast.SchemaNode, buf *bytes.Buffer, opts WriterOptions) error {
	switch n := node.(type) {
	case *ast.ArrayDataNode:
		return renderArrayData(n, buf, opts)
	case *ast.LiteralNode:
		buf.WriteString(literalString(n))
		return nil
	default:
		return fmt.Errorf("unsupported node type for rendering: %T", node)
	}
}

// renderArrayData renders an ArrayDataNode.
// This handles the document level (array of blocks), the block or table level
// (array of rows) and the row level (array of fields).
func renderArrayData(node *ast.ArrayDataNode, buf *bytes.Buffer, opts WriterOptions) error {
	elements := node.Elements()
	if len(elements) == 0 {
		return nil
	}

	switch first := elements[0].(type) {
	case *ast.LiteralNode:
		// Row level - array of fields
		for i, elem := range elements {
			if i > 0 {
				buf.WriteString(opts.separator())
			}
			if err := renderNode(elem, buf, opts); err != nil {
				return err
			}
		}
		buf.WriteString(opts.lineEnding())
		return nil

	case *ast.ArrayDataNode:
		// Document level separates its blocks with a blank line
		blocks := isBlock(first)
		for i, elem := range elements {
			if i > 0 && blocks {
				buf.WriteString(opts.lineEnding())
			}
			if err := renderNode(elem, buf, opts); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("unexpected element type in array: %T", elements[0])
	}
}

// isBlock reports whether node is an array of rows rather than a row.
func isBlock(node *ast.ArrayDataNode) bool {
	elements := node.Elements()
	if len(elements) == 0 {
		return false
	}
	_, ok := elements[0].(*ast.ArrayDataNode)
	return ok
}
