package datafile

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/shapestone/shape-core/pkg/ast"
)

// blockShape returns the number of rows in each block of a parsed document.
func blockShape(t *testing.T, node ast.SchemaNode) []int {
	t.Helper()
	doc, ok := node.(*ast.ArrayDataNode)
	if !ok {
		t.Fatalf("expected *ast.ArrayDataNode, got %T", node)
	}
	var shape []int
	for _, block := range doc.Elements() {
		shape = append(shape, block.(*ast.ArrayDataNode).Len())
	}
	return shape
}

func TestParseReader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		shape []int
		rows  [][]string
	}{
		{
			name:  "empty",
			input: "",
			shape: nil,
			rows:  nil,
		},
		{
			name:  "one block",
			input: "1, 2\n3, 4\n",
			shape: []int{2},
			rows:  [][]string{{"1", "2"}, {"3", "4"}},
		},
		{
			name:  "blocks with comments",
			input: "# data\n1,2\n\n\n# second\n3,4\n5,6\n",
			shape: []int{1, 2},
			rows:  [][]string{{"1", "2"}, {"3", "4"}, {"5", "6"}},
		},
		{
			name:  "empty fields",
			input: ",\n,a\n",
			shape: []int{2},
			rows:  [][]string{{""}, {"", "a"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := ParseReader(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ParseReader() error = %v", err)
			}
			if got := blockShape(t, node); !reflect.DeepEqual(got, tt.shape) {
				t.Errorf("block sizes = %v, want %v", got, tt.shape)
			}
			rows, err := RowsFromAST(node)
			if err != nil {
				t.Fatalf("RowsFromAST() error = %v", err)
			}
			if !reflect.DeepEqual(rows, tt.rows) {
				t.Errorf("rows = %v, want %v", rows, tt.rows)
			}
		})
	}
}

func TestParse(t *testing.T) {
	node, err := Parse("# c\n1,2\n\n3\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := blockShape(t, node); !reflect.DeepEqual(got, []int{1, 1}) {
		t.Errorf("block sizes = %v, want [1 1]", got)
	}
}

func TestParseReaderWithOptions_BadLines(t *testing.T) {
	input := "1\n\xff\n2\n"

	t.Run("error", func(t *testing.T) {
		_, err := ParseReaderWithOptions(strings.NewReader(input), DefaultReaderOptions())
		if !errors.Is(err, ErrInvalidUTF8) {
			t.Errorf("error = %v, want ErrInvalidUTF8", err)
		}
	})

	t.Run("skip", func(t *testing.T) {
		opts := DefaultReaderOptions()
		opts.OnBadLine = BadLineModeSkip
		node, err := ParseReaderWithOptions(strings.NewReader(input), opts)
		if err != nil {
			t.Fatalf("error = %v", err)
		}
		rows, _ := RowsFromAST(node)
		if !reflect.DeepEqual(rows, [][]string{{"1"}, {"2"}}) {
			t.Errorf("rows = %v", rows)
		}
	})

	t.Run("warn", func(t *testing.T) {
		var lines []int
		opts := DefaultReaderOptions()
		opts.OnBadLine = BadLineModeWarn
		opts.WarningCallback = func(line int, message string) {
			lines = append(lines, line)
		}
		if _, err := ParseReaderWithOptions(strings.NewReader(input), opts); err != nil {
			t.Fatalf("error = %v", err)
		}
		if !reflect.DeepEqual(lines, []int{2}) {
			t.Errorf("warnings on lines %v, want [2]", lines)
		}
	})

	t.Run("read errors are not skipped", func(t *testing.T) {
		opts := DefaultReaderOptions()
		opts.OnBadLine = BadLineModeSkip
		opts.MaxRecordSize = 2
		_, err := ParseReaderWithOptions(strings.NewReader("1\n1234\n"), opts)
		if !errors.Is(err, ErrRecordTooLarge) {
			t.Errorf("error = %v, want ErrRecordTooLarge", err)
		}
	})
}

func TestTable_ToAST(t *testing.T) {
	table, err := ReadTableFrom(strings.NewReader("1,2\n3,4\n"), ParseInt, DefaultReaderOptions())
	if err != nil {
		t.Fatalf("ReadTableFrom() error = %v", err)
	}

	node := table.ToAST()
	if node.Len() != 2 {
		t.Fatalf("ToAST() has %d rows, want 2", node.Len())
	}
	row := node.Elements()[1].(*ast.ArrayDataNode)
	if v := row.Elements()[0].(*ast.LiteralNode).Value(); v != int64(3) {
		t.Errorf("value = %#v, want int64(3)", v)
	}

	rows, err := RowsFromAST(node)
	if err != nil {
		t.Fatalf("RowsFromAST() error = %v", err)
	}
	if !reflect.DeepEqual(rows, [][]string{{"1", "2"}, {"3", "4"}}) {
		t.Errorf("rows = %v", rows)
	}
}

func TestRowsFromAST_Errors(t *testing.T) {
	if _, err := RowsFromAST(ast.NewLiteralNode("x", ast.ZeroPosition())); err == nil {
		t.Error("expected error for a literal root")
	}

	mixed := ast.NewArrayDataNode([]ast.SchemaNode{
		ast.NewLiteralNode("a", ast.ZeroPosition()),
		ast.NewArrayDataNode(nil, ast.ZeroPosition()),
	}, ast.ZeroPosition())
	if _, err := RowsFromAST(mixed); err == nil {
		t.Error("expected error for a row holding an array")
	}
}
