package datafile

import (
	"strings"
	"testing"

	"github.com/shapestone/shape-core/pkg/ast"
)

// TestRender tests rendering parsed documents back to text
func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "single block",
			input: "1,2\n3,4\n",
			want:  "1,2\n3,4\n",
		},
		{
			name:  "whitespace is trimmed",
			input: " 1 , 2 \n",
			want:  "1,2\n",
		},
		{
			name:  "blank runs become one separator",
			input: "1,2\n3,4\n\n\n5,6\n",
			want:  "1,2\n3,4\n\n5,6\n",
		},
		{
			name:  "comments are dropped",
			input: "# title\n1\n# note\n2\n",
			want:  "1\n2\n",
		},
		{
			name:  "empty fields",
			input: ",\n,a\n",
			want:  "\n,a\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := ParseReader(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ParseReader() error = %v", err)
			}
			got, err := Render(node)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderWithOptions(t *testing.T) {
	node, err := ParseReader(strings.NewReader("1,2\n\n3,4\n"))
	if err != nil {
		t.Fatalf("ParseReader() error = %v", err)
	}

	tests := []struct {
		name string
		opts WriterOptions
		want string
	}{
		{
			name: "tab delimiter",
			opts: WriterOptions{FieldDelimiter: '\t'},
			want: "1\t2\n\n3\t4\n",
		},
		{
			name: "padded separator with CRLF",
			opts: WriterOptions{FieldSeparator: ", ", UseCRLF: true},
			want: "1, 2\r\n\r\n3, 4\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderWithOptions(node, tt.opts)
			if err != nil {
				t.Fatalf("RenderWithOptions() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("RenderWithOptions() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRender_RoundTrip(t *testing.T) {
	input := "1 2 3\n4 5 6\n\n\n# gap\n7 8 9\n"
	opts := DefaultReaderOptions()
	opts.FieldDelimiter = ' '

	node, err := ParseReaderWithOptions(strings.NewReader(input), opts)
	if err != nil {
		t.Fatalf("ParseReaderWithOptions() error = %v", err)
	}
	out, err := RenderWithOptions(node, WriterOptions{FieldDelimiter: ' '})
	if err != nil {
		t.Fatalf("RenderWithOptions() error = %v", err)
	}

	again, err := ParseReaderWithOptions(strings.NewReader(string(out)), opts)
	if err != nil {
		t.Fatalf("ParseReaderWithOptions() error = %v", err)
	}
	out2, _ := RenderWithOptions(again, WriterOptions{FieldDelimiter: ' '})
	if string(out) != string(out2) {
		t.Errorf("round trip changed output: %q then %q", out, out2)
	}
	if len(again.(*ast.ArrayDataNode).Elements()) != 2 {
		t.Errorf("round trip lost block boundaries: %q", out)
	}
}

func TestRender_TableAndRow(t *testing.T) {
	table, err := ReadTableFrom(strings.NewReader("1.5,2\n"), ParseFloat, DefaultReaderOptions())
	if err != nil {
		t.Fatalf("ReadTableFrom() error = %v", err)
	}
	got, err := Render(table.ToAST())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if string(got) != "1.5,2\n" {
		t.Errorf("Render(table) = %q", got)
	}

	row := ast.NewArrayDataNode([]ast.SchemaNode{
		ast.NewLiteralNode("a", ast.ZeroPosition()),
		ast.NewLiteralNode(nil, ast.ZeroPosition()),
	}, ast.ZeroPosition())
	got, err = Render(row)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if string(got) != "a,\n" {
		t.Errorf("Render(row) = %q", got)
	}
}

func TestRender_Errors(t *testing.T) {
	if got, err := Render(nil); err != nil || len(got) != 0 {
		t.Errorf("Render(nil) = %q, %v", got, err)
	}

	if _, err := RenderWithOptions(ast.NewArrayDataNode(nil, ast.ZeroPosition()), WriterOptions{FieldDelimiter: '\n'}); err == nil {
		t.Error("RenderWithOptions() should reject invalid options")
	}
}
