package datafile_test

import (
	"testing"

	"github.com/shapestone/shape-datafile/pkg/datafile"
)

func TestFormatFields(t *testing.T) {
	tests := []struct {
		name  string
		delim byte
		got   string
		want  string
	}{
		{"ints with space", ' ', datafile.FormatFields(' ', []int{0, 1, 2, 3}), "0 1 2 3"},
		{"ints with comma", ',', datafile.FormatFields(',', []int{0, 1, 2, 3}), "0,1,2,3"},
		{"floats", '\t', datafile.FormatFields('\t', []float64{1.5, -2}), "1.5\t-2"},
		{"strings are not quoted", ',', datafile.FormatFields(',', []string{"a,b", ""}), "a,b,"},
		{"empty", ',', datafile.FormatFields(',', []int{}), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("FormatFields(%q) = %q, want %q", tt.delim, tt.got, tt.want)
			}
		})
	}
}
