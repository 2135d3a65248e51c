package datafile_test

import (
	"testing"

	"github.com/shapestone/shape-datafile/pkg/datafile"
)

func TestRecordKind_String(t *testing.T) {
	tests := []struct {
		kind datafile.RecordKind
		want string
	}{
		{datafile.KindEndOfInput, "eof"},
		{datafile.KindFields, "fields"},
		{datafile.KindComment, "comment"},
		{datafile.KindBlank, "blank"},
		{datafile.RecordKind(7), "RecordKind(7)"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("RecordKind.String() = %q, want %q", got, tt.want)
		}
	}

	records := []datafile.Record{datafile.EndOfInput{}, datafile.Fields{"a"}, datafile.Comment("#"), datafile.Blank{}}
	for i, rec := range records {
		if rec.Kind() != datafile.RecordKind(i) {
			t.Errorf("%T.Kind() = %v", rec, rec.Kind())
		}
	}
}
