package datafile

import (
	"reflect"
	"testing"
)

func TestParseBool(t *testing.T) {
	tests := []struct {
		input   string
		want    bool
		wantErr bool
	}{
		{"true", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"yes", true, false},
		{"Y", true, false},
		{"on", true, false},
		{"t", true, false},
		{"false", false, false},
		{"0", false, false},
		{"No", false, false},
		{"off", false, false},
		{"f", false, false},
		{"maybe", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBool(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBool(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseBool(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseNumbers(t *testing.T) {
	if v, err := ParseInt("-42"); err != nil || v != -42 {
		t.Errorf("ParseInt(-42) = %v, %v", v, err)
	}
	if _, err := ParseInt("1.5"); err == nil {
		t.Error("ParseInt(1.5) should fail")
	}
	if v, err := ParseUint("42"); err != nil || v != 42 {
		t.Errorf("ParseUint(42) = %v, %v", v, err)
	}
	if _, err := ParseUint("-1"); err == nil {
		t.Error("ParseUint(-1) should fail")
	}
	if v, err := ParseFloat("6.02e23"); err != nil || v != 6.02e23 {
		t.Errorf("ParseFloat(6.02e23) = %v, %v", v, err)
	}
	if _, err := ParseFloat(""); err == nil {
		t.Error("ParseFloat(\"\") should fail")
	}
	if v, err := ParseString(""); err != nil || v != "" {
		t.Errorf("ParseString(\"\") = %q, %v", v, err)
	}
}

func TestConverterRegistry(t *testing.T) {
	r := NewConverterRegistry()

	want := []string{"bool", "float", "hex", "int", "string"}
	if got := r.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	tests := []struct {
		name  string
		input string
		want  interface{}
	}{
		{"int", "17", int64(17)},
		{"hex", "ff", int64(255)},
		{"float", "0.25", 0.25},
		{"bool", "yes", true},
		{"string", "abc", "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv, ok := r.Get(tt.name)
			if !ok {
				t.Fatalf("Get(%q) not found", tt.name)
			}
			got, err := conv.Convert(tt.input)
			if err != nil {
				t.Fatalf("Convert(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Convert(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}

	if _, ok := r.Get("date"); ok {
		t.Error("Get(date) should not be found")
	}

	r.Register("upper", ConverterFunc(func(s string) (interface{}, error) {
		return "<" + s + ">", nil
	}))
	conv, ok := r.Get("upper")
	if !ok {
		t.Fatal("registered converter not found")
	}
	if v, _ := conv.Convert("x"); v != "<x>" {
		t.Errorf("custom Convert() = %v", v)
	}
}

func TestIntConverter_NoEmptyDefault(t *testing.T) {
	if _, err := (IntConverter{}).Convert(""); err == nil {
		t.Error("empty field should fail instead of defaulting to zero")
	}
}

func TestFromConverter(t *testing.T) {
	conv, _ := NewConverterRegistry().Get("hex")
	parse := FromConverter(conv)

	row, err := parseRow(parse, Fields{"a", "10"}, 1)
	if err != nil {
		t.Fatalf("parseRow() error = %v", err)
	}
	if !reflect.DeepEqual(row, []any{int64(10), int64(16)}) {
		t.Errorf("row = %#v", row)
	}

	_, err = parseRow(parse, Fields{"a", "zz"}, 7)
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if pe.Line != 7 || pe.Field != 2 || pe.Value != "zz" {
		t.Errorf("ParseError = %+v", pe)
	}
}
