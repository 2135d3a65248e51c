// Package datafile provides field converters for typed rows.
package datafile

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ParseFunc converts one field into a value of type T.
// Its error aborts the row or block being read and is reported inside a *ParseError.
type ParseFunc[T any] func(field string) (T, error)

// ParseInt parses a base-10 int64.
func ParseInt(field string) (int64, error) {
	return strconv.ParseInt(field, 10, 64)
}

// ParseUint parses a base-10 uint64.
func ParseUint(field string) (uint64, error) {
	return strconv.ParseUint(field, 10, 64)
}

// ParseFloat parses a float64. Exponents, "inf" and "nan" are accepted as in strconv.
func ParseFloat(field string) (float64, error) {
	return strconv.ParseFloat(field, 64)
}

// ParseBool parses a boolean.
// Recognizes: true/false, 1/0, yes/no, y/n, on/off, t/f (case-insensitive)
func ParseBool(field string) (bool, error) {
	switch strings.ToLower(field) {
	case "true", "1", "yes", "y", "on", "t":
		return true, nil
	case "false", "0", "no", "n", "off", "f":
		return false, nil
	default:
		return false, fmt.Errorf("cannot convert %q to bool", field)
	}
}

// ParseString returns the field unchanged. It never fails.
func ParseString(field string) (string, error) {
	return field, nil
}

// Converter is the interface for named, dynamically typed converters.
// Converters transform string field values into typed Go values.
type Converter interface {
	// Convert transforms a string value into the target type.
	// Returns the converted value and any error encountered.
	Convert(value string) (interface{}, error)
}

// ConverterFunc is a function adapter for the Converter interface.
type ConverterFunc func(string) (interface{}, error)

// Convert implements Converter.
func (f ConverterFunc) Convert(value string) (interface{}, error) {
	return f(value)
}

// FromConverter adapts a Converter to a ParseFunc.
func FromConverter(c Converter) ParseFunc[any] {
	return c.Convert
}

// IntConverter converts string values to int64.
type IntConverter struct {
	// Base is the numeric base for parsing (default: 10)
	Base int
}

// Convert implements Converter for IntConverter.
func (c IntConverter) Convert(value string) (interface{}, error) {
	base := c.Base
	if base == 0 {
		base = 10
	}
	return strconv.ParseInt(value, base, 64)
}

// FloatConverter converts string values to float64.
type FloatConverter struct{}

// Convert implements Converter for FloatConverter.
func (c FloatConverter) Convert(value string) (interface{}, error) {
	return ParseFloat(value)
}

// BoolConverter converts string values to bool.
type BoolConverter struct{}

// Convert implements Converter for BoolConverter.
func (c BoolConverter) Convert(value string) (interface{}, error) {
	return ParseBool(value)
}

// StringConverter returns string values unchanged.
type StringConverter struct{}

// Convert implements Converter for StringConverter.
func (c StringConverter) Convert(value string) (interface{}, error) {
	return value, nil
}

// ConverterRegistry manages named converters.
type ConverterRegistry struct {
	converters map[string]Converter
}

// NewConverterRegistry creates a new converter registry with built-in converters.
func NewConverterRegistry() *ConverterRegistry {
	r := &ConverterRegistry{
		converters: make(map[string]Converter),
	}
	// Register built-in converters
	r.Register("int", IntConverter{})
	r.Register("hex", IntConverter{Base: 16})
	r.Register("float", FloatConverter{})
	r.Register("bool", BoolConverter{})
	r.Register("string", StringConverter{})
	return r
}

// Register adds a converter to the registry.
func (r *ConverterRegistry) Register(name string, conv Converter) {
	r.converters[name] = conv
}

// Get retrieves a converter by name.
func (r *ConverterRegistry) Get(name string) (Converter, bool) {
	conv, ok := r.converters[name]
	return conv, ok
}

// Names returns the registered converter names in sorted order.
func (r *ConverterRegistry) Names() []string {
	names := make([]string, 0, len(r.converters))
	for name := range r.converters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
