package datafile

import (
	"fmt"
	"strings"
)

// FormatFields joins values with delim, formatting each value with fmt's %v verb.
// An empty slice formats to "".
//
// Example:
//
//	datafile.FormatFields(' ', []int{0, 1, 2, 3})  // "0 1 2 3"
//	datafile.FormatFields(',', []int{0, 1, 2, 3})  // "0,1,2,3"
func FormatFields[T any](delim byte, values []T) string {
	var sb strings.Builder
	writeRow(&sb, string(delim), values)
	return sb.String()
}

// writeRow writes values separated by sep. Fields are written as is: a value
// containing the separator is not quoted.
func writeRow[T any](sb *strings.Builder, sep string, values []T) {
	for i, v := range values {
		if i > 0 {
			sb.WriteString(sep)
		}
		fmt.Fprint(sb, v)
	}
}
