//go:build !unix

// Package mmap maps data files into memory for reading.
package mmap

import (
	"fmt"
	"os"
)

// MapFile reads a file into memory on platforms without mmap.
// It has the same contract as the Unix version; the cleanup function does nothing.
func MapFile(filename string) ([]byte, func(), error) {
	stat, err := os.Stat(filename)
	if err != nil {
		return nil, nil, err
	}
	if !stat.Mode().IsRegular() {
		return nil, nil, fmt.Errorf("failed to map %s: not a regular file", filename)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, err
	}
	return data, func() {}, nil
}
