//go:build unix

// Package mmap maps data files into memory for reading.
package mmap

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// MapFile memory-maps a file read-only.
// Returns the mapped bytes and a cleanup function that must be called to unmap the file.
//
// Example usage:
//
//	data, cleanup, err := mmap.MapFile("readings.dat")
//	if err != nil {
//	    return err
//	}
//	defer cleanup()
//
//	rr := datafile.NewRecordReader(bytes.NewReader(data))
//
// Do not use the data slice after calling cleanup().
func MapFile(filename string) ([]byte, func(), error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, err
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if !stat.Mode().IsRegular() {
		f.Close()
		return nil, nil, fmt.Errorf("failed to map %s: not a regular file", filename)
	}

	size := stat.Size()
	if size == 0 {
		// Zero-length mappings are rejected by the kernel.
		return []byte{}, func() { f.Close() }, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to mmap file: %w", err)
	}

	cleanup := func() {
		_ = unix.Munmap(data)
		f.Close()
	}
	return data, cleanup, nil
}
