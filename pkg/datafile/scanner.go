package datafile

import "code.hybscloud.com/iox"

// Scanner provides a streaming interface for reading blocks one at a time.
// It drives a BlockReader and consumes the separator lines between blocks, so
// callers do not have to pair NextBlock with ConsumeBlanks themselves.
//
// Example usage:
//
//	file, _ := os.Open("data.txt")
//	defer file.Close()
//
//	rr := datafile.NewRecordReader(file).SetFieldDelimiter(' ')
//	scanner := datafile.NewScanner(rr, datafile.ParseFloat)
//	for scanner.Scan() {
//	    block := scanner.Block()
//	    fmt.Println(len(block), "rows, then", scanner.Blanks(), "separator lines")
//	}
//	if err := scanner.Err(); err != nil {
//	    // handle error
//	}
type Scanner[T any] struct {
	br      *BlockReader[T]
	block   [][]T
	blanks  int
	leading int
	started bool // leading separators consumed
	done    bool
	err     error
	pending error // error from consuming separators, reported by the next Scan

	// A block whose trailing separators were interrupted by a would-block
	// error is held here until they have all been consumed.
	held       [][]T
	heldBlanks int
}

// NewScanner creates a Scanner reading blocks from rr.
func NewScanner[T any](rr *RecordReader, parse ParseFunc[T]) *Scanner[T] {
	return &Scanner[T]{
		br: NewBlockReader(rr, parse),
	}
}

// Scan advances the scanner to the next block.
// It returns false when there are no more blocks or an error occurs.
// After Scan returns false, the Err method will return any error that occurred.
//
// A would-block error from a non-blocking source is not final: Err reports
// it, and a later Scan resumes where reading stopped.
func (s *Scanner[T]) Scan() bool {
	if s.done || (s.err != nil && !iox.IsWouldBlock(s.err)) {
		return false
	}
	s.block, s.blanks, s.err = nil, 0, nil

	if s.pending != nil {
		s.err, s.pending = s.pending, nil
		return false
	}

	if !s.started {
		n, err := s.br.ConsumeBlanks()
		s.leading += n
		if err != nil {
			s.err = err
			return false
		}
		s.started = true
	}

	if s.held == nil {
		block, err := s.br.NextBlock()
		if err != nil {
			s.err = err
			return false
		}
		if block == nil {
			s.done = true
			return false
		}
		s.held, s.heldBlanks = block, 0
	}

	n, err := s.br.ConsumeBlanks()
	s.heldBlanks += n
	if err != nil {
		if iox.IsWouldBlock(err) {
			s.err = err
			return false
		}
		s.pending = err
	}

	s.block, s.blanks = s.held, s.heldBlanks
	s.held, s.heldBlanks = nil, 0
	return true
}

// Block returns the current block.
// This should only be called after Scan() returns true.
func (s *Scanner[T]) Block() [][]T {
	return s.block
}

// Blanks returns how many blank and comment lines followed the current block.
func (s *Scanner[T]) Blanks() int {
	return s.blanks
}

// Leading returns how many blank and comment lines preceded the first block.
func (s *Scanner[T]) Leading() int {
	return s.leading
}

// Err returns the error, if any, that was encountered during scanning.
// It returns nil if no error occurred or at end of input. A would-block
// error is returned until the next Scan retries.
func (s *Scanner[T]) Err() error {
	return s.err
}
