// Package datafile reads line-oriented, delimiter-separated data files.
//
// It targets loosely formatted tabular text such as numeric dumps: lines
// starting with '#' are comments, blank lines separate blocks of rows, and
// fields are trimmed of surrounding whitespace. There is no quoting or
// escaping. With a whitespace delimiter, runs of spaces separate one field.
//
// # Layers
//
//   - RecordReader classifies each physical line as Fields, Comment, Blank or
//     EndOfInput, with one record of lookahead (Peek).
//   - BlockReader converts field records into typed rows and groups them into
//     blocks bounded by blank lines. Scanner wraps it in a Scan loop.
//   - ReadTable collects rows into a Table and checks they share one width.
//   - ParseReader builds a Shape AST of blocks, and Render writes one back.
//
// # Thread Safety
//
// Readers, BlockReaders and Scanners are not safe for concurrent use. A Table
// is immutable once returned and may be shared. Metrics may be shared by any
// number of readers.
//
// # Example usage with BlockReader:
//
//	file, err := os.Open("data.txt")
//	if err != nil {
//	    // handle error
//	}
//	defer file.Close()
//
//	rr := datafile.NewRecordReader(file).SetFieldDelimiter(' ')
//	br := datafile.NewBlockReader(rr, datafile.ParseFloat)
//	for {
//	    block, err := br.NextBlock()
//	    if err != nil {
//	        // handle error
//	    }
//	    if block == nil {
//	        break
//	    }
//	    // block is a [][]float64
//	    if _, err := br.ConsumeBlanks(); err != nil {
//	        // handle error
//	    }
//	}
//
// # Example usage with ReadTable:
//
//	table, err := datafile.ReadTableFrom(file, datafile.ParseInt, datafile.DefaultReaderOptions())
//	if errors.Is(err, datafile.ErrFieldCount) {
//	    // rows differ in width
//	}
//	col, _ := table.Column(0)
package datafile
