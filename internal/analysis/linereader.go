package analysis

import "bufio"
import "io"

// LineReader produces a lazy sequence of (line number, raw text) pairs
// from a file, line numbers starting at 1. Blank and comment lines come
// through unfiltered -- classification is the engine's job, not the
// reader's.
type LineReader struct {
	scanner *bufio.Scanner
	lineNo  int
}

// NewLineReader wraps r in a bufio.Scanner advanced one line at a time.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{scanner: bufio.NewScanner(r)}
}

// Next returns the next line, or ok=false once the reader is exhausted.
func (lr *LineReader) Next() (lineNo int, text string, ok bool) {
	if !lr.scanner.Scan() {
		return 0, "", false
	}
	lr.lineNo++
	return lr.lineNo, lr.scanner.Text(), true
}

// Err returns the first non-EOF error encountered by the underlying
// scanner, if any.
func (lr *LineReader) Err() error {
	return lr.scanner.Err()
}
