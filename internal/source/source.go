// Package source turns a reader into a sequence of text lines with their
// line numbers.
package source

import (
	"bufio"
	"fmt"
	"io"
)

// maxLine fits the longest valid record (":" + 255 data bytes) with room
// for surrounding whitespace.
const maxLine = 64 * 1024

// Scanner yields the lines of an io.Reader with line endings stripped.
type Scanner struct {
	scanner *bufio.Scanner
	line    int
	err     error
}

func New(r io.Reader) *Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 4096), maxLine)
	return &Scanner{scanner: s}
}

// Next advances to the next line and reports whether one is available.
func (s *Scanner) Next() bool {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			s.err = fmt.Errorf("read line %d: %w", s.line+1, err)
		}
		return false
	}
	s.line++
	return true
}

// Text returns the current line.
func (s *Scanner) Text() string { return s.scanner.Text() }

// Line returns the 1-based number of the current line.
func (s *Scanner) Line() int { return s.line }

// Err returns the first read error, if any.
func (s *Scanner) Err() error { return s.err }
