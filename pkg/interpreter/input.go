package interpreter

import (
	"bufio"
	"io"
)

// LineReader supplies READ with one input line at a time.
// It returns io.EOF once the input is exhausted.
type LineReader interface {
	ReadLine() (string, error)
}

type lineSlice struct {
	lines []string
	next  int
}

// NewLineSlice returns a LineReader over pre-loaded lines
func NewLineSlice(lines []string) LineReader {
	return &lineSlice{lines: lines}
}

func (s *lineSlice) ReadLine() (string, error) {
	if s.next >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.next]
	s.next++
	return line, nil
}

type scannerReader struct {
	sc *bufio.Scanner
}

// NewScannerReader returns a LineReader that reads r lazily, one line per call
func NewScannerReader(r io.Reader) LineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	return &scannerReader{sc: sc}
}

func (s *scannerReader) ReadLine() (string, error) {
	if !s.sc.Scan() {
		if err := s.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.sc.Text(), nil
}
