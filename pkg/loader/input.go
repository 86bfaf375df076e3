package loader

import (
	"bufio"
	"io"
	"os"

	"ippvm/pkg/program"
)

// ReadLinesFile reads the input file consumed by READ
func ReadLinesFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, program.Errorf(program.ExitOpenInput, 0, "cannot open input %s: %v", path, err)
	}
	defer f.Close()

	return ReadLines(f)
}

// ReadLines splits r into lines with line terminators removed
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, program.Errorf(program.ExitOpenInput, 0, "cannot read input: %v", err)
	}

	return lines, nil
}
