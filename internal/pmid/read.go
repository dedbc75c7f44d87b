// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pmid

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrInputNotFound is returned when the identifier file does not exist.
var ErrInputNotFound = errors.New("input file not found")

// ReadFile returns the trimmed, non-blank lines of path in file order.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("opening input file %s: %w", path, err)
	}
	defer f.Close()

	lines, err := ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("reading input file %s: %w", path, err)
	}
	return lines, nil
}

// ReadLines returns the trimmed, non-blank lines of r. A UTF-8 byte order
// mark on the first line is dropped. Lines may be of any length.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	br := bufio.NewReader(r)
	first := true
	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return lines, err
		}
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
		if err != nil {
			return lines, nil
		}
	}
}
