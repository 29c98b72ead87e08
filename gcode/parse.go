package gcode

import (
	"strings"
)

// Parse lexes data into lines, preserving text and terminators.
func Parse(data string) []Line {
	s := NewScanner(strings.NewReader(data))
	var lines []Line
	for {
		ln, err := s.Read()
		if err != nil {
			break
		}
		lines = append(lines, ln)
	}
	return lines
}
