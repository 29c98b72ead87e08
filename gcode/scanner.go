package gcode

import (
	"bufio"
	"io"
)

// Scanner lexes a G-code stream one line at a time. Unlike a
// normalizing parser it keeps every line, blank or not, with its
// original text and terminator.
type Scanner struct{ br *bufio.Reader }

func NewScanner(r io.Reader) *Scanner {
	if br, ok := r.(*bufio.Reader); ok {
		return &Scanner{br: br}
	}

	return &Scanner{br: bufio.NewReader(r)}
}

// Read returns the next line, io.EOF after the last one. A final line
// with no terminator is still returned.
func (s *Scanner) Read() (Line, error) {
	raw, err := s.br.ReadString('\n')
	if err == io.EOF && raw != "" {
		err = nil
	}
	if err != nil {
		return Line{}, err
	}

	return ParseLine(raw), nil
}
