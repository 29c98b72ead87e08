package gcode

import "io"

type LineReader interface {
	Read() (Line, error)
}

type LinesReader struct {
	Lines []Line
	n     int
}

func (l *LinesReader) Read() (Line, error) {
	if l.n == len(l.Lines) {
		return Line{}, io.EOF
	}

	l.n++
	return l.Lines[l.n-1], nil
}
