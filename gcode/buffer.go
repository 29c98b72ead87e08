package gcode

import (
	"bytes"
	"io"
)

// Buffer adapts a LineReader into an io.Reader over the raw line
// text.
type Buffer struct {
	lr  LineReader
	buf bytes.Buffer
	err error
}

var _ io.Reader = &Buffer{}

func NewBuffer(lr LineReader) *Buffer {
	return &Buffer{lr: lr}
}

func (b *Buffer) Buffered() []byte { return b.buf.Bytes() }

func (b *Buffer) Read(p []byte) (n int, err error) {
	var ln Line
	for b.err == nil && b.buf.Len() < len(p) {
		ln, b.err = b.lr.Read()
		if b.err != nil {
			break
		}
		b.buf.WriteString(ln.Raw)
	}

	if b.buf.Len() > 0 {
		return b.buf.Read(p)
	}
	return 0, b.err
}
