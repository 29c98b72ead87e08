package gcode

import (
	"io"
	"io/ioutil"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinesReader(t *testing.T) {
	lines := Parse("G1 X1\nM107\n")

	lr := &LinesReader{Lines: lines}

	ln, err := lr.Read()
	assert.NoError(t, err)
	assert.Equal(t, "G1 X1\n", ln.Raw)

	ln, err = lr.Read()
	assert.NoError(t, err)
	assert.Equal(t, "M107\n", ln.Raw)

	_, err = lr.Read()
	assert.Equal(t, io.EOF, err)
}

func TestBuffer_Read(t *testing.T) {
	lines := Parse("G1 X1 Y2\nM107 ; OFF\n")

	b := NewBuffer(&LinesReader{Lines: lines})

	data, err := ioutil.ReadAll(b)
	assert.NoError(t, err)
	assert.Equal(t, "G1 X1 Y2\nM107 ; OFF\n", string(data))

	n, err := b.Read(make([]byte, 10))
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, 0, n)
}
