package sender

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ianbohannon/WAAM/gcode"
)

type fakePort struct {
	io.Reader
	wr bytes.Buffer
}

func (f *fakePort) Write(p []byte) (int, error) { return f.wr.Write(p) }

func TestSerial_Send(t *testing.T) {
	port := &fakePort{Reader: strings.NewReader("ok\nT:24.1\nok\nok\n")}
	s := NewSerial(port)

	lines := gcode.Parse("G28\n\n; a comment only\nM106 S255 ; ON\nG1 X1.00000 Y0.00000 E0.10000\n")
	err := s.Send(&gcode.LinesReader{Lines: lines})
	assert.NoError(t, err)

	// blank and comment-only lines never hit the wire, comments are
	// stripped, and status chatter between oks is skipped
	assert.Equal(t, "G28\nM106 S255\nG1 X1.00000 Y0.00000 E0.10000\n", port.wr.String())
}

func TestSerial_SendError(t *testing.T) {
	port := &fakePort{Reader: strings.NewReader("ok\nerror: expected command letter\n")}
	s := NewSerial(port)

	err := s.Send(&gcode.LinesReader{Lines: gcode.Parse("G28\nG1 X1\nG1 X2\n")})
	assert.Error(t, err)

	// nothing after the failing line was sent
	assert.Equal(t, "G28\nG1 X1\n", port.wr.String())
}
