package sender

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/tarm/serial"

	"github.com/ianbohannon/WAAM/gcode"
)

// Serial streams a program straight to a printer port, one line at a
// time, waiting for the firmware's ok after each.
type Serial struct {
	rw io.ReadWriter
	br *bufio.Reader
}

var _ Sender = &Serial{}

func NewSerial(rw io.ReadWriter) *Serial {
	return &Serial{rw: rw, br: bufio.NewReader(rw)}
}

// OpenSerial opens dev at the given baud rate.
func OpenSerial(dev string, baud int) (*Serial, error) {
	port, err := serial.OpenPort(&serial.Config{Name: dev, Baud: baud})
	if err != nil {
		return nil, err
	}
	return NewSerial(port), nil
}

func (s *Serial) Close() error {
	if c, ok := s.rw.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (s *Serial) Send(lr gcode.LineReader) error {
	for {
		ln, err := lr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		// firmware wants bare commands
		data := strings.TrimSpace(strings.SplitN(ln.Raw, ";", 2)[0])
		if data == "" {
			continue
		}

		if _, err = io.WriteString(s.rw, data+"\n"); err != nil {
			return err
		}
		if err = s.waitOK(); err != nil {
			return err
		}
	}
}

func (s *Serial) waitOK() error {
	for {
		resp, err := s.br.ReadString('\n')
		if err != nil {
			return err
		}
		resp = strings.TrimSpace(resp)

		if resp == "ok" || strings.HasPrefix(resp, "ok ") {
			return nil
		}
		if strings.HasPrefix(strings.ToLower(resp), "error") || strings.HasPrefix(resp, "!!") {
			return errors.New("machine: " + resp)
		}
		// anything else is status chatter; keep waiting
	}
}
