// Package sender delivers a rewritten G-code program to a machine,
// either directly over a serial port or through a Serial Port JSON
// Server bridge.
package sender

import (
	"github.com/ianbohannon/WAAM/gcode"
)

type Sender interface {
	Send(lr gcode.LineReader) error
}
