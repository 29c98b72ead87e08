package interpulse

import (
	"bytes"
	"io/ioutil"

	"github.com/ianbohannon/WAAM/gcode"
)

// Process rewrites a whole G-code document in memory and returns the
// result. Nothing is written anywhere until the entire input has been
// processed, so a failure can never leave a partial result behind.
func Process(data []byte, cfg Config) ([]byte, error) {
	cfg.Reader = gcode.NewScanner(bytes.NewReader(data))

	return ioutil.ReadAll(gcode.NewBuffer(New(cfg)))
}
